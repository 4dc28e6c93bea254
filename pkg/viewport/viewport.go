// Package viewport defines the breakpoint classes shapes are authored for.
//
// Each class carries a fixed reference width. Geometry that depends on the
// right edge of the page is computed against this width, never against the
// live container size; the on-screen size is reached later by multiplying
// with a runtime scale factor.
package viewport

import (
	"fmt"
	"strings"
)

// Class is a discrete breakpoint bucket.
type Class string

const (
	Mobile  Class = "mobile"
	Tablet  Class = "tablet"
	Desktop Class = "desktop"
)

var referenceWidths = map[Class]float64{
	Mobile:  600,
	Tablet:  1080,
	Desktop: 1920,
}

// All returns the known classes in ascending reference width order.
func All() []Class {
	return []Class{Mobile, Tablet, Desktop}
}

// ReferenceWidth returns the fixed pixel width of the class, or 0 for an
// unknown class.
func (c Class) ReferenceWidth() float64 {
	return referenceWidths[c]
}

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	_, ok := referenceWidths[c]
	return ok
}

func (c Class) String() string {
	return string(c)
}

// Parse converts a case-insensitive class name into a Class.
func Parse(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown viewport %q (use mobile, tablet or desktop)", s)
	}
	return c, nil
}
