// Package style projects mask bounds into the style values applied to the
// floated element.
//
// Sizes are never emitted as literal pixels. They are the unscaled bounds
// multiplied by a runtime scale variable, so one computed geometry serves
// every physical viewport width.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/geometry"
)

// DefaultScaleVar is the CSS custom property holding the runtime scale.
const DefaultScaleVar = "--scale"

// Style is the set of declarations for a wrap element.
type Style struct {
	Width        string `json:"width"`
	Height       string `json:"height"`
	Float        string `json:"float"`
	ShapeOutside string `json:"shapeOutside"`

	// Unscaled pixel bounds the expressions were built from.
	RawWidth  float64 `json:"-"`
	RawHeight float64 `json:"-"`
}

// Project builds the style for bounds b and an encoded mask. An empty
// scaleVar selects DefaultScaleVar.
func Project(b geometry.Bounds, dataURI, scaleVar string) (Style, error) {
	if scaleVar == "" {
		scaleVar = DefaultScaleVar
	}
	if err := ValidateScaleVar(scaleVar); err != nil {
		return Style{}, err
	}
	w, h := b.Rect.Width(), b.Rect.Height()
	return Style{
		Width:        scaled(scaleVar, w),
		Height:       scaled(scaleVar, h),
		Float:        b.Side.String(),
		ShapeOutside: dataURI,
		RawWidth:     w,
		RawHeight:    h,
	}, nil
}

// Resolve converts the style into on-screen pixels for an explicit scale
// factor, for callers that do not rely on the CSS variable.
func (s Style) Resolve(scale float64) (width, height float64) {
	return s.RawWidth * scale, s.RawHeight * scale
}

// CSS renders the style as inline declarations.
func (s Style) CSS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "float: %s; width: %s; height: %s;", s.Float, s.Width, s.Height)
	if s.ShapeOutside != "" {
		fmt.Fprintf(&sb, " shape-outside: url(%q);", s.ShapeOutside)
	}
	return sb.String()
}

// ValidateScaleVar checks that name is a CSS custom property name.
func ValidateScaleVar(name string) error {
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return errors.Config("style.Project", "", &errors.ValidationError{Field: "scaleVar", Value: name, Reason: "must be a custom property starting with --"})
	}
	for _, r := range name[2:] {
		if !(r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.Config("style.Project", "", &errors.ValidationError{Field: "scaleVar", Value: name, Reason: fmt.Sprintf("invalid character %q", r)})
		}
	}
	return nil
}

func scaled(scaleVar string, px float64) string {
	if px == 0 {
		px = 0
	}
	return "calc(var(" + scaleVar + ") * " + strconv.FormatFloat(px, 'f', -1, 64) + "px)"
}
