// Package geometry derives the numeric bounds of a wrap mask from a shape
// record, the viewport class and the height of the pane the text flows in.
package geometry

import (
	"math"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

// Side is the edge a wrap shape is floated against.
type Side int

const (
	// SideLeft floats the shape left; text wraps on its right.
	SideLeft Side = iota
	// SideRight floats the shape right inside a modal overlay.
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Zoom configures the modal rendering of a shape. PaddingTop is given in
// shape units and scaled with Factor; PaddingLeft is already in zoomed
// pixels and is applied as is.
type Zoom struct {
	Factor      float64
	PaddingLeft float64
	PaddingTop  float64
}

// Identity is the zoom that leaves geometry unchanged.
var Identity = Zoom{Factor: 1}

// Bounds is the derived geometry of one mask. Cut, Width and PaddingTop are
// already multiplied by Scale.
type Bounds struct {
	Side        Side
	Scale       float64
	Cut         float64
	Width       float64
	PaddingLeft float64
	PaddingTop  float64
	// Rect is the flow rectangle, anchored at the negative padding offsets.
	Rect Rect
	// ViewBox is the coordinate window of the mask markup.
	ViewBox Rect
}

// Protrusion returns how far the shape, plus padding, extends past the cut.
func (b Bounds) Protrusion() float64 {
	return b.Width - b.Cut + b.PaddingLeft
}

// Compute derives the mask bounds for g. A nil zoom is the identity zoom;
// the left side accepts no zoom at all.
func Compute(g *registry.Geometry, class viewport.Class, side Side, paneHeight float64, zoom *Zoom) (Bounds, error) {
	const op = "geometry.Compute"
	if g == nil {
		return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "geometry", Value: nil, Reason: "must not be nil"})
	}
	if err := g.Validate(); err != nil {
		return Bounds{}, &errors.ShapeError{Op: op, Kind: errors.KindConfig, Err: err}
	}
	ref := class.ReferenceWidth()
	if ref == 0 {
		return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "viewport", Value: string(class), Reason: "unknown viewport class"})
	}
	if !(paneHeight > 0) || math.IsInf(paneHeight, 0) {
		return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "paneHeight", Value: paneHeight, Reason: "must be positive"})
	}

	z := Identity
	if zoom != nil {
		if side == SideLeft {
			return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "zoom", Value: *zoom, Reason: "only the right side accepts a zoom"})
		}
		if err := zoom.validate(); err != nil {
			return Bounds{}, errors.Config(op, "", err)
		}
		z = *zoom
	}

	// An explicit cut was range-checked by Validate. The default may lie
	// past a narrow shape's right edge.
	cut := g.CutOr(ref * 0.5)

	b := Bounds{
		Side:        side,
		Scale:       z.Factor,
		Cut:         cut * z.Factor,
		Width:       g.ViewBox.Width * z.Factor,
		PaddingLeft: z.PaddingLeft,
		PaddingTop:  z.PaddingTop * z.Factor,
	}

	switch side {
	case SideLeft:
		b.Rect = RectFromLTWH(-b.PaddingLeft, -b.PaddingTop, b.Cut+b.PaddingLeft, paneHeight+b.PaddingTop)
	case SideRight:
		w := ref - b.Protrusion()
		if w < 0 {
			return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "rectWidth", Value: w, Reason: "shape and padding are wider than the reference width"})
		}
		b.Rect = RectFromLTWH(b.Cut, -b.PaddingTop, w, paneHeight+b.PaddingTop)
	default:
		return Bounds{}, errors.Config(op, "", &errors.ValidationError{Field: "side", Value: int(side), Reason: "unknown side"})
	}
	b.ViewBox = b.Rect
	return b, nil
}

func (z Zoom) validate() *errors.ValidationError {
	switch {
	case !(z.Factor > 0) || math.IsInf(z.Factor, 0):
		return &errors.ValidationError{Field: "zoomFactor", Value: z.Factor, Reason: "must be positive"}
	case !(z.PaddingLeft >= 0) || math.IsInf(z.PaddingLeft, 0):
		return &errors.ValidationError{Field: "paddingLeft", Value: z.PaddingLeft, Reason: "must not be negative"}
	case !(z.PaddingTop >= 0) || math.IsInf(z.PaddingTop, 0):
		return &errors.ValidationError{Field: "paddingTop", Value: z.PaddingTop, Reason: "must not be negative"}
	}
	return nil
}
