// Package registry holds the shape geometry records that decorative and
// wrap-aware shapes are drawn from.
//
// Records come in three flavours: responsive (one record per viewport
// class), shared (one record for every viewport) and modal (records used
// when a shape is shown inside a zoomed overlay). Lookups never fail
// loudly; an unknown name simply resolves to nothing.
package registry

import (
	"math"
	"strings"

	"github.com/go-drift/shapewrap/pkg/errors"
)

// ViewBox is the intrinsic coordinate space of a shape.
type ViewBox struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Geometry is an immutable shape record.
type Geometry struct {
	ViewBox ViewBox `yaml:"view_box"`
	// Path is the outer silhouette as SVG path data.
	Path string `yaml:"path"`
	// InnerPath replaces Path when the shape is drawn in a modal context.
	InnerPath string `yaml:"inner_path,omitempty"`
	// Cut separates the part of the shape inside the text flow from the
	// part that protrudes into the text column. Nil means "half the
	// reference width of the active viewport".
	Cut *float64 `yaml:"cut,omitempty"`
}

// CutOr returns the explicit cut, or def when none is set.
func (g *Geometry) CutOr(def float64) float64 {
	if g.Cut == nil {
		return def
	}
	return *g.Cut
}

// ModalPath returns the path drawn in modal contexts.
func (g *Geometry) ModalPath() string {
	if strings.TrimSpace(g.InnerPath) != "" {
		return g.InnerPath
	}
	return g.Path
}

// Validate checks the structural invariants of the record. Path data is
// only checked for presence.
func (g *Geometry) Validate() error {
	if !(g.ViewBox.Width > 0) || math.IsInf(g.ViewBox.Width, 0) {
		return &errors.ValidationError{Field: "view_box.width", Value: g.ViewBox.Width, Reason: "must be positive"}
	}
	if !(g.ViewBox.Height > 0) || math.IsInf(g.ViewBox.Height, 0) {
		return &errors.ValidationError{Field: "view_box.height", Value: g.ViewBox.Height, Reason: "must be positive"}
	}
	if strings.TrimSpace(g.Path) == "" {
		return &errors.ValidationError{Field: "path", Value: g.Path, Reason: "must not be empty"}
	}
	if g.Cut != nil {
		if c := *g.Cut; math.IsNaN(c) || c < 0 || c > g.ViewBox.Width {
			return &errors.ValidationError{Field: "cut", Value: c, Reason: "must lie within [0, view_box.width]"}
		}
	}
	return nil
}

// Float returns a pointer to v, for building records with an explicit cut.
func Float(v float64) *float64 {
	return &v
}
