// Package shapewrap renders decorative shapes that text flows around.
//
// A render resolves the shape's geometry for a viewport class, derives the
// mask bounds, synthesizes the SVG mask, encodes it as a data URI and
// projects the style of the floated element. Every render is a pure
// function of its request and the read-only registry; nothing is cached.
//
// Unknown shapes are not errors. They render as nothing: the returned
// element is nil and so is the error.
package shapewrap

import (
	stderrors "errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/geometry"
	"github.com/go-drift/shapewrap/pkg/mask"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/style"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

// Request describes one wrap shape to render.
type Request struct {
	Shape    string
	Viewport viewport.Class
	// ID scopes the generated element ids; use a distinct value per
	// instance on a page.
	ID string
	// PaneHeight is the height of the text pane the shape sits in.
	PaneHeight float64
	// Side selects the left wrap or the right-hand modal wrap.
	Side geometry.Side
	// Zoom is only valid for the right side.
	Zoom *geometry.Zoom
}

// Element is the output of a render.
type Element struct {
	Shape    string
	Viewport viewport.Class
	Context  registry.Context
	// Silhouette is the visible shape as standalone SVG markup.
	Silhouette string
	// Mask, Style and Bounds are nil for decorative elements.
	Mask   *mask.Mask
	Style  *style.Style
	Bounds *geometry.Bounds
}

// HTML renders the element as a markup fragment: the silhouette, wrapped
// in a floated container carrying the wrap style when there is one.
func (e *Element) HTML() string {
	if e == nil {
		return ""
	}
	if e.Style == nil {
		return e.Silhouette
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div aria-hidden="true" style="%s">`, html.EscapeString(e.Style.CSS()))
	sb.WriteString(e.Silhouette)
	sb.WriteString("</div>")
	return sb.String()
}

// Renderer renders shapes from a registry.
type Renderer struct {
	Source registry.Source
	// ScaleVar is the CSS custom property holding the runtime scale.
	// Empty means style.DefaultScaleVar.
	ScaleVar string
}

// New creates a renderer over src.
func New(src registry.Source) *Renderer {
	return &Renderer{Source: src}
}

// Render dispatches on req.Side.
func (r *Renderer) Render(req Request) (*Element, error) {
	if req.Side == geometry.SideRight {
		return r.RenderModal(req)
	}
	return r.RenderLeft(req)
}

// RenderLeft renders a left-floated wrap shape. Only viewport-specific
// geometry qualifies.
func (r *Renderer) RenderLeft(req Request) (*Element, error) {
	req.Side = geometry.SideLeft
	return r.renderWrap(req, registry.ContextLeftWrap)
}

// RenderModal renders a right-floated wrap shape for a zoomed overlay.
func (r *Renderer) RenderModal(req Request) (*Element, error) {
	req.Side = geometry.SideRight
	return r.renderWrap(req, registry.ContextModalWrap)
}

// RenderDecorative renders a plain shape without any wrap mask.
func (r *Renderer) RenderDecorative(shape string, class viewport.Class) (*Element, error) {
	const op = "shapewrap.RenderDecorative"
	if err := checkViewport(op, shape, class); err != nil {
		return nil, r.fail(err)
	}
	g, ok := registry.Resolve(r.Source, shape, class, registry.ContextDecorative)
	if !ok {
		Logger().Info("shape not found", zap.String("shape", shape), zap.Stringer("viewport", class), zap.Stringer("context", registry.ContextDecorative))
		return nil, nil
	}
	svg, err := mask.Silhouette(g, registry.ContextDecorative)
	if err != nil {
		return nil, r.fail(withShape(err, shape))
	}
	return &Element{Shape: shape, Viewport: class, Context: registry.ContextDecorative, Silhouette: svg}, nil
}

func (r *Renderer) renderWrap(req Request, ctx registry.Context) (*Element, error) {
	const op = "shapewrap.Render"
	if err := checkViewport(op, req.Shape, req.Viewport); err != nil {
		return nil, r.fail(err)
	}
	log := Logger().With(zap.String("shape", req.Shape), zap.Stringer("viewport", req.Viewport), zap.Stringer("context", ctx))

	g, ok := registry.Resolve(r.Source, req.Shape, req.Viewport, ctx)
	if !ok {
		log.Info("shape not found")
		return nil, nil
	}

	b, err := geometry.Compute(g, req.Viewport, req.Side, req.PaneHeight, req.Zoom)
	if err != nil {
		return nil, r.fail(withShape(err, req.Shape))
	}
	m, err := mask.Build(g, b, mask.Options{ID: req.ID, Shape: req.Shape, Viewport: req.Viewport})
	if err != nil {
		return nil, r.fail(withShape(err, req.Shape))
	}
	st, err := style.Project(b, m.DataURI, r.ScaleVar)
	if err != nil {
		return nil, r.fail(withShape(err, req.Shape))
	}
	svg, err := mask.Silhouette(g, ctx)
	if err != nil {
		return nil, r.fail(withShape(err, req.Shape))
	}

	log.Debug("rendered wrap shape",
		zap.Stringer("side", b.Side),
		zap.Float64("cut", b.Cut),
		zap.Float64("width", b.Rect.Width()),
		zap.Float64("height", b.Rect.Height()),
		zap.String("maskID", m.ID),
	)
	return &Element{
		Shape:      req.Shape,
		Viewport:   req.Viewport,
		Context:    ctx,
		Silhouette: svg,
		Mask:       m,
		Style:      &st,
		Bounds:     &b,
	}, nil
}

func checkViewport(op, shape string, class viewport.Class) error {
	if class.Valid() {
		return nil
	}
	return errors.Config(op, shape, &errors.ValidationError{Field: "viewport", Value: string(class), Reason: "unknown viewport class"})
}

// withShape records the shape name on a ShapeError that lacks one.
func withShape(err error, shape string) error {
	var se *errors.ShapeError
	if stderrors.As(err, &se) && se.Shape == "" {
		se.Shape = shape
	}
	return err
}

// fail reports err to the error handler, which owns logging it.
func (r *Renderer) fail(err error) error {
	var se *errors.ShapeError
	if stderrors.As(err, &se) {
		errors.Report(se)
	}
	return err
}
