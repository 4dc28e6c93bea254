// Package mask synthesizes the SVG markup that gives a rectangular float
// the outline of a shape, and the plain silhouette drawn in front of it.
//
// The mask markup is a rectangle covering the flow region, masked by a
// second rectangle from which the shape path has been subtracted. Text
// layout consumes the masked rectangle through shape-outside; the
// silhouette is what the reader actually sees.
package mask

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/geometry"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

const svgNS = "http://www.w3.org/2000/svg"

// Options scope the element ids of one mask.
type Options struct {
	// ID is the caller's uniqueness scope, typically one per rendered
	// instance on a page.
	ID       string
	Shape    string
	Viewport viewport.Class
}

// Mask is the synthesized markup and its data URI.
type Mask struct {
	ID      string
	Markup  string
	DataURI string
}

// Build synthesizes the mask markup for g with bounds b. The left side paints
// the outer path unscaled; the right side paints the modal path scaled by
// b.Scale.
func Build(g *registry.Geometry, b geometry.Bounds, opts Options) (*Mask, error) {
	const op = "mask.Build"
	if g == nil {
		return nil, errors.Config(op, opts.Shape, &errors.ValidationError{Field: "geometry", Value: nil, Reason: "must not be nil"})
	}
	if b.Rect.Width() < 0 || b.Rect.Height() <= 0 {
		return nil, errors.Config(op, opts.Shape, &errors.ValidationError{Field: "bounds", Value: b.Rect, Reason: "rectangle must have non-negative width and positive height"})
	}

	path := g.Path
	scale := 1.0
	if b.Side == geometry.SideRight {
		path = g.ModalPath()
		scale = b.Scale
	}

	id := ElementID(opts.ID, opts.Shape, string(opts.Viewport), b.Side.String(), "mask")
	r := b.Rect

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNS)
	svg.CreateAttr("width", num(r.Width()))
	svg.CreateAttr("height", num(r.Height()))
	svg.CreateAttr("viewBox", viewBox(b.ViewBox))
	svg.CreateAttr("preserveAspectRatio", "none")

	m := svg.CreateElement("defs").CreateElement("mask")
	m.CreateAttr("id", id)
	m.CreateAttr("maskUnits", "userSpaceOnUse")
	setRect(m, r)

	visible := m.CreateElement("rect")
	setRect(visible, r)
	visible.CreateAttr("fill", "white")

	cutout := m.CreateElement("path")
	cutout.CreateAttr("d", path)
	cutout.CreateAttr("fill", "black")
	if scale != 1 {
		cutout.CreateAttr("transform", "scale("+num(scale)+")")
	}

	flow := svg.CreateElement("rect")
	setRect(flow, r)
	flow.CreateAttr("fill", "black")
	flow.CreateAttr("mask", "url(#"+id+")")

	markup, err := doc.WriteToString()
	if err != nil {
		return nil, &errors.ShapeError{Op: op, Kind: errors.KindRender, Shape: opts.Shape, Err: err}
	}
	return &Mask{ID: id, Markup: markup, DataURI: EncodeDataURI(markup)}, nil
}

// Silhouette renders the visible shape for ctx as a standalone SVG. Modal
// contexts draw the inner path.
func Silhouette(g *registry.Geometry, ctx registry.Context) (string, error) {
	if g == nil {
		return "", errors.Config("mask.Silhouette", "", &errors.ValidationError{Field: "geometry", Value: nil, Reason: "must not be nil"})
	}
	path := g.Path
	if ctx == registry.ContextModalWrap {
		path = g.ModalPath()
	}

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNS)
	svg.CreateAttr("width", num(g.ViewBox.Width))
	svg.CreateAttr("height", num(g.ViewBox.Height))
	svg.CreateAttr("viewBox", viewBox(geometry.RectFromLTWH(0, 0, g.ViewBox.Width, g.ViewBox.Height)))
	svg.CreateAttr("aria-hidden", "true")
	svg.CreateAttr("focusable", "false")
	p := svg.CreateElement("path")
	p.CreateAttr("d", path)
	p.CreateAttr("fill", "currentColor")

	markup, err := doc.WriteToString()
	if err != nil {
		return "", &errors.ShapeError{Op: "mask.Silhouette", Kind: errors.KindRender, Err: err}
	}
	return markup, nil
}

// ElementID joins parts into an XML id. Characters outside [A-Za-z0-9_-]
// become '-', and ids that would not start with a letter get an "m-" prefix.
func ElementID(parts ...string) string {
	var sb strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i > 0 && sb.Len() > 0 {
			sb.WriteByte('-')
		}
		for _, r := range part {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
				sb.WriteRune(r)
			default:
				sb.WriteByte('-')
			}
		}
	}
	id := sb.String()
	if id == "" || !(id[0] >= 'a' && id[0] <= 'z' || id[0] >= 'A' && id[0] <= 'Z') {
		id = "m-" + id
	}
	return id
}

func setRect(e *etree.Element, r geometry.Rect) {
	e.CreateAttr("x", num(r.Left))
	e.CreateAttr("y", num(r.Top))
	e.CreateAttr("width", num(r.Width()))
	e.CreateAttr("height", num(r.Height()))
}

func viewBox(r geometry.Rect) string {
	return num(r.Left) + " " + num(r.Top) + " " + num(r.Width()) + " " + num(r.Height())
}

// num formats v with the shortest exact representation. Negative zero is
// printed as 0.
func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
