// Package preview rasterizes wrap masks so their outline can be inspected
// without a browser.
//
// The raster mirrors the SVG mask: the flow rectangle is opaque and the
// shape silhouette is cut out of it. Preview images are a debugging aid;
// the markup from package mask remains the only thing shipped to pages.
package preview

import (
	"image"
	"image/png"
	"io"
	"math"

	"cogentcore.org/core/paint/ppath"
	"golang.org/x/image/vector"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/geometry"
	"github.com/go-drift/shapewrap/pkg/registry"
)

// MaxPixels bounds the size of a preview image.
const MaxPixels = 1 << 24

// Render rasterizes the mask for g and b at ppu pixels per mask unit.
func Render(g *registry.Geometry, b geometry.Bounds, ppu float64) (*image.Alpha, error) {
	const op = "preview.Render"
	if g == nil {
		return nil, errors.Config(op, "", &errors.ValidationError{Field: "geometry", Value: nil, Reason: "must not be nil"})
	}
	if !(ppu > 0) || math.IsInf(ppu, 0) {
		return nil, errors.Config(op, "", &errors.ValidationError{Field: "ppu", Value: ppu, Reason: "must be positive"})
	}
	w := int(math.Ceil(b.Rect.Width() * ppu))
	h := int(math.Ceil(b.Rect.Height() * ppu))
	if w < 0 || h < 0 || float64(w)*float64(h) > MaxPixels {
		return nil, errors.Config(op, "", &errors.ValidationError{Field: "ppu", Value: ppu, Reason: "preview would exceed the pixel limit"})
	}

	d := g.Path
	scale := 1.0
	if b.Side == geometry.SideRight {
		d = g.ModalPath()
		scale = b.Scale
	}
	path, err := parsePath(d, scale)
	if err != nil {
		return nil, err
	}

	out := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out, nil
	}

	silhouette := image.NewAlpha(out.Rect)
	z := vector.NewRasterizer(w, h)
	tx := func(x, y float32) (float32, float32) {
		return float32((float64(x) - b.ViewBox.Left) * ppu), float32((float64(y) - b.ViewBox.Top) * ppu)
	}
	open := false
	for i := 0; i < len(path); i += ppath.CmdLen(path[i]) {
		switch path[i] {
		case ppath.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(tx(path[i+1], path[i+2]))
			open = true
		case ppath.LineTo:
			z.LineTo(tx(path[i+1], path[i+2]))
		case ppath.QuadTo:
			bx, by := tx(path[i+1], path[i+2])
			cx, cy := tx(path[i+3], path[i+4])
			z.QuadTo(bx, by, cx, cy)
		case ppath.CubeTo:
			bx, by := tx(path[i+1], path[i+2])
			cx, cy := tx(path[i+3], path[i+4])
			dx, dy := tx(path[i+5], path[i+6])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case ppath.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(silhouette, silhouette.Bounds(), image.Opaque, image.Point{})

	// Opaque rectangle minus silhouette.
	for i, a := range silhouette.Pix {
		out.Pix[i] = 255 - a
	}
	return out, nil
}

// parsePath parses SVG path data, replaces elliptical arcs by cubic
// curves and scales the result by f.
func parsePath(d string, f float64) (ppath.Path, error) {
	p, err := ppath.ParseSVGPath(d)
	if err != nil {
		return nil, &errors.ShapeError{Op: "preview.Render", Kind: errors.KindParsing, Err: &errors.ParseError{Input: d, Msg: err.Error()}}
	}
	p = p.ReplaceArcs()
	if f != 1 {
		p = p.Scale(float32(f), float32(f))
	}
	return p, nil
}

// Coverage returns the fraction of pixels that are at least half opaque.
func Coverage(img *image.Alpha) float64 {
	total := img.Rect.Dx() * img.Rect.Dy()
	if total == 0 {
		return 0
	}
	n := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.AlphaAt(x, y).A >= 128 {
				n++
			}
		}
	}
	return float64(n) / float64(total)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return &errors.ShapeError{Op: "preview.WritePNG", Kind: errors.KindRender, Err: err}
	}
	return nil
}
