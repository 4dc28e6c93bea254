package preview

import (
	"bytes"
	stderrors "errors"
	"image/png"
	"math"
	"testing"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/geometry"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

// halfBlock covers the left half of a 100x100 left-wrap rectangle.
var halfBlock = &registry.Geometry{
	ViewBox: registry.ViewBox{Width: 200, Height: 100},
	Path:    "M0 0 H50 V100 H0 Z",
	Cut:     registry.Float(100),
}

func TestRenderLeft(t *testing.T) {
	b, err := geometry.Compute(halfBlock, viewport.Desktop, geometry.SideLeft, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(halfBlock, b, 1)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if img.Rect.Dx() != 100 || img.Rect.Dy() != 100 {
		t.Fatalf("image size = %v, want 100x100", img.Rect.Size())
	}
	if got := Coverage(img); math.Abs(got-0.5) > 0.01 {
		t.Errorf("Coverage() = %v, want 0.5", got)
	}
	if img.AlphaAt(10, 50).A != 0 {
		t.Error("silhouette pixels should be cut out of the mask")
	}
	if img.AlphaAt(90, 50).A != 255 {
		t.Error("flow pixels outside the silhouette should stay opaque")
	}
}

func TestRenderRightScalesPath(t *testing.T) {
	g := &registry.Geometry{
		ViewBox: registry.ViewBox{Width: 1200, Height: 200},
		Path:    "M0 0 Z",
		// Covers x in [1000, 1200] before scaling.
		InnerPath: "M1000 0 H1200 V200 H1000 Z",
		Cut:       registry.Float(800),
	}
	b, err := geometry.Compute(g, viewport.Mobile, geometry.SideRight, 100, &geometry.Zoom{Factor: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	// Cut 400, width 600: rect starts at x=400 and is 600-(600-400)=400 wide.
	img, err := Render(g, b, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 200 || img.Rect.Dy() != 50 {
		t.Fatalf("image size = %v, want 200x50", img.Rect.Size())
	}
	// Scaled silhouette spans x in [500, 600], i.e. pixels [50, 100).
	if img.AlphaAt(75, 10).A != 0 {
		t.Error("scaled silhouette should be cut out")
	}
	if img.AlphaAt(25, 10).A != 255 || img.AlphaAt(150, 10).A != 255 {
		t.Error("pixels outside the scaled silhouette should stay opaque")
	}
}

func TestRenderArc(t *testing.T) {
	// Upper half disc of radius 200 inside a 400x200 rectangle.
	dome := &registry.Geometry{
		ViewBox: registry.ViewBox{Width: 400, Height: 200},
		Path:    "M0 200 A200 200 0 0 1 400 200 Z",
		Cut:     registry.Float(400),
	}
	b, err := geometry.Compute(dome, viewport.Desktop, geometry.SideLeft, 200, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(dome, b, 1)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := 1 - math.Pi/4
	if got := Coverage(img); math.Abs(got-want) > 0.02 {
		t.Errorf("Coverage() = %v, want %v", got, want)
	}
	if img.AlphaAt(200, 60).A != 0 {
		t.Error("pixels under the arc should be cut out")
	}
	if img.AlphaAt(5, 5).A != 255 || img.AlphaAt(395, 5).A != 255 {
		t.Error("corners outside the arc should stay opaque")
	}
}

func TestRenderZeroWidth(t *testing.T) {
	g := &registry.Geometry{ViewBox: registry.ViewBox{Width: 10, Height: 10}, Path: "M0 0 H10 V10 Z", Cut: registry.Float(0)}
	b, err := geometry.Compute(g, viewport.Desktop, geometry.SideLeft, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(g, b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 0 || Coverage(img) != 0 {
		t.Errorf("zero-width mask rendered %v", img.Rect)
	}
}

func TestRenderRejects(t *testing.T) {
	b, err := geometry.Compute(halfBlock, viewport.Desktop, geometry.SideLeft, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	bad := &registry.Geometry{ViewBox: halfBlock.ViewBox, Path: "M0 0 X5 5", Cut: halfBlock.Cut}
	tests := []struct {
		name     string
		g        *registry.Geometry
		ppu      float64
		wantKind errors.ErrorKind
	}{
		{"nil geometry", nil, 1, errors.KindConfig},
		{"zero ppu", halfBlock, 0, errors.KindConfig},
		{"huge", halfBlock, 1e6, errors.KindConfig},
		{"malformed path", bad, 1, errors.KindParsing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.g, b, tt.ppu)
			var se *errors.ShapeError
			if !stderrors.As(err, &se) || se.Kind != tt.wantKind {
				t.Errorf("Render() error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	b, _ := geometry.Compute(halfBlock, viewport.Desktop, geometry.SideLeft, 100, nil)
	img, err := Render(halfBlock, b, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds() != img.Rect {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Rect)
	}
}
