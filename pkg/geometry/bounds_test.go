package geometry

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/shapewrap/pkg/errors"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

var wave = &registry.Geometry{
	ViewBox: registry.ViewBox{Width: 1200, Height: 200},
	Path:    "M0 100 C300 0 300 200 600 100 L1200 200 L0 200 Z",
}

func TestComputeLeftDefaultCut(t *testing.T) {
	b, err := Compute(wave, viewport.Desktop, SideLeft, 400, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if b.Cut != 960 {
		t.Errorf("Cut = %v, want 960", b.Cut)
	}
	want := Rect{Left: 0, Top: 0, Right: 960, Bottom: 400}
	if diff := cmp.Diff(want, b.Rect); diff != "" {
		t.Errorf("Rect mismatch (-want +got):\n%s", diff)
	}
	if b.ViewBox.Left != 0 || b.ViewBox.Right != b.Cut {
		t.Errorf("left ViewBox = %+v, want [0, cut]", b.ViewBox)
	}
}

func TestComputeModalScenario(t *testing.T) {
	b, err := Compute(wave, viewport.Desktop, SideRight, 300, &Zoom{Factor: 0.5, PaddingLeft: 20, PaddingTop: 10})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if b.Cut != 480 || b.Width != 600 {
		t.Errorf("scaled cut/width = %v/%v, want 480/600", b.Cut, b.Width)
	}
	if got := b.Rect.Width(); got != 1780 {
		t.Errorf("Rect.Width() = %v, want 1780", got)
	}
	if got := b.Rect.Height(); got != 305 {
		t.Errorf("Rect.Height() = %v, want 305", got)
	}
	if b.ViewBox.Left != 480 || b.ViewBox.Top != -5 {
		t.Errorf("right ViewBox origin = (%v, %v), want (480, -5)", b.ViewBox.Left, b.ViewBox.Top)
	}
}

func TestComputeNilZoomIsIdentity(t *testing.T) {
	shapes := []*registry.Geometry{
		wave,
		{ViewBox: registry.ViewBox{Width: 500, Height: 120}, Path: "M0 0 Z", Cut: registry.Float(250)},
		{ViewBox: registry.ViewBox{Width: 900, Height: 180}, Path: "M0 0 Z"},
	}
	for _, g := range shapes {
		for _, class := range viewport.All() {
			plain, errPlain := Compute(g, class, SideRight, 320, nil)
			zoomed, errZoomed := Compute(g, class, SideRight, 320, &Zoom{Factor: 1})
			if (errPlain == nil) != (errZoomed == nil) {
				t.Fatalf("%s: errors differ: %v vs %v", class, errPlain, errZoomed)
			}
			if diff := cmp.Diff(zoomed, plain); diff != "" {
				t.Errorf("%s %vx%v: nil zoom differs from identity (-identity +nil):\n%s", class, g.ViewBox.Width, g.ViewBox.Height, diff)
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	z := &Zoom{Factor: 0.75, PaddingLeft: 12, PaddingTop: 8}
	a, _ := Compute(wave, viewport.Desktop, SideRight, 250, z)
	b, _ := Compute(wave, viewport.Desktop, SideRight, 250, z)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Compute is not deterministic:\n%s", diff)
	}
}

func TestComputeBoundaryCuts(t *testing.T) {
	zero := &registry.Geometry{ViewBox: registry.ViewBox{Width: 800, Height: 100}, Path: "M0 0 Z", Cut: registry.Float(0)}
	b, err := Compute(zero, viewport.Desktop, SideLeft, 100, nil)
	if err != nil {
		t.Fatalf("Compute(cut=0) error = %v", err)
	}
	if b.Rect.Width() != 0 {
		t.Errorf("cut=0 left Rect.Width() = %v, want 0", b.Rect.Width())
	}

	full := &registry.Geometry{ViewBox: registry.ViewBox{Width: 800, Height: 100}, Path: "M0 0 Z", Cut: registry.Float(800)}
	b, err = Compute(full, viewport.Desktop, SideRight, 100, nil)
	if err != nil {
		t.Fatalf("Compute(cut=width) error = %v", err)
	}
	if b.Protrusion() != 0 {
		t.Errorf("cut=width Protrusion() = %v, want 0", b.Protrusion())
	}
	if b.Rect.Width() != viewport.Desktop.ReferenceWidth() {
		t.Errorf("cut=width right Rect.Width() = %v, want the full reference width", b.Rect.Width())
	}
}

func TestComputeMirroredAreas(t *testing.T) {
	// A shape spanning the whole reference width, cut in the middle, so the
	// left and right halves mirror each other about the cut.
	g := &registry.Geometry{
		ViewBox:   registry.ViewBox{Width: 1920, Height: 300},
		Path:      "M0 0 L960 150 L0 300 Z",
		InnerPath: "M1920 0 L960 150 L1920 300 Z",
		Cut:       registry.Float(960),
	}
	left, err := Compute(g, viewport.Desktop, SideLeft, 500, nil)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Compute(g, viewport.Desktop, SideRight, 500, &Zoom{Factor: 1})
	if err != nil {
		t.Fatal(err)
	}
	if left.Rect.Area() != right.Rect.Area() {
		t.Errorf("mirrored areas differ: left %v, right %v", left.Rect.Area(), right.Rect.Area())
	}
}

func TestComputeRejects(t *testing.T) {
	narrow := &registry.Geometry{ViewBox: registry.ViewBox{Width: 400, Height: 100}, Path: "M0 0 Z", Cut: registry.Float(100)}
	tests := []struct {
		name      string
		g         *registry.Geometry
		class     viewport.Class
		side      Side
		pane      float64
		zoom      *Zoom
		wantField string
	}{
		{"nil geometry", nil, viewport.Desktop, SideLeft, 100, nil, "geometry"},
		{"bad record", &registry.Geometry{ViewBox: registry.ViewBox{Width: 1, Height: 1}}, viewport.Desktop, SideLeft, 100, nil, "path"},
		{"unknown viewport", wave, viewport.Class("tv"), SideLeft, 100, nil, "viewport"},
		{"zero pane", wave, viewport.Desktop, SideLeft, 0, nil, "paneHeight"},
		{"negative pane", wave, viewport.Desktop, SideRight, -5, nil, "paneHeight"},
		{"zoom on left", wave, viewport.Desktop, SideLeft, 100, &Zoom{Factor: 1}, "zoom"},
		{"zero factor", wave, viewport.Desktop, SideRight, 100, &Zoom{Factor: 0}, "zoomFactor"},
		{"negative padding", wave, viewport.Desktop, SideRight, 100, &Zoom{Factor: 1, PaddingLeft: -1}, "paddingLeft"},
		{"negative top padding", wave, viewport.Desktop, SideRight, 100, &Zoom{Factor: 1, PaddingTop: -1}, "paddingTop"},
		{"negative rect width", narrow, viewport.Mobile, SideRight, 100, &Zoom{Factor: 2, PaddingLeft: 50}, "rectWidth"},
		{"unknown side", wave, viewport.Desktop, Side(7), 100, nil, "side"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.g, tt.class, tt.side, tt.pane, tt.zoom)
			var se *errors.ShapeError
			if !stderrors.As(err, &se) || se.Kind != errors.KindConfig {
				t.Fatalf("Compute() error = %v, want KindConfig ShapeError", err)
			}
			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("Compute() error = %v, want wrapped *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

// narrowNoCut has no explicit cut and is narrower than half the desktop width.
func narrowNoCut() *registry.Geometry {
	return &registry.Geometry{ViewBox: registry.ViewBox{Width: 800, Height: 200}, Path: "M0 0 Z"}
}

func TestComputeDefaultCutBeyondShape(t *testing.T) {
	g := narrowNoCut()

	left, err := Compute(g, viewport.Desktop, SideLeft, 400, nil)
	if err != nil {
		t.Fatalf("Compute(left) error = %v", err)
	}
	if diff := cmp.Diff(RectFromLTWH(0, 0, 960, 400), left.Rect); diff != "" {
		t.Errorf("left Rect mismatch (-want +got):\n%s", diff)
	}

	// Protrusion is negative, so the right rect is wider than the reference width.
	right, err := Compute(g, viewport.Desktop, SideRight, 400, nil)
	if err != nil {
		t.Fatalf("Compute(right) error = %v", err)
	}
	if diff := cmp.Diff(RectFromLTWH(960, 0, 2080, 400), right.Rect); diff != "" {
		t.Errorf("right Rect mismatch (-want +got):\n%s", diff)
	}

	// An explicit cut outside the shape is still rejected.
	g.Cut = registry.Float(900)
	if _, err := Compute(g, viewport.Desktop, SideLeft, 400, nil); err == nil {
		t.Error("Compute() with cut past view_box.width should fail")
	}
}

func TestSideString(t *testing.T) {
	if SideLeft.String() != "left" || SideRight.String() != "right" {
		t.Errorf("Side strings = %q, %q", SideLeft, SideRight)
	}
}
