package style

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-drift/shapewrap/pkg/geometry"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		b        geometry.Bounds
		scaleVar string
		want     Style
	}{
		{
			name: "left default var",
			b:    geometry.Bounds{Side: geometry.SideLeft, Rect: geometry.RectFromLTWH(0, 0, 960, 400)},
			want: Style{
				Width:        "calc(var(--scale) * 960px)",
				Height:       "calc(var(--scale) * 400px)",
				Float:        "left",
				ShapeOutside: "data:x",
			},
		},
		{
			name:     "right custom var",
			b:        geometry.Bounds{Side: geometry.SideRight, Rect: geometry.RectFromLTWH(480, -5, 1780, 305)},
			scaleVar: "--page-scale",
			want: Style{
				Width:        "calc(var(--page-scale) * 1780px)",
				Height:       "calc(var(--page-scale) * 305px)",
				Float:        "right",
				ShapeOutside: "data:x",
			},
		},
		{
			name: "fractional",
			b:    geometry.Bounds{Side: geometry.SideLeft, Rect: geometry.RectFromLTWH(0, 0, 12.5, 0.25)},
			want: Style{
				Width:        "calc(var(--scale) * 12.5px)",
				Height:       "calc(var(--scale) * 0.25px)",
				Float:        "left",
				ShapeOutside: "data:x",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project(tt.b, "data:x", tt.scaleVar)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(Style{}, "RawWidth", "RawHeight")); diff != "" {
				t.Errorf("Project() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	s, err := Project(geometry.Bounds{Rect: geometry.RectFromLTWH(0, 0, 960, 400)}, "", "")
	if err != nil {
		t.Fatal(err)
	}
	w, h := s.Resolve(0.5)
	if w != 480 || h != 200 {
		t.Errorf("Resolve(0.5) = %v, %v; want 480, 200", w, h)
	}
}

func TestCSS(t *testing.T) {
	s := Style{Width: "calc(var(--scale) * 1px)", Height: "calc(var(--scale) * 2px)", Float: "left", ShapeOutside: "data:image/svg+xml;base64,PHN2Zy8+"}
	got := s.CSS()
	want := `float: left; width: calc(var(--scale) * 1px); height: calc(var(--scale) * 2px); shape-outside: url("data:image/svg+xml;base64,PHN2Zy8+");`
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
	s.ShapeOutside = ""
	if strings.Contains(s.CSS(), "shape-outside") {
		t.Error("CSS() should omit shape-outside when there is no mask")
	}
}

func TestValidateScaleVar(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "--scale", false},
		{"dashed", "--page-scale_2", false},
		{"no prefix", "scale", true},
		{"bare prefix", "--", true},
		{"space", "--a b", true},
		{"paren", "--a)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScaleVar(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScaleVar(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
