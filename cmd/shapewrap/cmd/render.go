package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-drift/shapewrap/pkg/geometry"
	"github.com/go-drift/shapewrap/pkg/shapewrap"
	"github.com/go-drift/shapewrap/pkg/style"
	"github.com/go-drift/shapewrap/pkg/viewport"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a shape and its wrap mask",
		Long: `Render a shape for one viewport class.

The left side produces a left-floated element whose shape-outside mask
follows the shape's viewport-specific geometry. The right side produces a
right-floated element for a zoomed modal overlay. The decorative side draws
the plain shape without any mask.

Flags:
  --viewport CLASS   mobile, tablet or desktop (default: desktop)
  --side SIDE        left, right or decorative (default: left)
  --id ID            Element id scope (default: <id_prefix>-<shape>)
  --pane HEIGHT      Height of the text pane (default: render.pane_height)
  --zoom FACTOR      Modal zoom factor (right side only)
  --pad-left PX      Modal left padding (right side only)
  --pad-top PX       Modal top padding (right side only)
  --scale-var NAME   CSS custom property holding the runtime scale
  --format FORMAT    json, html or css (default: json)

Unknown shapes print nothing and exit successfully.`,
		Usage: "shapewrap render <shape> [--viewport CLASS] [--side SIDE] [--pane HEIGHT] [--zoom F --pad-left L --pad-top T] [--format FORMAT]",
		Run:   runRender,
	})
}

// renderOptions are the flags shared by render and preview.
type renderOptions struct {
	shape      string
	viewport   viewport.Class
	side       string
	id         string
	paneHeight float64
	zoom       *geometry.Zoom
	scaleVar   string
	format     string
	out        string
	ppu        float64
}

func parseRenderOptions(args []string, e *env) (*renderOptions, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return nil, fmt.Errorf("shape name is required")
	}
	opts := &renderOptions{
		shape:      args[0],
		viewport:   viewport.Desktop,
		side:       "left",
		paneHeight: e.cfg.PaneHeight,
		scaleVar:   e.cfg.ScaleVar,
		format:     "json",
		ppu:        1,
	}

	var zoomSet bool
	zoom := geometry.Identity
	for i := 1; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		var err error
		switch name {
		case "--viewport":
			opts.viewport, err = viewport.Parse(value)
		case "--side":
			opts.side = strings.ToLower(value)
		case "--id":
			opts.id = value
		case "--pane":
			opts.paneHeight, err = parseNumber(name, value)
		case "--zoom":
			zoom.Factor, err = parseNumber(name, value)
			zoomSet = true
		case "--pad-left":
			zoom.PaddingLeft, err = parseNumber(name, value)
			zoomSet = true
		case "--pad-top":
			zoom.PaddingTop, err = parseNumber(name, value)
			zoomSet = true
		case "--scale-var":
			opts.scaleVar = value
		case "--format":
			opts.format = strings.ToLower(value)
		case "--out":
			opts.out = value
		case "--ppu":
			opts.ppu, err = parseNumber(name, value)
		default:
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		if err != nil {
			return nil, err
		}
	}

	switch opts.side {
	case "left", "decorative":
		if zoomSet {
			return nil, fmt.Errorf("--zoom, --pad-left and --pad-top only apply to --side right")
		}
	case "right":
		if zoomSet {
			opts.zoom = &zoom
		}
	default:
		return nil, fmt.Errorf("unknown side %q (use left, right or decorative)", opts.side)
	}
	if opts.id == "" {
		opts.id = e.cfg.IDPrefix + "-" + opts.shape
	}
	return opts, nil
}

func (o *renderOptions) request() shapewrap.Request {
	req := shapewrap.Request{
		Shape:      o.shape,
		Viewport:   o.viewport,
		ID:         o.id,
		PaneHeight: o.paneHeight,
		Zoom:       o.zoom,
	}
	if o.side == "right" {
		req.Side = geometry.SideRight
	}
	return req
}

func parseNumber(flag, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", flag, value)
	}
	return v, nil
}

func runRender(args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	opts, err := parseRenderOptions(args, e)
	if err != nil {
		return err
	}

	r := &shapewrap.Renderer{Source: e.registry, ScaleVar: opts.scaleVar}
	var el *shapewrap.Element
	if opts.side == "decorative" {
		el, err = r.RenderDecorative(opts.shape, opts.viewport)
	} else {
		el, err = r.Render(opts.request())
	}
	if err != nil {
		return err
	}
	return writeElement(os.Stdout, el, opts.format)
}

// elementOutput is the JSON shape of a rendered element.
type elementOutput struct {
	Shape      string        `json:"shape"`
	Viewport   string        `json:"viewport"`
	Context    string        `json:"context"`
	Silhouette string        `json:"silhouette"`
	MaskID     string        `json:"maskId,omitempty"`
	Mask       string        `json:"mask,omitempty"`
	Style      *style.Style  `json:"style,omitempty"`
	Bounds     *boundsOutput `json:"bounds,omitempty"`
}

type boundsOutput struct {
	Side   string  `json:"side"`
	Cut    float64 `json:"cut"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

func writeElement(w io.Writer, el *shapewrap.Element, format string) error {
	if el == nil {
		return nil
	}
	switch format {
	case "html":
		_, err := fmt.Fprintln(w, el.HTML())
		return err
	case "css":
		if el.Style == nil {
			return fmt.Errorf("decorative shapes have no wrap style")
		}
		_, err := fmt.Fprintln(w, el.Style.CSS())
		return err
	case "json":
		out := elementOutput{
			Shape:      el.Shape,
			Viewport:   el.Viewport.String(),
			Context:    el.Context.String(),
			Silhouette: el.Silhouette,
		}
		if el.Mask != nil {
			out.MaskID = el.Mask.ID
			out.Mask = el.Mask.Markup
		}
		out.Style = el.Style
		if b := el.Bounds; b != nil {
			out.Bounds = &boundsOutput{
				Side:   b.Side.String(),
				Cut:    b.Cut,
				Width:  b.Rect.Width(),
				Height: b.Rect.Height(),
				Scale:  b.Scale,
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format %q (use json, html or css)", format)
	}
}
