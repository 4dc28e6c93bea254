package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/go-drift/shapewrap/pkg/preview"
	"github.com/go-drift/shapewrap/pkg/registry"
	"github.com/go-drift/shapewrap/pkg/shapewrap"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Rasterize a wrap mask to PNG",
		Long: `Rasterize the wrap mask of a shape to a grayscale PNG.

Opaque pixels are where text may flow; the shape itself is transparent.
The image spans the mask rectangle. Left-side previews run from the left
edge to the cut; right-side previews start at the cut.

Flags:
  --out FILE         Output PNG path (required)
  --ppu N            Pixels per user unit (default: 1)

All render flags except --format are accepted.`,
		Usage: "shapewrap preview <shape> --out FILE [--viewport CLASS] [--side SIDE] [--ppu N]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	opts, err := parseRenderOptions(args, e)
	if err != nil {
		return err
	}
	if opts.out == "" {
		return fmt.Errorf("--out is required")
	}
	if opts.side == "decorative" {
		return fmt.Errorf("decorative shapes have no mask to preview")
	}

	r := &shapewrap.Renderer{Source: e.registry, ScaleVar: opts.scaleVar}
	el, err := r.Render(opts.request())
	if err != nil {
		return err
	}
	if el == nil {
		return nil
	}
	g, _ := registry.Resolve(e.registry, el.Shape, el.Viewport, el.Context)

	img, err := preview.Render(g, *el.Bounds, opts.ppu)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := preview.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	e.log.Info("wrote preview",
		zap.String("path", opts.out),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Float64("coverage", preview.Coverage(img)),
	)
	return nil
}
