package shapewrap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/shapewrap/pkg/errors"
)

// RenderAll renders independent requests concurrently, running at most
// limit renders at once (limit <= 0 means no limit). Results are in request
// order; unknown shapes leave a nil entry. The first failure cancels the
// remaining renders and is returned.
func (r *Renderer) RenderAll(ctx context.Context, reqs []Request, limit int) ([]*Element, error) {
	out := make([]*Element, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		g.Go(func() (err error) {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer errors.RecoverWithCallback("shapewrap.RenderAll", func(v any) {
				err = &errors.ShapeError{Op: "shapewrap.RenderAll", Kind: errors.KindPanic, Shape: req.Shape, Err: fmt.Errorf("panic: %v", v)}
			})
			el, err := r.Render(req)
			if err != nil {
				return err
			}
			out[i] = el
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
