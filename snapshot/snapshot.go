// Package snapshot runs the whole pipeline for one code snapshot: validate the
// parameters, assemble the component tree, lay it out, draw and encode it.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
	"github.com/ByLCY/codeshot/renderer"
	canvasrenderer "github.com/ByLCY/codeshot/renderer/canvas"
)

// Image is an encoded snapshot together with the layout it was drawn from.
type Image struct {
	Name   string
	Format renderer.Format
	Data   []byte
	// Width and Height are in logical pixels; the raster size is multiplied by Scale.
	Width  float64
	Height float64
	Scale  float64

	Tree   *layout.Tree
	Layout *layout.Result
}

// Options are shared by every job. All fields are optional.
type Options struct {
	Logger *log.Logger
	// Syntaxes and Cache may be shared between jobs; both are safe for concurrent use.
	Syntaxes *highlight.SyntaxSet
	Cache    *highlight.Cache
	// Fonts supplies embedded font bytes; the directory comes from the snapshot.
	Fonts map[string]fonts.Faces
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Syntaxes == nil {
		o.Syntaxes = highlight.NewSyntaxSet()
	}
}

// Take renders one snapshot. Cancellation is checked before layout and before
// drawing; a started render pass runs to completion.
func Take(ctx context.Context, params *config.Snapshot, opts Options) (*Image, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: nil snapshot", config.ErrInvalid)
	}
	opts.setDefaults()
	logger := opts.Logger.With("snapshot", params.Name)
	start := time.Now()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	format, err := renderer.ParseFormat(params.Output.Format)
	if err != nil {
		return nil, err
	}
	provider, err := highlight.NewProvider(params.Output.Theme, opts.Syntaxes, opts.Cache)
	if err != nil {
		return nil, err
	}

	src := fonts.Source{Dir: params.Fonts.Dir, Embedded: opts.Fonts}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: src, Logger: logger})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, _, err := BuildTree(params, provider.Theme(), r)
	if err != nil {
		return nil, fmt.Errorf("组装组件树失败: %w", err)
	}
	res := layout.Compute(tree, layout.Options{})
	logger.Debug("layout done", "nodes", len(res.Order), "width", res.Width, "height", res.Height)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc := &renderer.Context{
		ScaleFactor: params.Output.Scale,
		Theme:       provider,
		Fonts:       src,
		Params:      params,
		Format:      format,
	}
	data, err := r.Render(tree, res, rc)
	if err != nil {
		return nil, err
	}
	logger.Debug("snapshot rendered", "format", format, "bytes", len(data), "elapsed", time.Since(start).Round(time.Millisecond))

	return &Image{
		Name:   params.Name,
		Format: format,
		Data:   data,
		Width:  res.Width,
		Height: res.Height,
		Scale:  params.Output.Scale,
		Tree:   tree,
		Layout: res,
	}, nil
}

// TakeAll renders independent snapshots in parallel, at most GOMAXPROCS at a time.
// Results keep the order of params; the first failure cancels the rest.
func TakeAll(ctx context.Context, params []*config.Snapshot, opts Options) ([]*Image, error) {
	opts.setDefaults()
	if opts.Cache == nil {
		opts.Cache = highlight.NewCache(0)
	}
	images := make([]*Image, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range params {
		g.Go(func() error {
			img, err := Take(gctx, p, opts)
			if err != nil {
				name := fmt.Sprintf("#%d", i)
				if p != nil && p.Name != "" {
					name = p.Name
				}
				return fmt.Errorf("快照 %s: %w", name, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
