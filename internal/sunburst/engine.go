// Package sunburst wires the resolve, aggregate, layout and color stages into
// one call per input change.
package sunburst

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/hierarchy"
	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
	"github.com/aims-dev/sectorburst/internal/palette"
	"github.com/aims-dev/sectorburst/internal/render"
)

// Options controls a pipeline run.
type Options struct {
	IncludeUnallocated bool
	Render             render.Options
}

// Engine runs the pipeline. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	builder *hierarchy.Builder
	palette *palette.Palette
	opts    Options
	log     zerolog.Logger
}

// NewEngine creates an Engine over a reference resolver and palette.
func NewEngine(resolver hierarchy.Resolver, p *palette.Palette, opts Options, log zerolog.Logger) *Engine {
	return &Engine{
		builder: hierarchy.NewBuilder(resolver, log),
		palette: p,
		opts:    opts,
		log:     log.With().Str("component", "sunburst").Logger(),
	}
}

// Result is everything derived from one allocation list.
type Result struct {
	Tree      *hierarchy.Tree
	Layout    *layout.Layout // nil when there is nothing to draw
	Colors    map[model.Path]colorful.Color
	Remainder decimal.Decimal
	Total     decimal.Decimal

	renderOpts render.Options
}

// Run rebuilds the whole pipeline from allocs.
func (e *Engine) Run(allocs []model.Allocation) *Result {
	tree := e.builder.Build(allocs)
	total := layout.Total(tree, e.opts.IncludeUnallocated)
	l, ok := layout.Compute(tree, total)
	if !ok {
		e.log.Debug().Int("allocations", len(allocs)).Msg("Nothing to lay out")
	}

	return &Result{
		Tree:       tree,
		Layout:     l,
		Colors:     e.palette.Assign(tree),
		Remainder:  hierarchy.Remainder(allocs),
		Total:      total,
		renderOpts: e.opts.Render,
	}
}

// Chart returns a renderer for the result.
func (r *Result) Chart(h render.Handlers) *render.Chart {
	return render.NewChart(r.Layout, r.Colors, r.renderOpts, h)
}

// Terminal renders the result as a terminal tree.
func (r *Result) Terminal() string {
	return render.Terminal(r.Layout, r.Colors, r.Remainder, r.Tree.Skipped())
}
