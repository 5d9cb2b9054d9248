// Package color resolves the fill color of chart elements.
//
// Resolution runs an ordered chain of [Strategy] values; the first strategy
// that produces a color wins. The default chain is:
//
//  1. background color list
//  2. single background color
//  3. border color list
//  4. single border color
//  5. the built-in 15-color [Palette]
//
// If every strategy declines, [Fallback] is returned, so resolution never
// yields an empty color.
//
// List-valued settings are indexed by category for pie charts and for
// non-stacked charts with more than one color, reuse their only color for
// stacked charts, and are otherwise indexed by series. The choice determines
// whether legends group by category or by series.
package color

import "github.com/matzehuels/chartkit/pkg/chart"

// Fallback is returned when no strategy resolves a color.
const Fallback = "#000000"

// Palette is the default color cycle.
var Palette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#F7464A", "#46BFBD", "#FDB45C", "#949FB1",
	"#2196F3", "#4CAF50", "#FFEB3B", "#FF5722", "#607D8B",
}

// Context describes the element being colored.
type Context struct {
	Dataset      *chart.Dataset
	DataIndex    int // category index
	DatasetIndex int // series index
	Stacked      bool
	PieLike      bool
}

// perCategory reports whether a list of n colors is indexed by category.
func (c Context) perCategory(n int) bool {
	return c.PieLike || (!c.Stacked && n > 1)
}

// Strategy tries to produce a color for an element.
type Strategy interface {
	TryResolve(ctx Context) (string, bool)
}

// Channel selects which dataset color setting a strategy reads.
type Channel int

const (
	Background Channel = iota
	Border
)

func (ch Channel) of(ds *chart.Dataset) chart.Colors {
	if ds == nil {
		return chart.Colors{}
	}
	if ch == Border {
		return ds.BorderColor
	}
	return ds.BackgroundColor
}

// List resolves from a list-valued color setting.
type List struct{ Channel Channel }

// TryResolve implements [Strategy].
func (s List) TryResolve(ctx Context) (string, bool) {
	colors := s.Channel.of(ctx.Dataset)
	n := len(colors.Values)
	if !colors.List || n == 0 {
		return "", false
	}
	var idx int
	switch {
	case ctx.perCategory(n):
		idx = mod(ctx.DataIndex, n)
	case ctx.Stacked && n == 1:
		idx = 0
	default:
		idx = mod(ctx.DatasetIndex, n)
	}
	c := colors.Values[idx]
	return c, c != ""
}

// Single resolves from a single-color setting.
type Single struct{ Channel Channel }

// TryResolve implements [Strategy].
func (s Single) TryResolve(ctx Context) (string, bool) {
	return s.Channel.of(ctx.Dataset).Scalar()
}

// Cycle resolves from a fixed color cycle, by category for pie and
// non-stacked charts and by series for stacked charts.
type Cycle struct{ Colors []string }

// TryResolve implements [Strategy].
func (s Cycle) TryResolve(ctx Context) (string, bool) {
	n := len(s.Colors)
	if n == 0 {
		return "", false
	}
	idx := ctx.DatasetIndex
	if ctx.PieLike || !ctx.Stacked {
		idx = ctx.DataIndex
	}
	c := s.Colors[mod(idx, n)]
	return c, c != ""
}

// Resolver evaluates a chain of strategies in order.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver over the given strategies.
func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// DefaultResolver is the standard resolution chain.
var DefaultResolver = NewResolver(
	List{Background},
	Single{Background},
	List{Border},
	Single{Border},
	Cycle{Palette},
)

// ResolveContext returns the first color produced by the chain, or [Fallback].
func (r *Resolver) ResolveContext(ctx Context) string {
	for _, s := range r.strategies {
		if c, ok := s.TryResolve(ctx); ok {
			return c
		}
	}
	return Fallback
}

// Resolve returns the color for an element of ds.
func (r *Resolver) Resolve(ds *chart.Dataset, dataIndex, datasetIndex int, stacked, pieLike bool) string {
	return r.ResolveContext(Context{
		Dataset:      ds,
		DataIndex:    dataIndex,
		DatasetIndex: datasetIndex,
		Stacked:      stacked,
		PieLike:      pieLike,
	})
}

// Resolve resolves a color with [DefaultResolver].
func Resolve(ds *chart.Dataset, dataIndex, datasetIndex int, stacked, pieLike bool) string {
	return DefaultResolver.Resolve(ds, dataIndex, datasetIndex, stacked, pieLike)
}

func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
