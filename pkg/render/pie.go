package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/color"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render/markup"
)

const (
	pieRadiusRatio = 0.9
	pieLabelRadius = 0.7
	pieLabelMinPct = 0.02 // slices at most this share get no inline label
	pieStartAngle  = -math.Pi / 2
)

var pieCanvas = canvas{
	kind:    chart.KindPie,
	width:   700,
	height:  500,
	padding: layout.Padding{Top: 80, Right: 40, Bottom: 40, Left: 40},
}

// Pie renders pie charts from the first dataset.
type Pie struct{}

// Kind implements [Renderer].
func (Pie) Kind() chart.Kind { return chart.KindPie }

// Plan implements [Renderer].
func (Pie) Plan(spec *chart.Spec) Frame {
	c := pieCanvas
	legend := layout.PlanLegend(spec, c.width, c.height)
	width, height := legend.Grow(c.width, c.height)

	f := Frame{Kind: c.kind, Width: width, Height: height, Legend: legend}
	ds := spec.Datasets()
	if len(ds) == 0 || len(ds[0].Data) == 0 {
		f.Empty = true
		return f
	}
	f.Padding = c.padding.WithLegend(legend)
	f.ChartWidth = width - f.Padding.Left - f.Padding.Right
	f.ChartHeight = height - f.Padding.Top - f.Padding.Bottom
	f.Bounds = layout.PlainBounds(f.Padding, f.ChartWidth, f.ChartHeight)
	return f
}

// Render implements [Renderer].
func (p Pie) Render(spec *chart.Spec) []byte {
	f := p.Plan(spec)
	if f.Empty {
		return markup.Placeholder(f.Width, f.Height, NoDataText)
	}

	var buf bytes.Buffer
	markup.Open(&buf, f.Width, f.Height)
	writeTitle(&buf, spec, f.Width)

	for _, s := range PieSlices(spec, f) {
		fmt.Fprintf(&buf, `<path class="slice" d="%s" fill="%s" />`, s.Path, markup.Escape(s.Color))
		if s.Share <= pieLabelMinPct {
			continue
		}
		mid := s.Start + s.Sweep/2
		lx := s.CX + s.Radius*pieLabelRadius*math.Cos(mid)
		ly := s.CY + s.Radius*pieLabelRadius*math.Sin(mid)
		fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-size="11" font-weight="bold" fill="white">%s</text>`,
			markup.Num(lx), markup.Num(ly), markup.Num(s.Value))
		fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-size="9" fill="white">(%s%%)</text>`,
			markup.Num(lx), markup.Num(ly+12), markup.Fixed(s.Share*100, 1))
	}

	layout.RenderLegend(&buf, spec, f.Width, f.Bounds, f.Legend)
	markup.Close(&buf)
	return buf.Bytes()
}

// Slice is one drawn pie wedge. Angles are in radians, clockwise from the
// positive x axis in screen coordinates.
type Slice struct {
	Index  int
	Value  float64
	Share  float64 // Value / total
	Start  float64
	Sweep  float64
	CX, CY float64
	Radius float64
	Color  string
	Path   string
}

// PieSlices computes the wedges of a planned pie frame. Wedges start at 12
// o'clock and sweep clockwise in proportion to value/total, where total sums
// the positive values. Null and non-positive values draw nothing; a zero total
// yields no wedges.
func PieSlices(spec *chart.Spec, f Frame) []Slice {
	datasets := spec.Datasets()
	if len(datasets) == 0 {
		return nil
	}
	ds := &datasets[0]
	total := layout.PieTotal(ds)
	if total <= 0 {
		return nil
	}

	radius := math.Min(f.ChartWidth, f.ChartHeight) / 2 * pieRadiusRatio
	cx := f.Bounds.Left + f.ChartWidth/2
	cy := f.Bounds.Top + f.ChartHeight/2

	var slices []Slice
	start := pieStartAngle
	for i, v := range ds.Data {
		if !v.Valid || v.Float64 <= 0 {
			continue
		}
		share := v.Float64 / total
		sweep := share * 2 * math.Pi
		slices = append(slices, Slice{
			Index:  i,
			Value:  v.Float64,
			Share:  share,
			Start:  start,
			Sweep:  sweep,
			CX:     cx,
			CY:     cy,
			Radius: radius,
			Color:  color.Resolve(ds, i, 0, false, true),
			Path:   wedgePath(cx, cy, radius, start, sweep),
		})
		start += sweep
	}
	return slices
}

// wedgePath returns the SVG path of a wedge. A full circle cannot be drawn as
// a single arc since its end point equals its start point, so it is split
// into two half arcs.
func wedgePath(cx, cy, r, start, sweep float64) string {
	x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if sweep >= 2*math.Pi-1e-9 {
		xm, ym := cx+r*math.Cos(start+math.Pi), cy+r*math.Sin(start+math.Pi)
		return fmt.Sprintf("M %s,%s L %s,%s A %s,%s 0 0 1 %s,%s A %s,%s 0 0 1 %s,%s Z",
			markup.Num(cx), markup.Num(cy), markup.Num(x1), markup.Num(y1),
			markup.Num(r), markup.Num(r), markup.Num(xm), markup.Num(ym),
			markup.Num(r), markup.Num(r), markup.Num(x1), markup.Num(y1))
	}
	x2, y2 := cx+r*math.Cos(start+sweep), cy+r*math.Sin(start+sweep)
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %s,%s L %s,%s A %s,%s 0 %d 1 %s,%s Z",
		markup.Num(cx), markup.Num(cy), markup.Num(x1), markup.Num(y1),
		markup.Num(r), markup.Num(r), large, markup.Num(x2), markup.Num(y2))
}
