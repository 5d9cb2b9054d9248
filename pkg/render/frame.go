package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render/markup"
)

// NoDataText is drawn on the placeholder canvas for empty charts.
const NoDataText = "No data"

// Frame is the planned geometry of one chart.
type Frame struct {
	Kind        chart.Kind          `json:"kind"`
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Empty       bool                `json:"empty,omitempty"`
	Legend      layout.LegendLayout `json:"legend"`
	Padding     layout.Padding      `json:"padding"`
	Labels      layout.LabelPlan    `json:"labels"`
	Axis        layout.AxisPlan     `json:"axis"`
	Bounds      layout.Bounds       `json:"bounds"`
	ChartWidth  float64             `json:"chart_width"`
	ChartHeight float64             `json:"chart_height"`
	Stacked     bool                `json:"stacked,omitempty"`
}

// Renderer draws one chart kind.
type Renderer interface {
	Kind() chart.Kind
	// Plan computes the frame without drawing.
	Plan(spec *chart.Spec) Frame
	// Render draws the chart. The spec must have passed [chart.Spec.Validate].
	Render(spec *chart.Spec) []byte
}

var renderers = map[chart.Kind]Renderer{
	chart.KindBar:  Bar{},
	chart.KindLine: Line{},
	chart.KindPie:  Pie{},
}

// For returns the renderer for kind.
func For(kind chart.Kind) (Renderer, bool) {
	r, ok := renderers[kind]
	return r, ok
}

// canvas is a renderer's nominal page size and base padding.
type canvas struct {
	kind          chart.Kind
	width, height float64
	padding       layout.Padding
}

// planCartesian plans a bar or line chart. The legend is planned against the
// nominal canvas, the canvas grows by its footprint, rotated labels grow the
// bottom padding and the legend's reserved space is added once.
func planCartesian(spec *chart.Spec, c canvas) Frame {
	legend := layout.PlanLegend(spec, c.width, c.height)
	width, height := legend.Grow(c.width, c.height)

	f := Frame{Kind: c.kind, Width: width, Height: height, Legend: legend}
	if len(spec.Datasets()) == 0 {
		f.Empty = true
		return f
	}

	base := c.padding
	labels := spec.Labels()
	f.Labels = layout.PlanLabels(labels, width-base.Left-base.Right, layout.DefaultLabelFontSize)
	if f.Labels.ShouldRotate {
		base.Bottom += f.Labels.RequiredHeight
	}
	f.Padding = base.WithLegend(legend)
	f.ChartWidth = width - f.Padding.Left - f.Padding.Right
	f.ChartHeight = height - f.Padding.Top - f.Padding.Bottom
	f.Axis = layout.PlanAxis(spec)
	f.Bounds = layout.ComputeBounds(spec, f.Padding, f.ChartHeight, f.ChartWidth, labels)
	f.Stacked = spec.Stacked()
	return f
}

// y maps a value to its vertical canvas coordinate.
func (f Frame) y(v float64) float64 {
	return f.Padding.Top + f.ChartHeight - f.Axis.Scale(v, f.ChartHeight)
}

// gridStyle configures gridlines and y tick labels.
type gridStyle struct {
	lineAttrs string
	labelDX   float64
	labelAttr string
}

func writeGrid(buf *bytes.Buffer, f Frame, s gridStyle) {
	for _, tick := range f.Axis.Ticks() {
		y := f.y(tick)
		fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`,
			markup.Num(f.Padding.Left), markup.Num(y), markup.Num(f.Width-f.Padding.Right), markup.Num(y), s.lineAttrs)
		fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="end" %s>%s</text>`,
			markup.Num(f.Padding.Left-s.labelDX), markup.Num(y+4), s.labelAttr, tickLabel(tick, f.Axis.TickStep))
	}
}

// tickLabel prints integral ticks as integers and others with one decimal,
// or two when the step is below 1.
func tickLabel(tick, step float64) string {
	if markup.IsInteger(tick) {
		return markup.Num(tick)
	}
	if step < 1 {
		return markup.Fixed(tick, 2)
	}
	return markup.Fixed(tick, 1)
}

// labelStyle configures x-axis category labels.
type labelStyle struct {
	dy          float64
	rotatedAttr string
	flatAttr    string
}

func writeXLabel(buf *bytes.Buffer, rotate bool, x, y float64, text string, s labelStyle) {
	if rotate {
		fmt.Fprintf(buf, `<text transform="translate(%s, %s) rotate(-45)" text-anchor="end" %s>%s</text>`,
			markup.Num(x), markup.Num(y), s.rotatedAttr, markup.Escape(text))
		return
	}
	fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="middle" %s>%s</text>`,
		markup.Num(x), markup.Num(y), s.flatAttr, markup.Escape(text))
}

func writeTitle(buf *bytes.Buffer, spec *chart.Spec, width float64) {
	ts, ok := spec.Options.TitleStyle()
	if !ok {
		return
	}
	fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="middle" font-size="%s" font-weight="bold" fill="%s">%s</text>`,
		markup.Num(width/2), markup.Num(ts.FontSize+12), markup.Num(ts.FontSize), markup.Escape(ts.Color), markup.Escape(ts.Text))
}

// axisTitleStyle configures the axis title text.
type axisTitleStyle struct {
	xOffset float64
	attrs   string
}

func writeAxisTitles(buf *bytes.Buffer, spec *chart.Spec, f Frame, s axisTitleStyle) {
	if x := spec.Options.XTitle(); x != "" {
		fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="middle" %s>%s</text>`,
			markup.Num(f.Width/2), markup.Num(f.Padding.Top+f.ChartHeight+s.xOffset), s.attrs, markup.Escape(x))
	}
	if y := spec.Options.YTitle(); y != "" {
		fmt.Fprintf(buf, `<text transform="rotate(-90)" x="%s" y="25" text-anchor="middle" %s>%s</text>`,
			markup.Num(-f.Height/2), s.attrs, markup.Escape(y))
	}
}
