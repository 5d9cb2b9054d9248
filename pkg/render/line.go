package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/color"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render/markup"
)

var lineCanvas = canvas{
	kind:    chart.KindLine,
	width:   1100,
	height:  800,
	padding: layout.Padding{Top: 100, Right: 80, Bottom: 150, Left: 100},
}

// Line renders line charts: one polyline per dataset with point markers.
type Line struct{}

// Kind implements [Renderer].
func (Line) Kind() chart.Kind { return chart.KindLine }

// Plan implements [Renderer].
func (Line) Plan(spec *chart.Spec) Frame { return planCartesian(spec, lineCanvas) }

// Render implements [Renderer].
func (l Line) Render(spec *chart.Spec) []byte {
	f := l.Plan(spec)
	if f.Empty {
		return markup.Placeholder(f.Width, f.Height, NoDataText)
	}

	var buf bytes.Buffer
	markup.Open(&buf, f.Width, f.Height)
	writeTitle(&buf, spec, f.Width)
	writeGrid(&buf, f, gridStyle{
		lineAttrs: `stroke="#e0e0e0" stroke-width="1" `,
		labelDX:   10,
		labelAttr: `font-size="11" fill="#666"`,
	})

	labels := spec.Labels()
	step := xStep(f.ChartWidth, len(labels))
	for i, label := range labels {
		x := f.Padding.Left + float64(i)*step
		writeXLabel(&buf, f.Labels.ShouldRotate, x, f.Padding.Top+f.ChartHeight+25, label, labelStyle{
			rotatedAttr: `font-size="10" fill="#666"`,
			flatAttr:    `font-size="11" fill="#666"`,
		})
	}

	datasets := spec.Datasets()
	for j := range datasets {
		ds := &datasets[j]
		var points []string
		for i, v := range ds.Data {
			if !v.Valid {
				continue
			}
			points = append(points, markup.Num(f.Padding.Left+float64(i)*step)+","+markup.Num(f.y(v.Float64)))
		}
		if len(points) > 0 {
			fmt.Fprintf(&buf, `<polyline class="series" fill="none" stroke="%s" stroke-width="2" points="%s" />`,
				markup.Escape(color.Resolve(ds, 0, j, false, false)), strings.Join(points, " "))
		}

		r := ds.Radius()
		if r <= 0 {
			continue
		}
		for i, v := range ds.Data {
			if !v.Valid {
				continue
			}
			x, y := f.Padding.Left+float64(i)*step, f.y(v.Float64)
			fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="%s" />`,
				markup.Num(x), markup.Num(y), markup.Num(r), markup.Escape(color.Resolve(ds, i, j, false, false)))
			if v.Float64 != 0 {
				fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-size="9" font-weight="bold" fill="#333">%s</text>`,
					markup.Num(x), markup.Num(y-10), markup.Num(v.Float64))
			}
		}
	}

	writeAxisTitles(&buf, spec, f, axisTitleStyle{
		xOffset: 80,
		attrs:   `font-size="13" font-weight="bold" fill="#333"`,
	})
	layout.RenderLegend(&buf, spec, f.Width, f.Bounds, f.Legend)
	markup.Close(&buf)
	return buf.Bytes()
}

// xStep spreads n points across width with the first and last on the edges.
// A single point sits at the left edge.
func xStep(width float64, n int) float64 {
	if n > 1 {
		return width / float64(n-1)
	}
	return width
}
