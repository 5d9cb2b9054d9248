package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/color"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render/markup"
)

const (
	barGutter       = 0.1 // fraction of each category group left empty
	barLabelMinH    = 15  // segments at most this tall get no value label
	barLabelInvertH = 25  // segments taller than this get white labels
	barTotalOffset  = 5
	barXLabelOffset = 20
	barXTitleOffset = 60
)

var barCanvas = canvas{
	kind:    chart.KindBar,
	width:   900,
	height:  600,
	padding: layout.Padding{Top: 80, Right: 50, Bottom: 100, Left: 80},
}

// Bar renders grouped and stacked bar charts.
type Bar struct{}

// Kind implements [Renderer].
func (Bar) Kind() chart.Kind { return chart.KindBar }

// Plan implements [Renderer].
func (Bar) Plan(spec *chart.Spec) Frame { return planCartesian(spec, barCanvas) }

// Render implements [Renderer].
func (b Bar) Render(spec *chart.Spec) []byte {
	f := b.Plan(spec)
	if f.Empty {
		return markup.Placeholder(f.Width, f.Height, NoDataText)
	}

	var buf bytes.Buffer
	markup.Open(&buf, f.Width, f.Height)
	writeTitle(&buf, spec, f.Width)
	writeGrid(&buf, f, gridStyle{
		lineAttrs: `stroke="#e0e0e0" `,
		labelDX:   8,
		labelAttr: `font-size="12"`,
	})

	labels := spec.Labels()
	groupW := f.ChartWidth / float64(max(1, len(labels)))
	for i, label := range labels {
		x := f.Padding.Left + float64(i)*groupW + groupW/2
		y := f.Padding.Top + f.ChartHeight + barXLabelOffset
		writeXLabel(&buf, f.Labels.ShouldRotate, x, y, label, labelStyle{
			rotatedAttr: `font-size="10"`,
			flatAttr:    `font-size="12"`,
		})
	}

	for _, seg := range BarSegments(spec, f) {
		fmt.Fprintf(&buf, `<rect class="bar" x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
			markup.Num(seg.X), markup.Num(seg.Y), markup.Num(seg.Width), markup.Num(seg.Height), markup.Escape(seg.Color))
		if seg.Height > barLabelMinH && seg.Value > 0 {
			fill := "#333"
			if seg.Height > barLabelInvertH {
				fill = "white"
			}
			fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-size="10" font-weight="bold" fill="%s">%s</text>`,
				markup.Num(seg.X+seg.Width/2), markup.Num(seg.Y+seg.Height/2+4), fill, markup.Num(seg.Value))
		}
	}

	if f.Stacked && f.Axis.YMax > 0 {
		for i := range labels {
			var total float64
			for j := range spec.Datasets() {
				total += spec.Datasets()[j].At(i).Or0()
			}
			if total <= 0 {
				continue
			}
			x := f.Padding.Left + float64(i)*groupW + groupW/2
			fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-size="11" font-weight="bold" fill="#333">%s</text>`,
				markup.Num(x), markup.Num(f.y(total)-barTotalOffset), markup.Num(total))
		}
	}

	writeAxisTitles(&buf, spec, f, axisTitleStyle{
		xOffset: barXTitleOffset,
		attrs:   `font-size="14" font-weight="bold"`,
	})
	layout.RenderLegend(&buf, spec, f.Width, f.Bounds, f.Legend)
	markup.Close(&buf)
	return buf.Bytes()
}

// Segment is one drawn bar rectangle.
type Segment struct {
	Category int
	Dataset  int
	Value    float64
	X, Y     float64
	Width    float64
	Height   float64
	Color    string
}

// BarSegments computes the bar rectangles of a planned frame.
//
// Each category owns chartWidth/len(labels) with a 10% gutter. Grouped
// datasets split the remaining width evenly; stacked datasets share it and
// accumulate upward from a running per-category offset. Null values and
// segments without positive height are skipped.
func BarSegments(spec *chart.Spec, f Frame) []Segment {
	labels := spec.Labels()
	datasets := spec.Datasets()
	if len(labels) == 0 || len(datasets) == 0 {
		return nil
	}

	groupW := f.ChartWidth / float64(len(labels))
	totalW := groupW * (1 - barGutter)
	barW := totalW
	if !f.Stacked {
		barW = totalW / float64(len(datasets))
	}
	offset := make([]float64, len(labels))

	var segs []Segment
	for j := range datasets {
		ds := &datasets[j]
		for i, v := range ds.Data {
			if !v.Valid || i >= len(labels) {
				continue
			}
			h := f.Axis.Scale(v.Float64, f.ChartHeight)
			if h <= 0 {
				continue
			}
			groupX := f.Padding.Left + float64(i)*groupW + groupW*barGutter/2
			seg := Segment{
				Category: i,
				Dataset:  j,
				Value:    v.Float64,
				Width:    barW,
				Height:   h,
				Color:    color.Resolve(ds, i, j, f.Stacked, false),
			}
			if f.Stacked {
				seg.X = groupX
				seg.Y = f.y(v.Float64 + offset[i])
				offset[i] += v.Float64
			} else {
				seg.X = groupX + float64(j)*barW
				seg.Y = f.y(v.Float64)
			}
			segs = append(segs, seg)
		}
	}
	return segs
}
