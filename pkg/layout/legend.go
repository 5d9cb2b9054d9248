package layout

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/color"
	"github.com/matzehuels/chartkit/pkg/render/markup"
)

// Legend geometry.
const (
	LegendItemHeight = 24
	LegendItemWidth  = 200
	LegendPadding    = 15 // background panel padding
	LegendMargin     = 25 // gap between chart and legend
	legendSwatch     = 14
	legendSideInset  = 40
	legendMaxChars   = 15
)

// LegendItem is a single legend entry.
type LegendItem struct {
	Text  string  `json:"text"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
	// Percentage is the share of the pie total; nil for bar and line charts.
	Percentage *float64 `json:"percentage,omitempty"`
}

// LegendLayout is the legend footprint. All sizes are zero when the legend is
// disabled or has no items.
type LegendLayout struct {
	Position     chart.Position `json:"position"`
	ItemCount    int            `json:"item_count"`
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	ActualWidth  float64        `json:"actual_width"`
	ActualHeight float64        `json:"actual_height"`
	Margin       float64        `json:"margin"`
	Padding      float64        `json:"padding"`
	Columns      int            `json:"columns"`
}

// Active reports whether the legend occupies any space.
func (l LegendLayout) Active() bool {
	return l.Position != chart.PositionNone && l.Position != "" && l.ItemCount > 0
}

// GroupsByCategory reports whether a bar or line legend lists categories
// rather than series: a single dataset with a list-valued background color.
func GroupsByCategory(spec *chart.Spec) bool {
	ds := spec.Datasets()
	return len(ds) == 1 && ds[0].BackgroundColor.List
}

// LegendItems derives the legend entries, sorted by descending value with ties
// kept in their original order.
//
// Pie charts list each category with a positive value and its share of the
// total. Bar and line charts list categories when [GroupsByCategory] holds and
// otherwise each dataset with a positive total ("Dataset N" when unlabeled).
func LegendItems(spec *chart.Spec) []LegendItem {
	labels := spec.Labels()
	datasets := spec.Datasets()
	stacked := spec.Stacked()

	var items []LegendItem
	switch {
	case len(datasets) == 0:
		return nil
	case spec.Kind.PieLike():
		ds := &datasets[0]
		total := PieTotal(ds)
		for i, label := range labels {
			v := ds.At(i).Or0()
			if v <= 0 {
				continue
			}
			pct := v / total * 100
			items = append(items, LegendItem{
				Text:       label,
				Color:      color.Resolve(ds, i, 0, false, true),
				Value:      v,
				Percentage: &pct,
			})
		}
	case GroupsByCategory(spec):
		ds := &datasets[0]
		for i, label := range labels {
			v := ds.At(i).Or0()
			if v <= 0 {
				continue
			}
			items = append(items, LegendItem{
				Text:  label,
				Color: color.Resolve(ds, i, 0, stacked, false),
				Value: v,
			})
		}
	default:
		for j := range datasets {
			ds := &datasets[j]
			total := ds.Sum()
			if total <= 0 {
				continue
			}
			text := ds.Label
			if text == "" {
				text = fmt.Sprintf("Dataset %d", j+1)
			}
			items = append(items, LegendItem{
				Text:  text,
				Color: color.Resolve(ds, 0, j, stacked, false),
				Value: total,
			})
		}
	}

	slices.SortStableFunc(items, func(a, b LegendItem) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return items
}

// PieTotal returns the sum of the positive values of a pie dataset.
func PieTotal(ds *chart.Dataset) float64 {
	var total float64
	for _, v := range ds.Data {
		if v.Valid && v.Float64 > 0 {
			total += v.Float64
		}
	}
	return total
}

// PlanLegend computes the legend footprint against the given canvas size.
// Top and bottom legends flow into as many 200px columns as fit; left and
// right legends use a single column.
func PlanLegend(spec *chart.Spec, width, height float64) LegendLayout {
	position := spec.Options.LegendPosition()
	if position == chart.PositionNone {
		return LegendLayout{Position: chart.PositionNone}
	}
	n := len(LegendItems(spec))
	if n == 0 {
		return LegendLayout{Position: chart.PositionNone}
	}

	l := LegendLayout{
		Position:  position,
		ItemCount: n,
		Margin:    LegendMargin,
		Padding:   LegendPadding,
	}
	switch {
	case position.Horizontal():
		l.Columns = LegendColumns(width)
		rows := (n + l.Columns - 1) / l.Columns
		l.Width = float64(min(n, l.Columns)) * LegendItemWidth
		l.Height = float64(rows) * LegendItemHeight
		l.ActualWidth = l.Width + 2*LegendPadding
		l.ActualHeight = l.Height + 2*LegendPadding + LegendMargin
	case position.Vertical():
		l.Columns = 1
		l.Width = LegendItemWidth
		l.Height = float64(n) * LegendItemHeight
		l.ActualWidth = l.Width + 2*LegendPadding + LegendMargin
		l.ActualHeight = l.Height + 2*LegendPadding
	}
	return l
}

// LegendColumns returns how many legend columns fit across a canvas.
func LegendColumns(width float64) int {
	return max(1, int(math.Floor((width-legendSideInset)/LegendItemWidth)))
}

// Grow returns the canvas size extended by the legend footprint.
func (l LegendLayout) Grow(width, height float64) (float64, float64) {
	switch {
	case l.Position.Vertical():
		width += l.ActualWidth
	case l.Position.Horizontal():
		height += l.ActualHeight
	}
	return width, height
}

// RenderLegend writes the legend markup: a background panel followed by a
// swatch, label and value line per item. Labels longer than 15 characters are
// truncated with an ellipsis.
func RenderLegend(buf *bytes.Buffer, spec *chart.Spec, width float64, b Bounds, l LegendLayout) {
	if !l.Active() {
		return
	}
	items := LegendItems(spec)
	if len(items) == 0 {
		return
	}

	columns := max(1, l.Columns)
	var startX, startY float64
	switch l.Position {
	case chart.PositionTop:
		columns = LegendColumns(width)
		startX = (width - float64(min(len(items), columns))*LegendItemWidth) / 2
		startY = l.Padding
	case chart.PositionBottom:
		columns = LegendColumns(width)
		startX = (width - float64(min(len(items), columns))*LegendItemWidth) / 2
		startY = b.ActualBottom + l.Margin
	case chart.PositionRight:
		startX = b.ActualRight + l.Margin
		startY = b.Top + (b.Height-l.Height)/2
	case chart.PositionLeft:
		startX = l.Padding
		startY = b.Top + (b.Height-l.Height)/2
	default:
		return
	}

	fmt.Fprintf(buf, `<rect class="legend" x="%s" y="%s" width="%s" height="%s" fill="rgba(255,255,255,0.95)" stroke="#ddd" stroke-width="1" rx="6" />`,
		markup.Num(startX-l.Padding), markup.Num(startY-l.Padding), markup.Num(l.ActualWidth), markup.Num(l.ActualHeight))

	for i, item := range items {
		x := startX + float64(i%columns)*LegendItemWidth
		y := startY + float64(i/columns)*LegendItemHeight

		fmt.Fprintf(buf, `<rect class="legend-swatch" x="%s" y="%s" width="%d" height="%d" fill="%s" stroke="#666" stroke-width="0.5" />`,
			markup.Num(x), markup.Num(y+2), legendSwatch, legendSwatch, markup.Escape(item.Color))
		fmt.Fprintf(buf, `<text x="%s" y="%s" font-size="12" font-weight="500" fill="#333">%s</text>`,
			markup.Num(x+legendSwatch+8), markup.Num(y+legendSwatch-1), markup.Escape(truncate(item.Text)))

		value := "(" + markup.Num(item.Value) + ")"
		if item.Percentage != nil {
			value = "(" + markup.Num(item.Value) + " - " + markup.Fixed(*item.Percentage, 1) + "%)"
		}
		fmt.Fprintf(buf, `<text x="%s" y="%s" font-size="10" fill="#666">%s</text>`,
			markup.Num(x+legendSwatch+8), markup.Num(y+legendSwatch+11), markup.Escape(value))
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= legendMaxChars {
		return s
	}
	return string(r[:legendMaxChars-2]) + "..."
}
