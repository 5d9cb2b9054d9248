package layout

import (
	"github.com/matzehuels/chartkit/pkg/chart"
)

// Padding is the space between the canvas edge and the drawable chart area.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// WithLegend returns p grown on the side the legend occupies.
func (p Padding) WithLegend(l LegendLayout) Padding {
	switch l.Position {
	case chart.PositionTop:
		p.Top += l.ActualHeight
	case chart.PositionBottom:
		p.Bottom += l.ActualHeight
	case chart.PositionLeft:
		p.Left += l.ActualWidth
	case chart.PositionRight:
		p.Right += l.ActualWidth
	}
	return p
}

// Reserved space around the plot area.
const (
	XTitleHeight = 25
	YTitleWidth  = 30
	YLabelWidth  = 50
)

// Bounds is the drawable chart rectangle plus the extents that include axis
// labels and titles. ActualRight and ActualBottom anchor right and bottom
// legends.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	ActualLeft   float64 `json:"actual_left"`
	ActualRight  float64 `json:"actual_right"`
	ActualBottom float64 `json:"actual_bottom"`

	XLabelHeight float64 `json:"x_label_height"`
	XTitleHeight float64 `json:"x_title_height"`
	YTitleWidth  float64 `json:"y_title_width"`
	YLabelWidth  float64 `json:"y_label_width"`
}

// ComputeBounds folds x-label height, axis titles and y tick label space into
// the chart rectangle of a cartesian chart.
func ComputeBounds(spec *chart.Spec, pad Padding, chartHeight, chartWidth float64, labels []string) Bounds {
	xLabelHeight := PlanLabels(labels, chartWidth, DefaultLabelFontSize).RequiredHeight

	var xTitleHeight, yTitleWidth float64
	if spec.Options.XTitle() != "" {
		xTitleHeight = XTitleHeight
	}
	if spec.Options.YTitle() != "" {
		yTitleWidth = YTitleWidth
	}

	bottom := pad.Top + chartHeight + xLabelHeight + xTitleHeight
	return Bounds{
		Left:         pad.Left,
		Top:          pad.Top,
		Right:        pad.Left + chartWidth,
		Bottom:       bottom,
		Width:        chartWidth,
		Height:       chartHeight,
		ActualLeft:   pad.Left - yTitleWidth,
		ActualRight:  pad.Left + chartWidth + YLabelWidth,
		ActualBottom: bottom,
		XLabelHeight: xLabelHeight,
		XTitleHeight: xTitleHeight,
		YTitleWidth:  yTitleWidth,
		YLabelWidth:  YLabelWidth,
	}
}

// PlainBounds returns bounds without axis reservations, as used by pie charts.
func PlainBounds(pad Padding, chartWidth, chartHeight float64) Bounds {
	return Bounds{
		Left:         pad.Left,
		Top:          pad.Top,
		Right:        pad.Left + chartWidth,
		Bottom:       pad.Top + chartHeight,
		Width:        chartWidth,
		Height:       chartHeight,
		ActualLeft:   pad.Left,
		ActualRight:  pad.Left + chartWidth,
		ActualBottom: pad.Top + chartHeight,
	}
}
