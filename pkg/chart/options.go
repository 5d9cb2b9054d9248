package chart

import "strings"

// Position is a legend placement.
type Position string

// Legend positions. PositionNone disables the legend.
const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionNone   Position = "none"
)

// Horizontal reports whether the legend sits above or below the chart.
func (p Position) Horizontal() bool { return p == PositionTop || p == PositionBottom }

// Vertical reports whether the legend sits beside the chart.
func (p Position) Vertical() bool { return p == PositionLeft || p == PositionRight }

// Options holds rendering options in either the current or the legacy layout.
type Options struct {
	Plugins *Plugins `json:"plugins,omitempty"`
	Scales  *Scales  `json:"scales,omitempty"`

	// Legacy layout.
	Title  *Title  `json:"title,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
}

// Plugins holds the current-layout title and legend options.
type Plugins struct {
	Title  *Title  `json:"title,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
}

// Title configures the chart title. Font and Color belong to the current
// layout, FontSize and FontColor to the legacy one.
type Title struct {
	Display   *bool   `json:"display,omitempty"`
	Text      string  `json:"text,omitempty"`
	Font      *Font   `json:"font,omitempty"`
	Color     string  `json:"color,omitempty"`
	FontSize  float64 `json:"fontSize,omitempty"`
	FontColor string  `json:"fontColor,omitempty"`
}

// Font is a font specification.
type Font struct {
	Size float64 `json:"size,omitempty"`
}

// Legend configures the legend.
type Legend struct {
	Display  *bool  `json:"display,omitempty"`
	Position string `json:"position,omitempty"`
}

// Scales holds axis options. X and Y belong to the current layout, XAxes and
// YAxes to the legacy one (only the first entry is consulted).
type Scales struct {
	X     *Axis        `json:"x,omitempty"`
	Y     *Axis        `json:"y,omitempty"`
	XAxes []LegacyAxis `json:"xAxes,omitempty"`
	YAxes []LegacyAxis `json:"yAxes,omitempty"`
}

// Axis is a current-layout axis.
type Axis struct {
	Stacked bool       `json:"stacked,omitempty"`
	Max     *float64   `json:"max,omitempty"`
	Title   *AxisTitle `json:"title,omitempty"`
}

// AxisTitle is a current-layout axis title.
type AxisTitle struct {
	Display *bool  `json:"display,omitempty"`
	Text    string `json:"text,omitempty"`
}

// LegacyAxis is a legacy-layout axis.
type LegacyAxis struct {
	Stacked    bool        `json:"stacked,omitempty"`
	ScaleLabel *ScaleLabel `json:"scaleLabel,omitempty"`
	Ticks      *Ticks      `json:"ticks,omitempty"`
}

// ScaleLabel is a legacy-layout axis title.
type ScaleLabel struct {
	Display     *bool  `json:"display,omitempty"`
	LabelString string `json:"labelString,omitempty"`
}

// Ticks holds legacy-layout tick options.
type Ticks struct {
	Max *float64 `json:"max,omitempty"`
}

// TitleStyle is the resolved chart title.
type TitleStyle struct {
	Text     string
	FontSize float64
	Color    string
}

// Title defaults.
const (
	DefaultTitleFontSize = 18.0
	DefaultTitleColor    = "#000"
)

func (o Options) currentTitle() *Title {
	if o.Plugins == nil {
		return nil
	}
	return o.Plugins.Title
}

func (o Options) currentLegend() *Legend {
	if o.Plugins == nil {
		return nil
	}
	return o.Plugins.Legend
}

// TitleStyle returns the resolved title and whether it should be drawn.
// An explicit display flag wins (current layout first); otherwise the title
// is drawn whenever it has text.
func (o Options) TitleStyle() (TitleStyle, bool) {
	cur, old := o.currentTitle(), o.Title
	var ts TitleStyle
	if cur != nil {
		ts.Text = cur.Text
		if cur.Font != nil {
			ts.FontSize = cur.Font.Size
		}
		ts.Color = cur.Color
	}
	if old != nil {
		if ts.Text == "" {
			ts.Text = old.Text
		}
		if ts.FontSize <= 0 {
			ts.FontSize = old.FontSize
		}
		if ts.Color == "" {
			ts.Color = old.FontColor
		}
	}
	if ts.FontSize <= 0 {
		ts.FontSize = DefaultTitleFontSize
	}
	if ts.Color == "" {
		ts.Color = DefaultTitleColor
	}

	display := ts.Text != ""
	switch {
	case cur != nil && cur.Display != nil:
		display = *cur.Display
	case old != nil && old.Display != nil:
		display = *old.Display
	}
	return ts, display && ts.Text != ""
}

// LegendDisplay reports whether the legend is enabled. Defaults to true.
func (o Options) LegendDisplay() bool {
	if l := o.currentLegend(); l != nil && l.Display != nil {
		return *l.Display
	}
	if o.Legend != nil && o.Legend.Display != nil {
		return *o.Legend.Display
	}
	return true
}

// LegendPosition returns the effective legend position. A disabled legend or
// an unknown position yields PositionNone; an unset position defaults to
// PositionBottom.
func (o Options) LegendPosition() Position {
	if !o.LegendDisplay() {
		return PositionNone
	}
	raw := ""
	if l := o.currentLegend(); l != nil {
		raw = l.Position
	}
	if raw == "" && o.Legend != nil {
		raw = o.Legend.Position
	}
	if raw == "" {
		return PositionBottom
	}
	switch p := Position(strings.ToLower(raw)); p {
	case PositionTop, PositionBottom, PositionLeft, PositionRight:
		return p
	}
	return PositionNone
}

func (o Options) legacyX() *LegacyAxis {
	if o.Scales == nil || len(o.Scales.XAxes) == 0 {
		return nil
	}
	return &o.Scales.XAxes[0]
}

func (o Options) legacyY() *LegacyAxis {
	if o.Scales == nil || len(o.Scales.YAxes) == 0 {
		return nil
	}
	return &o.Scales.YAxes[0]
}

// Stacked reports whether both axes are stacked in either layout.
func (o Options) Stacked() bool {
	if o.Scales == nil {
		return false
	}
	if x, y := o.Scales.X, o.Scales.Y; x != nil && y != nil && x.Stacked && y.Stacked {
		return true
	}
	if x, y := o.legacyX(), o.legacyY(); x != nil && y != nil && x.Stacked && y.Stacked {
		return true
	}
	return false
}

// YMax returns the fixed y-axis maximum, if configured. A zero maximum is
// treated as unset.
func (o Options) YMax() (float64, bool) {
	if o.Scales != nil && o.Scales.Y != nil && o.Scales.Y.Max != nil && *o.Scales.Y.Max != 0 {
		return *o.Scales.Y.Max, true
	}
	if y := o.legacyY(); y != nil && y.Ticks != nil && y.Ticks.Max != nil && *y.Ticks.Max != 0 {
		return *y.Ticks.Max, true
	}
	return 0, false
}

// XTitle returns the x-axis title text, or "".
func (o Options) XTitle() string {
	if o.Scales != nil && o.Scales.X != nil && o.Scales.X.Title != nil && o.Scales.X.Title.Text != "" {
		return o.Scales.X.Title.Text
	}
	if x := o.legacyX(); x != nil && x.ScaleLabel != nil {
		return x.ScaleLabel.LabelString
	}
	return ""
}

// YTitle returns the y-axis title text, or "".
func (o Options) YTitle() string {
	if o.Scales != nil && o.Scales.Y != nil && o.Scales.Y.Title != nil && o.Scales.Y.Title.Text != "" {
		return o.Scales.Y.Title.Text
	}
	if y := o.legacyY(); y != nil && y.ScaleLabel != nil {
		return y.ScaleLabel.LabelString
	}
	return ""
}
