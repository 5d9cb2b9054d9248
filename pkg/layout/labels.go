package layout

import (
	"math"
	"unicode/utf8"
)

// DefaultLabelFontSize is the x-label font size used for planning.
const DefaultLabelFontSize = 10.0

const (
	glyphWidthRatio    = 0.6 // average glyph width per unit of font size
	maxUnrotatedLabels = 15
	maxUnrotatedChars  = 15
	minRotatedHeight   = 60
	emptyLabelHeight   = 20
)

// LabelPlan decides how x-axis category labels are drawn.
type LabelPlan struct {
	ShouldRotate   bool    `json:"should_rotate"`
	RequiredHeight float64 `json:"required_height"`
}

// PlanLabels decides whether labels rotate by 45° and how much vertical space
// they need. Widths are estimated from character counts since no text
// measurement is available. Labels rotate when their estimated total width
// exceeds availableWidth, when there are more than 15 of them, or when the
// longest has more than 15 characters.
func PlanLabels(labels []string, availableWidth, fontSize float64) LabelPlan {
	if len(labels) == 0 {
		return LabelPlan{RequiredHeight: emptyLabelHeight}
	}

	longest := 0
	for _, l := range labels {
		longest = max(longest, utf8.RuneCountInString(l))
	}

	labelWidth := float64(longest) * fontSize * glyphWidthRatio
	totalWidth := float64(len(labels)) * labelWidth
	rotate := totalWidth > availableWidth ||
		len(labels) > maxUnrotatedLabels ||
		longest > maxUnrotatedChars

	if !rotate {
		return LabelPlan{RequiredHeight: fontSize + 10}
	}
	height := labelWidth*math.Sin(math.Pi/4) + fontSize/2
	return LabelPlan{ShouldRotate: true, RequiredHeight: math.Max(minRotatedHeight, height)}
}
