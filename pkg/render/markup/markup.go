// Package markup holds low-level SVG writing helpers shared by the layout
// engine and the chart renderers.
package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// FontFamily is the font stack applied to every chart.
const FontFamily = "Arial, sans-serif"

// Num formats a coordinate or value with the shortest exact decimal
// representation, e.g. 450, 12.5, 0.30000000000000004.
func Num(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed formats v with exactly digits decimals.
func Fixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if v == 0 || s == "-"+strconv.FormatFloat(0, 'f', digits, 64) {
		return strconv.FormatFloat(0, 'f', digits, 64)
	}
	return s
}

// IsInteger reports whether v has no fractional part.
func IsInteger(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

// Escape escapes text for inclusion in element content or attribute values.
func Escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Open writes the root element and the white background of a chart page.
func Open(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `<svg width="%s" height="%s" xmlns="%s" style="font-family: %s;">`,
		Num(width), Num(height), Namespace, FontFamily)
	buf.WriteString(`<rect width="100%" height="100%" fill="white"/>`)
}

// Close ends the root element.
func Close(buf *bytes.Buffer) {
	buf.WriteString("</svg>")
}

// Placeholder returns a canvas containing only a centered message.
func Placeholder(width, height float64, text string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%s" height="%s" xmlns="%s"><text x="%s" y="%s" text-anchor="middle">%s</text></svg>`,
		Num(width), Num(height), Namespace, Num(width/2), Num(height/2), Escape(text))
	return buf.Bytes()
}
