// Package canvas holds small helpers shared by the SVG writers.
package canvas

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// Num formats a coordinate with at most three decimals and no trailing zeros.
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Escape escapes text for use in SVG element content and attribute values.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Open writes the root element of a scalable SVG with the given virtual
// canvas.
func Open(sb *strings.Builder, width, height float64, class, label string) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="xMidYMid meet"`,
		Num(width), Num(height))
	if class != "" {
		fmt.Fprintf(sb, ` class="%s"`, Escape(class))
	}
	if label != "" {
		fmt.Fprintf(sb, ` role="img" aria-label="%s"`, Escape(label))
	}
	sb.WriteString(">\n")
}

// Message renders a placeholder SVG carrying a single line of text, used in
// place of a visualization that could not be built.
func Message(width, height float64, msg string) string {
	var sb strings.Builder
	Open(&sb, width, height, "viz-message", msg)
	sb.WriteString(`  <style>.message{font-family:sans-serif;font-size:16px;fill:#666}</style>` + "\n")
	fmt.Fprintf(&sb, `  <text x="%s" y="%s" class="message" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		Num(width/2), Num(height/2), Escape(msg))
	sb.WriteString(`</svg>`)
	return sb.String()
}
