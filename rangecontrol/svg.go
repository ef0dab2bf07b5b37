package rangecontrol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stsysd/collisionviz/canvas"
)

const (
	brushOffsetY = 26
	axisOffsetY  = 72
	tickSize     = 6
)

// RenderSVG draws the slider: a year axis with one tick per year and the
// brush selection of s.
func (c *Control) RenderSVG(s State) string {
	o := c.opts
	width := o.BrushWidth + o.Padding*2

	var sb strings.Builder
	canvas.Open(&sb, width, o.BrushHeight, "year-range-svg", s.Label)
	fmt.Fprintf(&sb, `  <style>.axis text{font-family:%s;font-size:%dpx;fill:#444}.axis line,.axis path{stroke:#444}`+
		`.brush .overlay{fill:none;pointer-events:all}.brush .selection{fill:#fc4e2a;fill-opacity:0.3;stroke:#bd0026}`+
		`.brush .handle{fill:#bd0026}.range-label{font-family:%s;font-size:%dpx;fill:#333}</style>`+"\n",
		o.FontFamily, o.FontSize, o.FontFamily, o.FontSize)

	fmt.Fprintf(&sb, `  <text class="range-label" x="%s" y="14">%s</text>`+"\n", canvas.Num(o.Padding), canvas.Escape(s.Label))

	lo, hi := s.Selection[0], s.Selection[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	extentH := o.ExtentBottom - o.ExtentTop

	fmt.Fprintf(&sb, `  <g transform="translate(%s,%d)">`+"\n", canvas.Num(o.Padding), brushOffsetY)
	sb.WriteString(`    <g class="brush">` + "\n")
	fmt.Fprintf(&sb, `      <rect class="overlay" x="0" y="%s" width="%s" height="%s"/>`+"\n",
		canvas.Num(o.ExtentTop), canvas.Num(o.BrushWidth), canvas.Num(extentH))
	fmt.Fprintf(&sb, `      <rect class="selection" x="%s" y="%s" width="%s" height="%s" data-start="%d" data-end="%d"/>`+"\n",
		canvas.Num(lo), canvas.Num(o.ExtentTop), canvas.Num(hi-lo), canvas.Num(extentH), s.Range.Start, s.Range.End)
	for _, x := range []float64{lo, hi} {
		fmt.Fprintf(&sb, `      <rect class="handle" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			canvas.Num(x-o.HandleSize/2), canvas.Num(o.ExtentTop), canvas.Num(o.HandleSize), canvas.Num(extentH))
	}
	sb.WriteString("    </g>\n")
	sb.WriteString("  </g>\n")

	fmt.Fprintf(&sb, `  <g class="axis" transform="translate(%s,%d)">`+"\n", canvas.Num(o.Padding), axisOffsetY)
	fmt.Fprintf(&sb, `    <path d="M0,0H%s" fill="none"/>`+"\n", canvas.Num(o.BrushWidth))
	for _, y := range c.years {
		fmt.Fprintf(&sb, `    <g class="tick" transform="translate(%s,0)"><line y2="%d"/><text y="%d" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			canvas.Num(c.X(y)), tickSize, tickSize+3, strconv.Itoa(y))
	}
	sb.WriteString("  </g>\n")
	sb.WriteString(`</svg>`)
	return sb.String()
}
