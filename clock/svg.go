package clock

import (
	"fmt"
	"strings"

	"github.com/stsysd/collisionviz/canvas"
)

// RenderSVG draws the chart with the given hand and pinned segment.
func RenderSVG(c Chart, hand Hand, pin Pin) string {
	l := c.Layout
	pinned, hasPin := pin.Segment()

	var sb strings.Builder
	canvas.Open(&sb, l.Width, l.Height, "clock-svg", "Average collisions by time of day")
	sb.WriteString(`  <style>.hour-label{font-family:sans-serif;font-size:16px;font-weight:bold;fill:#333}` +
		`.time-segment{stroke:#fff;stroke-width:1}.time-segment.dimmed{opacity:0.35}.time-segment.pinned{stroke:#2c3e50;stroke-width:3}</style>` + "\n")
	fmt.Fprintf(&sb, `  <g transform="translate(%s,%s)">`+"\n", canvas.Num(l.Width/2), canvas.Num(l.Height/2))

	fmt.Fprintf(&sb, `    <circle class="outer-circle" r="%s" fill="#f8f9fa" stroke="#333" stroke-width="2"/>`+"\n", canvas.Num(l.OuterRadius))
	fmt.Fprintf(&sb, `    <circle class="inner-circle" r="%s" fill="#e9ecef" stroke="#333" stroke-width="2"/>`+"\n", canvas.Num(l.InnerRadius))

	for _, a := range c.Arcs {
		class := "time-segment"
		if hasPin {
			if a.Index == pinned {
				class += " pinned"
			} else {
				class += " dimmed"
			}
		}
		fmt.Fprintf(&sb, `    <path class="%s" d="%s" fill="%s" data-segment="%d">`+"\n", class, a.Path, a.Fill, a.Index)
		fmt.Fprintf(&sb, "      <title>%s</title>\n", canvas.Escape(a.Tooltip))
		sb.WriteString("    </path>\n")
	}

	for _, lb := range c.Labels {
		class := "hour-label"
		if lb.Night {
			class += " night"
		}
		fmt.Fprintf(&sb, `    <text class="%s" x="%s" y="%s" dy="0.35em" text-anchor="middle">%d</text>`+"\n",
			class, canvas.Num(lb.X), canvas.Num(lb.Y), lb.Hour)
	}

	for _, t := range c.Ticks {
		class := "hour-tick"
		if t.Inner {
			class = "inner-hour-tick"
		}
		fmt.Fprintf(&sb, `    <line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="#333" stroke-width="2"/>`+"\n",
			class, canvas.Num(t.X1), canvas.Num(t.Y1), canvas.Num(t.X2), canvas.Num(t.Y2))
	}

	fmt.Fprintf(&sb, `    <line class="hour-hand" x1="0" y1="0" x2="0" y2="%s" transform="rotate(%s)" stroke="#2c3e50" stroke-width="4" stroke-linecap="butt"/>`+"\n",
		canvas.Num(-hand.Length), canvas.Num(hand.Rotation))
	sb.WriteString(`    <circle cx="0" cy="0" r="5" fill="#2c3e50"/>` + "\n")
	sb.WriteString("  </g>\n")
	sb.WriteString(`</svg>`)
	return sb.String()
}
