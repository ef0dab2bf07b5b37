package speedsign

import (
	"fmt"
	"strings"

	"github.com/stsysd/collisionviz/canvas"
)

// RenderSVG draws the scene. The car drives on its own through an SVG
// animation, so the output needs no script.
func RenderSVG(s Scene) string {
	l := s.Layout
	roadY := l.RoadY()
	totalW := l.Width + l.Margin.Left + l.Margin.Right
	totalH := l.Height + l.Margin.Top + l.Margin.Bottom

	var sb strings.Builder
	canvas.Open(&sb, totalW, totalH, "speed-sign-svg", s.Title)
	sb.WriteString(`  <style>.title{font-family:sans-serif;font-size:20px;font-weight:bold;fill:#222}` +
		`.y-axis text{font-family:sans-serif;font-size:11px;fill:#444}.sign-text{font-family:sans-serif;font-size:14px;font-weight:700}</style>` + "\n")
	fmt.Fprintf(&sb, `  <text class="title" x="%s" y="28">%s</text>`+"\n", canvas.Num(l.Margin.Left), canvas.Escape(s.Title))
	fmt.Fprintf(&sb, `  <g transform="translate(%s,%s)">`+"\n", canvas.Num(l.Margin.Left), canvas.Num(l.Margin.Top))

	sb.WriteString("    <defs>\n")
	sb.WriteString(`      <linearGradient id="road-gradient" x1="0%" x2="0%" y1="0%" y2="100%">` +
		`<stop offset="0%" stop-color="#dee2e6"/><stop offset="100%" stop-color="#adb5bd"/></linearGradient>` + "\n")
	sb.WriteString("    </defs>\n")
	fmt.Fprintf(&sb, `    <rect class="road" x="0" y="%s" width="%s" height="%s" fill="url(#road-gradient)"/>`+"\n",
		canvas.Num(roadY-10), canvas.Num(l.Width), canvas.Num(l.Height-roadY+10))

	// y axis with faint grid lines across the plot
	sb.WriteString(`    <g class="y-axis" transform="translate(-30,0)">` + "\n")
	if len(s.Axis) > 0 {
		top, bottom := s.Axis[len(s.Axis)-1].Y, s.Axis[0].Y
		fmt.Fprintf(&sb, `      <path class="domain" d="M0,%sV%s" stroke="#888" fill="none"/>`+"\n", canvas.Num(bottom), canvas.Num(top))
	}
	for _, t := range s.Axis {
		fmt.Fprintf(&sb, `      <g class="tick" transform="translate(0,%s)"><line x2="%s" stroke="#bbb" stroke-opacity="0.3"/><text x="-9" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
			canvas.Num(t.Y), canvas.Num(l.Width), canvas.Escape(t.Label))
	}
	sb.WriteString("    </g>\n")

	for _, sign := range s.Signs {
		fmt.Fprintf(&sb, `    <g class="speed-sign" transform="translate(%s,0)" data-speed="%s" data-value="%s">`+"\n",
			canvas.Num(sign.X), canvas.Escape(sign.Speed), canvas.Num(sign.Value))
		fmt.Fprintf(&sb, "      <title>%s</title>\n", canvas.Escape(sign.Tooltip))
		fmt.Fprintf(&sb, `      <rect class="sign-pole" x="%s" y="%s" width="%s" height="%s" fill="#444"/>`+"\n",
			canvas.Num(-l.PoleWidth/2), canvas.Num(sign.PoleY), canvas.Num(l.PoleWidth), canvas.Num(sign.PoleHeight))
		fmt.Fprintf(&sb, `      <rect class="sign-square" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" stroke="#d62828" stroke-width="3" fill="#fff"/>`+"\n",
			canvas.Num(-l.SignWidth/2), canvas.Num(sign.SquareY), canvas.Num(l.SignWidth), canvas.Num(l.SignSize),
			canvas.Num(l.SignRadius), canvas.Num(l.SignRadius))
		fmt.Fprintf(&sb, `      <text class="sign-text" y="%s" text-anchor="middle">%s</text>`+"\n",
			canvas.Num(sign.TextY), canvas.Escape(sign.Speed))
		sb.WriteString("    </g>\n")
	}

	start := CarAt(l, 0)
	fmt.Fprintf(&sb, `    <path id="animated-car" class="car" d="%s" fill="#e63946" transform="translate(%s,%s)">`+"\n",
		CarPath(0, l.CarHeight, l.CarWidth, l.CarHeight), canvas.Num(start.X), canvas.Num(start.Y))
	fmt.Fprintf(&sb, `      <animateTransform attributeName="transform" type="translate" from="%s %s" to="%s %s" dur="%dms" calcMode="linear" repeatCount="indefinite"/>`+"\n",
		canvas.Num(start.X), canvas.Num(start.Y), canvas.Num(l.Width), canvas.Num(start.Y), l.DriveMS)
	sb.WriteString("    </path>\n")

	sb.WriteString("  </g>\n")
	sb.WriteString(`</svg>`)
	return sb.String()
}

// RenderMessageSVG renders the placeholder used when there is nothing to
// chart.
func RenderMessageSVG(l Layout, msg string) string {
	return canvas.Message(l.Width+l.Margin.Left+l.Margin.Right, l.Height+l.Margin.Top+l.Margin.Bottom, msg)
}
