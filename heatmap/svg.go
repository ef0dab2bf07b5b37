package heatmap

import (
	"fmt"
	"strings"

	"github.com/stsysd/collisionviz/canvas"
	"github.com/stsysd/collisionviz/scale"
)

// RenderSVG serializes a frame inside the car scaffold. Cells and grid lines
// are clipped to the cabin; labels and the outline are drawn on top.
func RenderSVG(f Frame, l Layout) string {
	var sb strings.Builder
	canvas.Open(&sb, l.Width, l.Height, "car-svg", "Heatmap of collisions inside a car icon")

	fmt.Fprintf(&sb, `  <style>.car-cabin{fill:#f7f7f7}.car-body-outline{fill:none;stroke:#333;stroke-width:4}`+
		`.grid-line{stroke:#fff;stroke-width:1}.year-label,.weekday-label{font-family:%s;font-size:%dpx;fill:#444}`+
		`.weekday-label{font-weight:bold}</style>`+"\n", l.FontFamily, l.FontSize)

	sb.WriteString("  <defs>\n")
	fmt.Fprintf(&sb, `    <clipPath id="car-body-clip"><path d="%s"/></clipPath>`+"\n", l.CabinPath)
	sb.WriteString("  </defs>\n")

	fmt.Fprintf(&sb, `  <g id="cabin-layer"><path class="car-cabin" d="%s"/></g>`+"\n", l.CabinPath)

	// heatmap layer
	sb.WriteString(`  <g id="heatmap-layer" clip-path="url(#car-body-clip)">` + "\n")
	sb.WriteString(`    <g class="grid">` + "\n")
	ox := l.GridOriginX()
	for _, x := range f.GridX {
		fmt.Fprintf(&sb, `      <line class="grid-line grid-v" x1="%s" x2="%s" y1="%s" y2="%s"/>`+"\n",
			canvas.Num(x), canvas.Num(x), canvas.Num(l.GridOriginY), canvas.Num(l.GridOriginY+l.GridHeight))
	}
	for _, y := range f.GridY {
		fmt.Fprintf(&sb, `      <line class="grid-line grid-h" x1="%s" x2="%s" y1="%s" y2="%s"/>`+"\n",
			canvas.Num(ox), canvas.Num(ox+l.GridWidth), canvas.Num(y), canvas.Num(y))
	}
	sb.WriteString("    </g>\n")

	sb.WriteString(`    <g class="cells">` + "\n")
	for _, c := range f.Cells {
		fmt.Fprintf(&sb, `      <rect class="cell" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" data-key="%s" data-value="%s">`+"\n",
			canvas.Num(c.X), canvas.Num(c.Y), canvas.Num(c.Width), canvas.Num(c.Height),
			canvas.Num(l.CellRadius), canvas.Num(l.CellRadius), c.Fill, c.Key, canvas.Num(c.Value))
		fmt.Fprintf(&sb, "        <title>%s</title>\n", canvas.Escape(c.Tooltip))
		sb.WriteString("      </rect>\n")
	}
	sb.WriteString("    </g>\n")
	sb.WriteString("  </g>\n")

	// labels sit outside the clip so they may overhang the cabin
	sb.WriteString(`  <g id="labels-layer">` + "\n")
	sb.WriteString(`    <g class="year-labels">` + "\n")
	for _, lb := range f.YearLabels {
		fmt.Fprintf(&sb, `      <text class="year-label" x="%s" y="%s" text-anchor="end" dominant-baseline="middle" data-key="%s">%s</text>`+"\n",
			canvas.Num(lb.X), canvas.Num(lb.Y), lb.Key, canvas.Escape(lb.Text))
	}
	sb.WriteString("    </g>\n")
	sb.WriteString(`    <g class="weekday-labels">` + "\n")
	for _, lb := range f.WeekdayLabels {
		fmt.Fprintf(&sb, `      <text class="weekday-label" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			canvas.Num(lb.X), canvas.Num(lb.Y), canvas.Escape(lb.Text))
	}
	sb.WriteString("    </g>\n")
	sb.WriteString("  </g>\n")

	fmt.Fprintf(&sb, `  <g id="car-outline-layer"><path class="car-body-outline" d="%s"/></g>`+"\n", l.BodyOutlinePath)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// LegendOptions configures the color legend.
type LegendOptions struct {
	Width      float64 // total width including margins
	Height     float64
	Stops      int // number of sampled color rects
	Ticks      int // approximate axis tick count
	FontFamily string
	FontSize   int
}

// DefaultLegendOptions matches the width of the year range slider.
func DefaultLegendOptions() LegendOptions {
	return LegendOptions{Width: 1060, Height: 52, Stops: 256, Ticks: 5, FontFamily: "sans-serif", FontSize: 10}
}

const (
	legendTop    = 8
	legendRight  = 12
	legendLeft   = 12
	legendBarH   = 16
	legendAxisY  = 18
	legendTickSz = 6
)

// RenderLegendSVG draws the color ramp of c with a bottom axis.
func RenderLegendSVG(c scale.Sequential, opts *LegendOptions) string {
	if opts == nil {
		o := DefaultLegendOptions()
		opts = &o
	}

	vmin, vmax := c.Domain()
	w := opts.Width - legendLeft - legendRight
	x := scale.NewLinear(vmin, vmax, 0, w)

	var sb strings.Builder
	canvas.Open(&sb, opts.Width, opts.Height, "legend-svg", "Value scale")
	fmt.Fprintf(&sb, `  <style>.axis text{font-family:%s;font-size:%dpx;fill:#444}.axis line,.axis path{stroke:#444}</style>`+"\n",
		opts.FontFamily, opts.FontSize)
	fmt.Fprintf(&sb, `  <g transform="translate(%d,%d)">`+"\n", legendLeft, legendTop)

	for _, s := range c.Stops(opts.Stops) {
		fmt.Fprintf(&sb, `    <rect x="%s" y="0" width="%s" height="%d" fill="%s"/>`+"\n",
			canvas.Num(x.Map(s.Value)), canvas.Num(w/float64(opts.Stops)+1), legendBarH, s.Color)
	}

	fmt.Fprintf(&sb, `    <g class="axis" transform="translate(0,%d)">`+"\n", legendAxisY)
	fmt.Fprintf(&sb, `      <path d="M0,0H%s" fill="none"/>`+"\n", canvas.Num(w))
	format := x.TickFormat(opts.Ticks)
	for _, t := range x.Ticks(opts.Ticks) {
		px := canvas.Num(x.Map(t))
		fmt.Fprintf(&sb, `      <g class="tick" transform="translate(%s,0)"><line y2="%d"/><text y="%d" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			px, legendTickSz, legendTickSz+3, format(t))
	}
	sb.WriteString("    </g>\n")
	sb.WriteString("  </g>\n")
	sb.WriteString(`</svg>`)
	return sb.String()
}

// RenderMessageSVG renders the placeholder shown when the heatmap could not
// be built.
func RenderMessageSVG(l Layout, msg string) string {
	return canvas.Message(l.Width, l.Height, msg)
}
