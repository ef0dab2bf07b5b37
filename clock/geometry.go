package clock

import (
	"fmt"
	"math"
	"strconv"

	"github.com/stsysd/collisionviz/canvas"
	"github.com/stsysd/collisionviz/scale"
)

// Layout sizes the clock face.
type Layout struct {
	Width            float64 `yaml:"width" validate:"gt=0"`
	Height           float64 `yaml:"height" validate:"gt=0"`
	OuterRadius      float64 `yaml:"outer_radius" validate:"gt=0"`
	InnerRadius      float64 `yaml:"inner_radius" validate:"gt=0"`
	HourLabelRadius  float64 `yaml:"hour_label_radius"`
	InnerLabelRadius float64 `yaml:"inner_label_radius"`
	InnerRingRatio   float64 `yaml:"inner_ring_ratio"` // inner edge of the night ring as a fraction of InnerRadius
	TickLength       float64 `yaml:"tick_length"`
}

// DefaultLayout returns the 800x800 face.
func DefaultLayout() Layout {
	outer := math.Min(800, 800)/2 - 40
	inner := outer - 100
	return Layout{
		Width:            800,
		Height:           800,
		OuterRadius:      outer,
		InnerRadius:      inner,
		HourLabelRadius:  outer + 20,
		InnerLabelRadius: inner - 30,
		InnerRingRatio:   0.6,
		TickLength:       10,
	}
}

// Angle converts an hour on a twelve-hour dial to radians, clockwise from
// twelve o'clock.
func Angle(hour float64) float64 {
	return hour / 12 * 2 * math.Pi
}

// Point returns the position at radius r and angle a relative to the center.
func Point(r, a float64) (float64, float64) {
	return r * math.Sin(a), -r * math.Cos(a)
}

// ArcPath returns an annular sector path between radii r0 < r1 and angles
// a0 < a1.
func ArcPath(r0, r1, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	ox0, oy0 := Point(r1, a0)
	ox1, oy1 := Point(r1, a1)
	ix1, iy1 := Point(r0, a1)
	ix0, iy0 := Point(r0, a0)
	n := canvas.Num
	return fmt.Sprintf("M%s,%sA%s,%s,0,%d,1,%s,%sL%s,%sA%s,%s,0,%d,0,%s,%sZ",
		n(ox0), n(oy0), n(r1), n(r1), large, n(ox1), n(oy1),
		n(ix1), n(iy1), n(r0), n(r0), large, n(ix0), n(iy0))
}

// Arc is a laid out segment.
type Arc struct {
	Segment
	Path    string `json:"path"`
	Fill    string `json:"fill"`
	Tooltip string `json:"tooltip"`
}

// HourLabel is a positioned hour number.
type HourLabel struct {
	Hour  int     `json:"hour"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Night bool    `json:"night"`
}

// Tick is a short radial line on a ring.
type Tick struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Inner bool    `json:"inner"`
}

// Chart is the static part of the clock, computed once per dataset.
type Chart struct {
	Layout      Layout      `json:"-"`
	Arcs        []Arc       `json:"arcs"`
	Labels      []HourLabel `json:"labels"`
	Ticks       []Tick      `json:"ticks"`
	ColorDomain [2]float64  `json:"color_domain"`
}

// BuildChart lays out the segments. Colors span [0, largest segment].
func BuildChart(l Layout, segments []Segment) Chart {
	vmax := MaxValue(segments)
	color := scale.NewSequential(0, vmax, scale.YlOrRd)

	c := Chart{Layout: l, ColorDomain: [2]float64{0, vmax}}
	for _, s := range segments {
		start, end := float64(s.Start), float64(s.End)
		r0, r1 := l.InnerRadius, l.OuterRadius
		if !s.Outer {
			start, end = start-12, end-12
			r0, r1 = l.InnerRadius*l.InnerRingRatio, l.InnerRadius
		}
		c.Arcs = append(c.Arcs, Arc{
			Segment: s,
			Path:    ArcPath(r0, r1, Angle(start), Angle(end)),
			Fill:    color.Color(s.Value),
			Tooltip: fmt.Sprintf("%02d:00–%02d:00\nAverage: %s", s.Start, s.End, scale.FormatFixed(s.Value, 1)),
		})
	}

	for h := 0; h <= 12; h++ {
		x, y := Point(l.HourLabelRadius, Angle(float64(h)))
		c.Labels = append(c.Labels, HourLabel{Hour: h, X: x, Y: y})
	}
	for h := 13; h <= 24; h++ {
		x, y := Point(l.InnerLabelRadius, Angle(float64(h-12)))
		c.Labels = append(c.Labels, HourLabel{Hour: h, X: x, Y: y, Night: true})
	}

	for _, ring := range []struct {
		r     float64
		inner bool
	}{{l.OuterRadius, false}, {l.InnerRadius, true}} {
		for h := 0; h < 12; h++ {
			a := Angle(float64(h))
			x1, y1 := Point(ring.r, a)
			x2, y2 := Point(ring.r-l.TickLength, a)
			c.Ticks = append(c.Ticks, Tick{X1: x1, Y1: y1, X2: x2, Y2: y2, Inner: ring.inner})
		}
	}
	return c
}

// Summary describes the chart in one line.
func (c Chart) Summary() string {
	best := -1
	for i, a := range c.Arcs {
		if best < 0 || a.Value > c.Arcs[best].Value {
			best = i
		}
	}
	if best < 0 {
		return "No data"
	}
	a := c.Arcs[best]
	return "Peak: " + strconv.Itoa(a.Start) + ":00–" + strconv.Itoa(a.End) + ":00"
}
