package scale

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ylOrRd is the nine-class ColorBrewer YlOrRd scheme, light yellow to dark red.
const ylOrRd = "ffffccffeda0fed976feb24cfd8d3cfc4e2ae31a1cbd0026800026"

// Interpolator maps t in [0, 1] to a CSS color.
type Interpolator func(t float64) string

// YlOrRd is the default sequential ramp.
var YlOrRd = RampFromHex(ylOrRd)

// RampFromHex builds a uniform B-spline ramp through the concatenated
// six-digit hex colors in scheme.
func RampFromHex(scheme string) Interpolator {
	n := len(scheme) / 6
	colors := make([]drawing.Color, n)
	for i := range colors {
		colors[i] = drawing.ColorFromHex(scheme[i*6 : i*6+6])
	}
	return RGBBasis(colors)
}

// RGBBasis interpolates each channel independently with a uniform
// nonrational B-spline through the given colors.
func RGBBasis(colors []drawing.Color) Interpolator {
	rs := make([]float64, len(colors))
	gs := make([]float64, len(colors))
	bs := make([]float64, len(colors))
	for i, c := range colors {
		rs[i], gs[i], bs[i] = float64(c.R), float64(c.G), float64(c.B)
	}
	r, g, b := basisSpline(rs), basisSpline(gs), basisSpline(bs)
	return func(t float64) string {
		return formatRGB(r(t), g(t), b(t))
	}
}

func basisSpline(values []float64) func(float64) float64 {
	n := len(values) - 1
	return func(t float64) float64 {
		var i int
		switch {
		case t <= 0:
			t = 0
			i = 0
		case t >= 1:
			t = 1
			i = n - 1
		default:
			i = int(math.Floor(t * float64(n)))
		}
		v1, v2 := values[i], values[i+1]
		v0 := 2*v1 - v2
		if i > 0 {
			v0 = values[i-1]
		}
		v3 := 2*v2 - v1
		if i < n-1 {
			v3 = values[i+2]
		}
		return basis((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
	}
}

func basis(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

func formatRGB(r, g, b float64) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(255, jsRound(v))))
}

// Sequential maps a numeric domain onto an interpolator.
type Sequential struct {
	d0, d1 float64
	interp Interpolator
}

// NewSequential creates a sequential color scale over [d0, d1].
func NewSequential(d0, d1 float64, interp Interpolator) Sequential {
	return Sequential{d0: d0, d1: d1, interp: interp}
}

// Color returns the color for v. Values outside the domain extrapolate to the
// ramp ends; a degenerate domain maps to the middle of the ramp.
func (s Sequential) Color(v float64) string {
	if s.d1 == s.d0 {
		return s.interp(0.5)
	}
	return s.interp((v - s.d0) / (s.d1 - s.d0))
}

// Domain returns the domain endpoints.
func (s Sequential) Domain() (float64, float64) { return s.d0, s.d1 }

// Stops samples n evenly spaced values across the domain with their colors.
func (s Sequential) Stops(n int) []Stop {
	if n < 2 {
		n = 2
	}
	stops := make([]Stop, n)
	for i := range stops {
		t := float64(i) / float64(n-1)
		v := s.d0*(1-t) + s.d1*t
		stops[i] = Stop{Value: v, Color: s.Color(v)}
	}
	return stops
}

// Stop is a sampled point on a color scale.
type Stop struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}
