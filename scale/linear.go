package scale

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale from [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value to the range. A degenerate domain maps
// everything to the middle of the range.
func (l Linear) Map(v float64) float64 {
	return l.r0 + (l.r1-l.r0)*l.normalize(v)
}

func (l Linear) normalize(v float64) float64 {
	if l.d1 == l.d0 {
		return 0.5
	}
	return (v - l.d0) / (l.d1 - l.d0)
}

// Invert converts a range value back to the domain.
func (l Linear) Invert(px float64) float64 {
	if l.r1 == l.r0 {
		return (l.d0 + l.d1) / 2
	}
	return l.d0 + (l.d1-l.d0)*(px-l.r0)/(l.r1-l.r0)
}

// Domain returns the domain endpoints.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the range endpoints.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Ticks returns roughly count human-friendly values spanning the domain.
func (l Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

// TickFormat returns a formatter with enough precision for Ticks(count).
func (l Linear) TickFormat(count int) func(float64) string {
	step := TickStep(l.d0, l.d1, count)
	return func(v float64) string {
		return FormatFixed(v, precisionFixed(step))
	}
}
