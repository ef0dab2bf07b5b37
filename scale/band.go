// Package scale maps data values onto pixel positions and colors.
package scale

import "math"

// Band divides a continuous range into evenly spaced bands, one per domain
// value, with inner and outer padding expressed as fractions of the step.
type Band[K comparable] struct {
	domain    []K
	index     map[K]int
	r0, r1    float64
	inner     float64
	outer     float64
	step      float64
	start     float64
	bandwidth float64
}

// NewBand creates a band scale. Duplicate domain values keep their first
// position.
func NewBand[K comparable](domain []K, r0, r1, paddingInner, paddingOuter float64) *Band[K] {
	b := &Band[K]{
		index: make(map[K]int, len(domain)),
		r0:    r0,
		r1:    r1,
		inner: math.Min(1, math.Max(0, paddingInner)),
		outer: math.Max(0, paddingOuter),
	}
	for _, k := range domain {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, k)
	}
	b.rescale()
	return b
}

func (b *Band[K]) rescale() {
	n := float64(len(b.domain))
	lo, hi := b.r0, b.r1
	reverse := hi < lo
	if reverse {
		lo, hi = hi, lo
	}
	b.step = (hi - lo) / math.Max(1, n-b.inner+b.outer*2)
	b.start = lo + (hi-lo-b.step*(n-b.inner))*0.5
	b.bandwidth = b.step * (1 - b.inner)
	if reverse {
		b.start = hi - b.bandwidth - (b.start - lo)
		b.step = -b.step
	}
}

// Position returns the start of k's band. ok is false for values outside the
// domain.
func (b *Band[K]) Position(k K) (float64, bool) {
	i, ok := b.index[k]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the midpoint of k's band.
func (b *Band[K]) Center(k K) (float64, bool) {
	p, ok := b.Position(k)
	return p + b.bandwidth/2, ok
}

// Bandwidth is the width of every band.
func (b *Band[K]) Bandwidth() float64 { return b.bandwidth }

// Step is the distance between the starts of adjacent bands.
func (b *Band[K]) Step() float64 { return math.Abs(b.step) }

// Domain returns the domain in band order.
func (b *Band[K]) Domain() []K {
	out := make([]K, len(b.domain))
	copy(out, b.domain)
	return out
}

// Range returns the output extent.
func (b *Band[K]) Range() (float64, float64) { return b.r0, b.r1 }

// Edges returns the start and end of every band in domain order.
func (b *Band[K]) Edges() []float64 {
	edges := make([]float64, 0, 2*len(b.domain))
	for _, k := range b.domain {
		p, _ := b.Position(k)
		edges = append(edges, p, p+b.bandwidth)
	}
	return edges
}
