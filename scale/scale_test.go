package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandWeekdays(t *testing.T) {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	b := NewBand(days, 330, 870, 0.12, 0.06)

	// step = 540 / (7 - 0.12 + 0.12)
	assert.InDelta(t, 540.0/7, b.Step(), 1e-9)
	assert.InDelta(t, 540.0/7*0.88, b.Bandwidth(), 1e-9)

	first, ok := b.Position("Mon")
	require.True(t, ok)
	last, _ := b.Position("Sun")
	// outer padding is symmetric
	assert.InDelta(t, first-330, 870-(last+b.Bandwidth()), 1e-9)

	_, ok = b.Position("Holiday")
	assert.False(t, ok)
}

func TestBandSingleValue(t *testing.T) {
	b := NewBand([]int{2020}, 220, 480, 0.18, 0.16)
	p, ok := b.Position(2020)
	require.True(t, ok)
	assert.InDelta(t, 220+(260-b.Bandwidth())/2, p, 1e-9)
	assert.Equal(t, []int{2020}, b.Domain())
}

func TestBandEdges(t *testing.T) {
	b := NewBand([]int{1, 2}, 0, 100, 0, 0)
	assert.Equal(t, []float64{0, 50, 50, 100}, b.Edges())
}

func TestLinear(t *testing.T) {
	l := NewLinear(2015, 2022, 0, 860)
	assert.InDelta(t, 0, l.Map(2015), 1e-9)
	assert.InDelta(t, 860, l.Map(2022), 1e-9)
	assert.InDelta(t, 2018, l.Invert(l.Map(2018)), 1e-9)

	flat := NewLinear(2020, 2020, 0, 860)
	assert.InDelta(t, 430, flat.Map(2020), 1e-9)
}

func TestTicks(t *testing.T) {
	tests := []struct {
		start, stop float64
		count       int
		want        []float64
	}{
		{0, 10, 10, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{0, 1000, 5, []float64{0, 200, 400, 600, 800, 1000}},
		{0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{3, 97, 5, []float64{20, 40, 60, 80}},
		{10, 0, 2, []float64{10, 5, 0}},
		{5, 5, 5, []float64{5}},
	}
	for _, tt := range tests {
		got := Ticks(tt.start, tt.stop, tt.count)
		require.Len(t, got, len(tt.want), "Ticks(%v, %v, %d) = %v", tt.start, tt.stop, tt.count, got)
		for i := range got {
			assert.InDelta(t, tt.want[i], got[i], 1e-12)
		}
	}
	assert.Nil(t, Ticks(0, 1, 0))
}

func TestYlOrRdEnds(t *testing.T) {
	assert.Equal(t, "rgb(255, 255, 204)", YlOrRd(0))
	assert.Equal(t, "rgb(128, 0, 38)", YlOrRd(1))
	assert.Equal(t, YlOrRd(0), YlOrRd(-1))
}

func TestSequential(t *testing.T) {
	s := NewSequential(10, 20, YlOrRd)
	assert.Equal(t, YlOrRd(0), s.Color(10))
	assert.Equal(t, YlOrRd(1), s.Color(20))
	assert.Equal(t, YlOrRd(0.5), s.Color(15))

	flat := NewSequential(7, 7, YlOrRd)
	assert.Equal(t, YlOrRd(0.5), flat.Color(7))

	stops := s.Stops(256)
	require.Len(t, stops, 256)
	assert.Equal(t, 10.0, stops[0].Value)
	assert.Equal(t, 20.0, stops[255].Value)
}

func TestFormatComma(t *testing.T) {
	assert.Equal(t, "1,234", FormatComma(1234))
	assert.Equal(t, "12,345.5", FormatComma(12345.5))
	assert.Equal(t, "14", FormatComma(14))
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "1,000", FormatFixed(1000, 0))
	assert.Equal(t, "0.5", FormatFixed(0.5, 1))
}

func TestFormatSI(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0",
		5:      "5.0",
		50:     "50",
		200:    "200",
		1000:   "1.0k",
		1500:   "1.5k",
		20000:  "20k",
		250000: "250k",
		1260:   "1.3k",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatSI(in), "FormatSI(%v)", in)
	}
}

func TestTickFormat(t *testing.T) {
	l := NewLinear(0, 1, 0, 100)
	f := l.TickFormat(5)
	assert.Equal(t, "0.2", f(0.2))

	big := NewLinear(0, 5000, 0, 100)
	assert.Equal(t, "2,000", big.TickFormat(5)(2000))
}
