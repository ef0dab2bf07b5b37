package canvas

import (
	"math"
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	tests := map[float64]string{
		330:          "330",
		77.142857143: "77.143",
		-0.0001:      "0",
		math.NaN():   "0",
		12.5:         "12.5",
	}
	for in, want := range tests {
		if got := Num(in); got != want {
			t.Errorf("Num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMessage(t *testing.T) {
	svg := Message(1200, 620, "Could not load CSV at a&b.csv")

	if !strings.Contains(svg, `viewBox="0 0 1200 620"`) {
		t.Error("Expected viewBox in output")
	}
	if !strings.Contains(svg, "Could not load CSV at a&amp;b.csv") {
		t.Error("Expected escaped message in output")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("Expected closing SVG tag")
	}
}
