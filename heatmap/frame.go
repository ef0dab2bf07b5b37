package heatmap

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/scale"
)

// Ease is the easing curve every heatmap transition uses.
const Ease = "quad-out"

// Transition describes how a client animates a frame change. A new
// transition interrupts any running one.
type Transition struct {
	DurationMS int    `json:"duration_ms"`
	Ease       string `json:"ease"`
	Interrupt  bool   `json:"interrupt"`
}

// Cell is one rendered record.
type Cell struct {
	Key     string        `json:"key"`
	Year    int           `json:"year"`
	Weekday model.Weekday `json:"weekday"`
	Value   float64       `json:"value"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Fill    string        `json:"fill"`
	Tooltip string        `json:"tooltip"`
}

// Label is a positioned text element.
type Label struct {
	Key  string  `json:"key"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Frame is the complete description of one heatmap state.
type Frame struct {
	Range         model.YearRange `json:"range"`
	RangeLabel    string          `json:"range_label"`
	Cells         []Cell          `json:"cells"`
	YearLabels    []Label         `json:"year_labels"`
	WeekdayLabels []Label         `json:"weekday_labels"`
	GridX         []float64       `json:"grid_x"` // vertical line positions
	GridY         []float64       `json:"grid_y"` // horizontal line positions
	ColorDomain   [2]float64      `json:"color_domain"`
	Animate       bool            `json:"animate"`
	Transition    Transition      `json:"transition"`
}

// Selection is the input to BuildFrame: the records inside Range, ordered by
// (year, weekday), and the value domain of the whole dataset.
type Selection struct {
	Range    model.YearRange
	Records  []model.Record
	ValueMin float64
	ValueMax float64
}

// Scales holds the three scales of a frame.
type Scales struct {
	X     *scale.Band[model.Weekday]
	Y     *scale.Band[int]
	Color scale.Sequential
}

// NewScales builds the scales for the years of r. The zero range has no
// years. The color domain does not depend on r.
func NewScales(l Layout, r model.YearRange, vmin, vmax float64) Scales {
	ox := l.GridOriginX()
	var years []int
	if !r.IsZero() {
		years = r.Ordered().Years()
	}
	return Scales{
		X:     scale.NewBand(model.Weekdays(), ox, ox+l.GridWidth, l.XPaddingInner, l.XPaddingOuter),
		Y:     scale.NewBand(years, l.GridOriginY, l.GridOriginY+l.GridHeight, l.YPaddingInner, l.YPaddingOuter),
		Color: scale.NewSequential(vmin, vmax, scale.YlOrRd),
	}
}

// BuildFrame lays out sel. It does no I/O and never modifies its inputs.
// A zero range covers the years of sel.Records; an inverted one is reordered.
func BuildFrame(l Layout, sel Selection, animate bool) Frame {
	sel.Range = selectedYears(sel)
	s := NewScales(l, sel.Range, sel.ValueMin, sel.ValueMax)
	ox := l.GridOriginX()

	f := Frame{
		Range:       sel.Range,
		RangeLabel:  sel.Range.Label(),
		ColorDomain: [2]float64{sel.ValueMin, sel.ValueMax},
		Animate:     animate,
		Transition: Transition{
			DurationMS: l.TransitionMS,
			Ease:       Ease,
			Interrupt:  true,
		},
	}

	f.Cells = make([]Cell, 0, len(sel.Records))
	for _, r := range sel.Records {
		x, okX := s.X.Position(r.Weekday)
		y, okY := s.Y.Position(r.Year)
		if !okX || !okY {
			continue
		}
		f.Cells = append(f.Cells, Cell{
			Key:     r.Key(),
			Year:    r.Year,
			Weekday: r.Weekday,
			Value:   r.Value,
			X:       x,
			Y:       y,
			Width:   s.X.Bandwidth(),
			Height:  s.Y.Bandwidth(),
			Fill:    s.Color.Color(r.Value),
			Tooltip: Tooltip(r),
		})
	}

	for _, year := range s.Y.Domain() {
		c, _ := s.Y.Center(year)
		f.YearLabels = append(f.YearLabels, Label{
			Key:  strconv.Itoa(year),
			Text: strconv.Itoa(year),
			X:    l.YearLabelX(),
			Y:    c,
		})
	}

	for _, wd := range model.Weekdays() {
		c, _ := s.X.Center(wd)
		f.WeekdayLabels = append(f.WeekdayLabels, Label{
			Key:  wd.String(),
			Text: strings.ToUpper(wd.String()),
			X:    c,
			Y:    l.GridOriginY + l.WeekdayLabelYOffset,
		})
	}

	f.GridX = GridLines(s.X.Edges(), ox, ox+l.GridWidth)
	f.GridY = GridLines(s.Y.Edges(), l.GridOriginY, l.GridOriginY+l.GridHeight)
	return f
}

func selectedYears(sel Selection) model.YearRange {
	r := sel.Range
	if r.IsZero() {
		if len(sel.Records) == 0 {
			return r
		}
		r = model.YearRange{Start: sel.Records[0].Year, End: sel.Records[0].Year}
		for _, rec := range sel.Records {
			r.Start = min(r.Start, rec.Year)
			r.End = max(r.End, rec.Year)
		}
		return r
	}
	return r.Ordered()
}

// GridLines merges band edges with the grid bounds, removing duplicates and
// sorting ascending.
func GridLines(edges []float64, lo, hi float64) []float64 {
	all := append(append([]float64{}, edges...), lo, hi)
	sort.Float64s(all)

	out := all[:0]
	for i, v := range all {
		if i > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Tooltip is the hover text of a cell.
func Tooltip(r model.Record) string {
	return r.Weekday.String() + ", " + strconv.Itoa(r.Year) + "\nValue: " + scale.FormatComma(r.Value)
}

// CellKeys returns the keys of every cell in frame order.
func (f Frame) CellKeys() []string {
	keys := make([]string, len(f.Cells))
	for i, c := range f.Cells {
		keys[i] = c.Key
	}
	return keys
}

// YearLabelKeys returns the keys of every year label in frame order.
func (f Frame) YearLabelKeys() []string {
	keys := make([]string, len(f.YearLabels))
	for i, l := range f.YearLabels {
		keys[i] = l.Key
	}
	return keys
}
