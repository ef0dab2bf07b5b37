// Package rangecontrol implements the year range brush as explicit state
// transitions: live brushing updates a label, release commits a snapped
// range.
package rangecontrol

import (
	"math"

	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/scale"
)

// Source tells whether a commit came from the user dragging the brush or
// from a programmatic move.
type Source string

const (
	SourceDrag    Source = "drag"
	SourceProgram Source = "program"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceDrag || s == SourceProgram
}

// Options configures the slider geometry.
type Options struct {
	BrushWidth   float64 `yaml:"brush_width"`
	BrushHeight  float64 `yaml:"brush_height"`
	Padding      float64 `yaml:"padding"`
	SnapMS       int     `yaml:"snap_ms"`
	FontFamily   string  `yaml:"font_family"`
	FontSize     int     `yaml:"font_size"`
	HandleSize   float64 `yaml:"handle_size"`
	ExtentTop    float64 `yaml:"extent_top"`
	ExtentBottom float64 `yaml:"extent_bottom"`
}

// DefaultOptions sizes the brush to a 540px wide heatmap grid.
func DefaultOptions(gridWidth float64) Options {
	return Options{
		BrushWidth:   math.Max(800, gridWidth+320),
		BrushHeight:  120,
		Padding:      100,
		SnapMS:       140,
		FontFamily:   "sans-serif",
		FontSize:     12,
		HandleSize:   12,
		ExtentTop:    -10,
		ExtentBottom: 24,
	}
}

// Control is the immutable part of the range control: the year axis and
// the default range.
type Control struct {
	years []int
	min   int
	max   int
	def   model.YearRange
	axis  scale.Linear
	opts  Options
}

// State is the mutable part, threaded through the transitions.
type State struct {
	Selection [2]float64      `json:"selection"` // brush extent in pixels
	Range     model.YearRange `json:"range"`     // last committed range
	Label     string          `json:"label"`
}

// Commit is the outcome of a committed brush.
type Commit struct {
	Range     model.YearRange `json:"range"`
	Selection [2]float64      `json:"selection"` // snapped extent
	Label     string          `json:"label"`
	Animate   bool            `json:"animate"` // animate the snap
	SnapMS    int             `json:"snap_ms"` // snap duration when animated
	Moved     bool            `json:"moved"`   // the snapped extent differs from the released one
}

// New creates a control over the distinct years present. years must be
// sorted ascending and non-empty.
func New(years []int, def model.YearRange, opts Options) *Control {
	c := &Control{
		years: append([]int(nil), years...),
		min:   years[0],
		max:   years[len(years)-1],
		opts:  opts,
	}
	c.def = def.Clamp(c.min, c.max)
	c.axis = scale.NewLinear(float64(c.min), float64(c.max), 0, opts.BrushWidth)
	return c
}

// Bounds returns the smallest and largest selectable year.
func (c *Control) Bounds() (int, int) { return c.min, c.max }

// Default returns the default range.
func (c *Control) Default() model.YearRange { return c.def }

// Options returns the slider geometry.
func (c *Control) Options() Options { return c.opts }

// Initial is the state before any interaction: the default range, already
// committed.
func (c *Control) Initial() State {
	return State{
		Selection: c.selectionFor(c.def),
		Range:     c.def,
		Label:     c.def.Label(),
	}
}

// Brush handles a live drag. Only the label follows the pointer; the
// committed range is unchanged.
func (c *Control) Brush(s State, x0, x1 float64) State {
	y0, y1 := c.yearAt(x0), c.yearAt(x1)
	s.Selection = [2]float64{x0, x1}
	s.Label = model.YearRange{Start: y0, End: y1}.Label()
	return s
}

// Commit handles brush release: the pixel extent is rounded to years,
// ordered, clamped and snapped back onto the year ticks.
func (c *Control) Commit(s State, x0, x1 float64, src Source) (State, Commit) {
	r := model.YearRange{Start: c.yearAt(x0), End: c.yearAt(x1)}.Clamp(c.min, c.max)
	snapped := c.selectionFor(r)

	out := Commit{
		Range:     r,
		Selection: snapped,
		Label:     r.Label(),
		Moved:     snapped != [2]float64{x0, x1},
	}
	if src == SourceDrag {
		out.Animate = true
		out.SnapMS = c.opts.SnapMS
	}

	s.Selection = snapped
	s.Range = r
	s.Label = out.Label
	return s, out
}

// MoveTo commits [start, end] programmatically, clamping both ends first.
func (c *Control) MoveTo(s State, start, end int) (State, Commit) {
	r := model.YearRange{Start: start, End: end}.Clamp(c.min, c.max)
	sel := c.selectionFor(r)
	return c.Commit(s, sel[0], sel[1], SourceProgram)
}

// SelectAll commits every year.
func (c *Control) SelectAll(s State) (State, Commit) {
	return c.MoveTo(s, c.min, c.max)
}

// Reset commits the default range.
func (c *Control) Reset(s State) (State, Commit) {
	return c.MoveTo(s, c.def.Start, c.def.End)
}

// X maps a year onto the brush axis.
func (c *Control) X(year int) float64 {
	return c.axis.Map(float64(year))
}

// yearAt rounds px to the nearest selectable year. The inverted value is
// bounded before the int conversion so far-off pixels cannot overflow.
func (c *Control) yearAt(px float64) int {
	y := math.Max(float64(c.min), math.Min(float64(c.max), c.axis.Invert(px)))
	return int(math.Floor(y + 0.5))
}

func (c *Control) selectionFor(r model.YearRange) [2]float64 {
	return [2]float64{c.X(r.Start), c.X(r.End)}
}
