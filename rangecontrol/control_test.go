package rangecontrol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stsysd/collisionviz/model"
)

func newControl() *Control {
	years := []int{2014, 2015, 2016, 2017, 2018, 2019, 2020, 2021, 2022}
	return New(years, model.YearRange{Start: 2018, End: 2022}, DefaultOptions(540))
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions(540)
	assert.Equal(t, 860.0, o.BrushWidth)
	assert.Equal(t, 800.0, DefaultOptions(100).BrushWidth)
}

func TestInitial(t *testing.T) {
	c := newControl()
	s := c.Initial()
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, s.Range)
	assert.Equal(t, "Years selected: 2018–2022", s.Label)
	assert.InDelta(t, 430, s.Selection[0], 1e-9)
	assert.InDelta(t, 860, s.Selection[1], 1e-9)
}

func TestBrushOnlyUpdatesLabel(t *testing.T) {
	c := newControl()
	s := c.Initial()

	// 107.5px per year; 2015.4 and 2016.6 round to 2015 and 2017
	next := c.Brush(s, 1.4*107.5, 2.6*107.5)
	assert.Equal(t, "Years selected: 2015–2017", next.Label)
	assert.Equal(t, s.Range, next.Range)
}

func TestCommitInverted(t *testing.T) {
	c := newControl()
	s, commit := c.Commit(c.Initial(), c.X(2021), c.X(2016), SourceDrag)

	assert.Equal(t, model.YearRange{Start: 2016, End: 2021}, commit.Range)
	assert.Equal(t, s.Range, commit.Range)
	assert.Equal(t, [2]float64{c.X(2016), c.X(2021)}, commit.Selection)
	assert.True(t, commit.Animate)
	assert.Equal(t, 140, commit.SnapMS)
	assert.True(t, commit.Moved)
}

func TestCommitClampsOutOfRange(t *testing.T) {
	c := newControl()
	_, commit := c.Commit(c.Initial(), -500, 2000, SourceDrag)
	assert.Equal(t, model.YearRange{Start: 2014, End: 2022}, commit.Range)
}

func TestCommitFarOffPixels(t *testing.T) {
	c := newControl()

	_, commit := c.Commit(c.Initial(), 0, 1e30, SourceDrag)
	assert.Equal(t, model.YearRange{Start: 2014, End: 2022}, commit.Range)

	_, commit = c.Commit(c.Initial(), -1e30, 107.5, SourceDrag)
	assert.Equal(t, model.YearRange{Start: 2014, End: 2015}, commit.Range)

	s := c.Brush(c.Initial(), -1e30, 1e30)
	assert.Equal(t, "Years selected: 2014–2022", s.Label)
}

func TestCommitSnaps(t *testing.T) {
	c := newControl()
	_, commit := c.Commit(c.Initial(), c.X(2017)+20, c.X(2019)-20, SourceDrag)
	assert.Equal(t, model.YearRange{Start: 2017, End: 2019}, commit.Range)
	assert.Equal(t, [2]float64{c.X(2017), c.X(2019)}, commit.Selection)
}

func TestProgrammaticMoves(t *testing.T) {
	c := newControl()
	s, commit := c.SelectAll(c.Initial())
	assert.Equal(t, model.YearRange{Start: 2014, End: 2022}, commit.Range)
	assert.False(t, commit.Animate)
	assert.Zero(t, commit.SnapMS)
	assert.False(t, commit.Moved)

	s, commit = c.Reset(s)
	assert.Equal(t, model.YearRange{Start: 2018, End: 2022}, commit.Range)
	assert.Equal(t, c.Initial(), s)

	_, commit = c.MoveTo(s, 2030, 2010)
	assert.Equal(t, model.YearRange{Start: 2014, End: 2022}, commit.Range)
}

func TestSingleYear(t *testing.T) {
	c := New([]int{2020}, model.YearRange{Start: 2020, End: 2020}, DefaultOptions(540))
	s := c.Initial()
	assert.Equal(t, "Years selected: 2020", s.Label)

	_, commit := c.Commit(s, 0, 860, SourceDrag)
	assert.Equal(t, model.YearRange{Start: 2020, End: 2020}, commit.Range)
}

func TestRenderSVG(t *testing.T) {
	c := newControl()
	svg := c.RenderSVG(c.Initial())

	require.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `viewBox="0 0 1060 120"`)
	assert.Contains(t, svg, `data-start="2018" data-end="2022"`)
	assert.Equal(t, 9, strings.Count(svg, `class="tick"`))
	assert.Contains(t, svg, "Years selected: 2018–2022")
}
