package speedsign

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

const monthlyCSV = `Month,Measures,50 km per hour,100 km per hour,30 km per hour,Total
2021-01,Number of collisions,10,1,3,14
2021-02,Number of collisions,5,,2,7
2021-02,Number of casualties,99,99,99,297
2022-01,Number of collisions,7,2,n/a,9
`

func aggregate(t *testing.T, csv string) *Data {
	t.Helper()
	tbl, err := table.ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	d, err := Aggregate(tbl)
	require.NoError(t, err)
	return d
}

func TestAggregate(t *testing.T) {
	d := aggregate(t, monthlyCSV)

	assert.Equal(t, []int{2021, 2022}, d.Years)
	assert.Equal(t, 2022, d.Latest())
	assert.Equal(t, []Bar{
		{Speed: "30 km", Value: 5},
		{Speed: "50 km", Value: 15},
		{Speed: "100 km", Value: 1},
	}, d.ByYear[2021])
	assert.Equal(t, []Bar{
		{Speed: "30 km", Value: 0},
		{Speed: "50 km", Value: 7},
		{Speed: "100 km", Value: 2},
	}, d.ByYear[2022])
}

func TestAggregateYearColumn(t *testing.T) {
	d := aggregate(t, "Year,Month,Measures,40 per hour\n2019,2020-01,Number of collisions,4\n,2020-02,Number of collisions,6\n")
	assert.Equal(t, []int{2019, 2020}, d.Years)
	assert.Equal(t, 4.0, d.ByYear[2019][0].Value)
	assert.Equal(t, "40", d.ByYear[2019][0].Speed)
}

func TestAggregateNoData(t *testing.T) {
	tbl, err := table.ParseCSV(strings.NewReader("Month,Measures,50 per hour\n2021-01,Number of casualties,3\n"))
	require.NoError(t, err)
	_, err = Aggregate(tbl)
	require.ErrorIs(t, err, model.ErrEmptyDataset)
	assert.Equal(t, "No data available", model.UserMessage(err))
}

func TestBuildScene(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, 1080.0, l.Width)
	assert.Equal(t, 330.0, l.RoadY())

	bars := []Bar{{Speed: "30", Value: 0}, {Speed: "50", Value: 100}}
	s := BuildScene(l, 2021, []int{2021}, bars)

	assert.Equal(t, "Number of Collisions by Speed Limit — 2021", s.Title)
	require.Len(t, s.Signs, 2)

	zero := s.Signs[0]
	assert.InDelta(t, 300, zero.PoleY, 1e-9)
	assert.InDelta(t, 30, zero.PoleHeight, 1e-9)
	assert.InDelta(t, 240, zero.SquareY, 1e-9)
	assert.InDelta(t, 275, zero.TextY, 1e-9)

	peak := s.Signs[1]
	assert.GreaterOrEqual(t, peak.PoleY, 60.0)
	assert.InDelta(t, peak.PoleY+peak.PoleHeight, 330, 1e-9)

	// bands with 0.5 padding are centered
	assert.InDelta(t, 1080-zero.X, peak.X, 1e-9)
	assert.NotEmpty(t, s.Axis)
	assert.Equal(t, "0.0", s.Axis[0].Label)
}

func TestSafeY(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, 60.0, SafeY(l, 40))
	assert.Equal(t, 200.0, SafeY(l, 200))
}

func TestCarAt(t *testing.T) {
	l := DefaultLayout()
	start := CarAt(l, 0)
	assert.Equal(t, -44.0, start.X)
	assert.Equal(t, 308.0, start.Y)

	half := CarAt(l, 5*time.Second)
	assert.InDelta(t, (1080-44)/2.0, half.X, 1e-9)

	again := CarAt(l, 15*time.Second)
	assert.InDelta(t, half.X, again.X, 1e-9)
}

func TestCarPath(t *testing.T) {
	assert.Equal(t, "M0,22 L0,4.4 L8.8,4.4 L8.8,0 L35.2,0 L35.2,4.4 L44,4.4 L44,22 Z", CarPath(0, 22, 44, 22))
}

func TestRenderSVG(t *testing.T) {
	d := aggregate(t, monthlyCSV)
	svg := RenderSVG(BuildScene(DefaultLayout(), 2021, d.Years, d.ByYear[2021]))

	assert.Contains(t, svg, `viewBox="0 0 1200 460"`)
	assert.Contains(t, svg, "Number of Collisions by Speed Limit — 2021")
	assert.Equal(t, 3, strings.Count(svg, `class="speed-sign"`))
	assert.Contains(t, svg, `dur="10000ms"`)
	assert.Contains(t, svg, `repeatCount="indefinite"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}
