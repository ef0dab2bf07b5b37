package viz

import (
	"fmt"
	"time"

	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/speedsign"
	"github.com/stsysd/collisionviz/table"
)

// SpeedView serves the speed sign chart for each year.
type SpeedView struct {
	layout speedsign.Layout
	data   *speedsign.Data
}

// NewSpeedView aggregates t per year and speed limit.
func NewSpeedView(t *table.Table, l speedsign.Layout) (*SpeedView, error) {
	data, err := speedsign.Aggregate(t)
	if err != nil {
		return nil, err
	}
	return &SpeedView{layout: l, data: data}, nil
}

// Layout returns the chart canvas.
func (v *SpeedView) Layout() speedsign.Layout { return v.layout }

// Years returns the years with data, ascending.
func (v *SpeedView) Years() []int { return v.data.Years }

// Latest is the default year.
func (v *SpeedView) Latest() int { return v.data.Latest() }

// Scene lays out year. Zero selects the latest year.
func (v *SpeedView) Scene(year int) (speedsign.Scene, error) {
	if year == 0 {
		year = v.data.Latest()
	}
	if !v.data.Has(year) {
		return speedsign.Scene{}, model.NewValidationError(fmt.Sprintf("no data for year %d", year))
	}
	return speedsign.BuildScene(v.layout, year, v.data.Years, v.data.ByYear[year]), nil
}

// SVG renders year.
func (v *SpeedView) SVG(year int) (string, error) {
	s, err := v.Scene(year)
	if err != nil {
		return "", err
	}
	return speedsign.RenderSVG(s), nil
}

// Car returns the car position elapsed into its drive.
func (v *SpeedView) Car(elapsed time.Duration) speedsign.CarPosition {
	return speedsign.CarAt(v.layout, elapsed)
}
