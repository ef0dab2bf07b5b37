package viz

import (
	"log/slog"
	"time"

	"github.com/stsysd/collisionviz/clock"
	"github.com/stsysd/collisionviz/table"
)

// ClockView serves the 24 hour clock. The chart is fixed after load; only
// the hand moves.
type ClockView struct {
	chart  clock.Chart
	ticker *clock.Ticker
}

// NewClockView aggregates t into segments and prepares the hand ticker.
// The ticker is not started.
func NewClockView(t *table.Table, l clock.Layout, loc *time.Location, logger *slog.Logger) (*ClockView, error) {
	segments, err := clock.Aggregate(t)
	if err != nil {
		return nil, err
	}
	return &ClockView{
		chart:  clock.BuildChart(l, segments),
		ticker: clock.NewTicker(l, loc, nil, logger),
	}, nil
}

// Chart returns the laid out chart.
func (v *ClockView) Chart() clock.Chart { return v.chart }

// Hand returns the current hand position.
func (v *ClockView) Hand() clock.Hand { return v.ticker.Hand() }

// SVG renders the clock with pin applied.
func (v *ClockView) SVG(pin clock.Pin) string {
	return clock.RenderSVG(v.chart, v.ticker.Hand(), pin)
}

// Start begins moving the hand.
func (v *ClockView) Start() error { return v.ticker.Start() }

// Stop halts the hand.
func (v *ClockView) Stop() { v.ticker.Stop() }
