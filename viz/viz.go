// Package viz loads the three collision datasets and holds the immutable
// views the HTTP layer renders from.
package viz

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stsysd/collisionviz/config"
	"github.com/stsysd/collisionviz/store"
	"github.com/stsysd/collisionviz/table"
)

// Sources names the resource behind each visualization.
type Sources struct {
	Heatmap string
	Clock   string
	Speed   string
}

// StoreFactory opens the record store backing the heatmap.
type StoreFactory func() (store.RecordStore, error)

// Options configures LoadAll.
type Options struct {
	Loader   *table.Loader
	Sources  Sources
	Layouts  config.Layouts
	NewStore StoreFactory
	Location *time.Location
	Logger   *slog.Logger
}

// Views is the result of LoadAll. A visualization that failed to load has a
// nil view and a non-nil error; the others are unaffected.
type Views struct {
	Heatmap    *HeatmapView
	HeatmapErr error
	Clock      *ClockView
	ClockErr   error
	Speed      *SpeedView
	SpeedErr   error
}

// LoadAll loads the three datasets concurrently. It returns an error only
// when ctx is cancelled.
func LoadAll(ctx context.Context, opts Options) (*Views, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NewStore == nil {
		opts.NewStore = func() (store.RecordStore, error) { return store.NewMemoryStore(), nil }
	}

	v := &Views{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := opts.Loader.Load(gctx, opts.Sources.Heatmap)
		if err == nil {
			var rs store.RecordStore
			if rs, err = opts.NewStore(); err == nil {
				v.Heatmap, err = NewHeatmapView(gctx, t, opts.Layouts.Heatmap, opts.Layouts.Range, rs)
				if err != nil {
					rs.Close()
				}
			}
		}
		v.HeatmapErr = err
		return nil
	})
	g.Go(func() error {
		t, err := opts.Loader.Load(gctx, opts.Sources.Clock)
		if err == nil {
			v.Clock, err = NewClockView(t, opts.Layouts.Clock, opts.Location, logger)
		}
		v.ClockErr = err
		return nil
	})
	g.Go(func() error {
		t, err := opts.Loader.Load(gctx, opts.Sources.Speed)
		if err == nil {
			v.Speed, err = NewSpeedView(t, opts.Layouts.Speed)
		}
		v.SpeedErr = err
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		v.Close()
		return nil, err
	}

	for name, err := range map[string]error{"heatmap": v.HeatmapErr, "clock": v.ClockErr, "speed": v.SpeedErr} {
		if err != nil {
			logger.Error("visualization unavailable", slog.String("chart", name), slog.Any("error", err))
		}
	}
	return v, nil
}

// Close releases the record store and stops the clock ticker.
func (v *Views) Close() error {
	if v.Clock != nil {
		v.Clock.Stop()
	}
	if v.Heatmap != nil {
		return v.Heatmap.Close()
	}
	return nil
}
