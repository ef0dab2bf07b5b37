package viz

import (
	"context"
	"fmt"

	"github.com/stsysd/collisionviz/dataset"
	"github.com/stsysd/collisionviz/heatmap"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/rangecontrol"
	"github.com/stsysd/collisionviz/scale"
	"github.com/stsysd/collisionviz/store"
	"github.com/stsysd/collisionviz/table"
)

// HeatmapView serves frames of the weekday by year heatmap.
type HeatmapView struct {
	layout  heatmap.Layout
	ds      *dataset.Dataset
	records store.RecordStore
	control *rangecontrol.Control
}

// NewHeatmapView builds the dataset from t and fills rs with its records.
func NewHeatmapView(ctx context.Context, t *table.Table, l heatmap.Layout, opts rangecontrol.Options, rs store.RecordStore) (*HeatmapView, error) {
	ds, err := dataset.Build(t)
	if err != nil {
		return nil, err
	}
	if err := rs.Insert(ctx, ds.Records()); err != nil {
		return nil, fmt.Errorf("failed to store records: %w", err)
	}
	return &HeatmapView{
		layout:  l,
		ds:      ds,
		records: rs,
		control: rangecontrol.New(ds.Years(), ds.DefaultRange(), opts),
	}, nil
}

// Layout returns the canvas the frames are laid out on.
func (v *HeatmapView) Layout() heatmap.Layout { return v.layout }

// Control returns the year range control.
func (v *HeatmapView) Control() *rangecontrol.Control { return v.control }

// Dataset returns the loaded records.
func (v *HeatmapView) Dataset() *dataset.Dataset { return v.ds }

// Resolve maps a requested range onto the selectable years. The zero range
// resolves to every year in the dataset.
func (v *HeatmapView) Resolve(r model.YearRange) model.YearRange {
	if r.IsZero() {
		return v.ds.FullRange()
	}
	return r.Clamp(v.control.Bounds())
}

// Frame builds the frame for r as-is; callers resolve r first.
func (v *HeatmapView) Frame(ctx context.Context, r model.YearRange, animate bool) (heatmap.Frame, error) {
	records, err := v.records.Select(ctx, r)
	if err != nil {
		return heatmap.Frame{}, fmt.Errorf("failed to select records: %w", err)
	}
	lo, hi := v.ds.ValueDomain()
	return heatmap.BuildFrame(v.layout, heatmap.Selection{
		Range:    r,
		Records:  records,
		ValueMin: lo,
		ValueMax: hi,
	}, animate), nil
}

// SVG renders the car heatmap for r.
func (v *HeatmapView) SVG(ctx context.Context, r model.YearRange) (string, error) {
	f, err := v.Frame(ctx, v.Resolve(r), false)
	if err != nil {
		return "", err
	}
	return heatmap.RenderSVG(f, v.layout), nil
}

// ColorScale returns the fixed color scale over the full value domain.
func (v *HeatmapView) ColorScale() scale.Sequential {
	lo, hi := v.ds.ValueDomain()
	return scale.NewSequential(lo, hi, scale.YlOrRd)
}

// LegendSVG renders the color legend.
func (v *HeatmapView) LegendSVG() string {
	return heatmap.RenderLegendSVG(v.ColorScale(), nil)
}

// RangeSVG renders the range slider with r committed.
func (v *HeatmapView) RangeSVG(r model.YearRange) string {
	r = v.Resolve(r)
	s, _ := v.control.MoveTo(v.control.Initial(), r.Start, r.End)
	return v.control.RenderSVG(s)
}

// Close releases the record store.
func (v *HeatmapView) Close() error {
	return v.records.Close()
}
