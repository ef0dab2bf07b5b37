// Package heatmap builds the car-shaped weekday by year heatmap: frames,
// keyed diffs between frames, and their SVG rendering.
package heatmap

import "strings"

// Layout configures the fixed virtual canvas. It is never mutated after
// construction; BuildFrame reads it.
type Layout struct {
	Width               float64 `yaml:"width" validate:"gt=0"`        // virtual canvas width
	Height              float64 `yaml:"height" validate:"gt=0"`       // virtual canvas height
	GridWidth           float64 `yaml:"grid_width" validate:"gt=0"`   // width of the cell grid
	GridHeight          float64 `yaml:"grid_height" validate:"gt=0"`  // height of the cell grid
	GridOriginY         float64 `yaml:"grid_origin_y"`                // top edge of the cell grid
	WeekdayLabelYOffset float64 `yaml:"weekday_label_y_offset"`       // weekday header offset from the grid top
	YearLabelGap        float64 `yaml:"year_label_gap"`               // distance from year labels to the grid
	CellRadius          float64 `yaml:"cell_radius" validate:"gte=0"` // rounded corner radius of a cell
	XPaddingInner       float64 `yaml:"x_padding_inner" validate:"gte=0,lt=1"`
	XPaddingOuter       float64 `yaml:"x_padding_outer" validate:"gte=0"`
	YPaddingInner       float64 `yaml:"y_padding_inner" validate:"gte=0,lt=1"`
	YPaddingOuter       float64 `yaml:"y_padding_outer" validate:"gte=0"`
	CabinPath           string  `yaml:"cabin_path" validate:"required"`        // clip path for the grid
	BodyOutlinePath     string  `yaml:"body_outline_path" validate:"required"` // stroked car outline
	FontFamily          string  `yaml:"font_family"`
	FontSize            int     `yaml:"font_size" validate:"gte=0"`
	TransitionMS        int     `yaml:"transition_ms" validate:"gte=0"` // duration of enter/update/exit
}

var cabinPath = strings.Join([]string{
	"M280 240",
	"Q312 160 440 150",
	"L760 150",
	"Q844 160 910 222",
	"L940 260",
	"Q956 276 956 298",
	"L956 480",
	"Q956 496 940 496",
	"L328 496",
	"Q312 496 304 478",
	"L264 398",
	"Q250 368 280 240",
	"Z",
}, " ")

var bodyOutlinePath = strings.Join([]string{
	"M140 340",
	"Q168 256 240 230",
	"Q320 118 500 110",
	"L780 108",
	"Q930 116 1010 222",
	"L1062 244",
	"Q1140 276 1140 360",
	"L1140 490",
	"Q1140 510 1118 510",
	"L908 510",
	"Q880 580 796 580",
	"Q712 580 684 510",
	"L516 510",
	"Q488 580 404 580",
	"Q320 580 292 510",
	"L224 510",
	"Q140 510 140 420",
	"Z",
}, " ")

// DefaultLayout returns the standard car canvas.
func DefaultLayout() Layout {
	return Layout{
		Width:               1200,
		Height:              620,
		GridWidth:           540,
		GridHeight:          260,
		GridOriginY:         220,
		WeekdayLabelYOffset: -30,
		YearLabelGap:        52,
		CellRadius:          6,
		XPaddingInner:       0.12,
		XPaddingOuter:       0.06,
		YPaddingInner:       0.18,
		YPaddingOuter:       0.16,
		CabinPath:           cabinPath,
		BodyOutlinePath:     bodyOutlinePath,
		FontFamily:          "sans-serif",
		FontSize:            14,
		TransitionMS:        200,
	}
}

// GridOriginX centers the grid horizontally on the canvas.
func (l Layout) GridOriginX() float64 {
	return (l.Width - l.GridWidth) / 2
}

// YearLabelX is the right edge of the year labels.
func (l Layout) YearLabelX() float64 {
	return l.GridOriginX() - l.YearLabelGap
}
