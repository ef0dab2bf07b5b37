package speedsign

import (
	"math"
	"strconv"

	"github.com/stsysd/collisionviz/scale"
)

// Margin is the space around the plot area.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Layout sizes the chart. Width and Height are the plot area inside Margin.
type Layout struct {
	Margin     Margin  `yaml:"margin"`
	Width      float64 `yaml:"width" validate:"gt=0"`
	Height     float64 `yaml:"height" validate:"gt=0"`
	CarWidth   float64 `yaml:"car_width"`
	CarHeight  float64 `yaml:"car_height"`
	SignSize   float64 `yaml:"sign_size"`
	SignWidth  float64 `yaml:"sign_width"`
	PoleWidth  float64 `yaml:"pole_width"`
	SignRadius float64 `yaml:"sign_radius"`
	MinSignY   float64 `yaml:"min_sign_y"` // signs never rise above this
	TopPadding float64 `yaml:"top_padding"`
	AxisTicks  int     `yaml:"axis_ticks"`
	DriveMS    int     `yaml:"drive_ms"` // time for the car to cross the road
}

// DefaultLayout returns the 1200x460 chart.
func DefaultLayout() Layout {
	m := Margin{Top: 50, Right: 40, Bottom: 40, Left: 80}
	return Layout{
		Margin:     m,
		Width:      1200 - m.Left - m.Right,
		Height:     460 - m.Top - m.Bottom,
		CarWidth:   44,
		CarHeight:  22,
		SignSize:   60,
		SignWidth:  96,
		PoleWidth:  8,
		SignRadius: 8,
		MinSignY:   60,
		TopPadding: 40,
		AxisTicks:  6,
		DriveMS:    10000,
	}
}

// RoadY is the baseline the signs stand on.
func (l Layout) RoadY() float64 {
	return l.Height - l.Margin.Bottom
}

// Sign is one laid out speed sign.
type Sign struct {
	Speed      string  `json:"speed"`
	Value      float64 `json:"value"`
	X          float64 `json:"x"` // center
	PoleY      float64 `json:"pole_y"`
	PoleHeight float64 `json:"pole_height"`
	SquareY    float64 `json:"square_y"`
	TextY      float64 `json:"text_y"`
	Tooltip    string  `json:"tooltip"`
}

// AxisTick is a y axis tick with its grid line position.
type AxisTick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Scene is the laid out chart for one year.
type Scene struct {
	Layout Layout     `json:"-"`
	Year   int        `json:"year"`
	Years  []int      `json:"years"`
	Title  string     `json:"title"`
	Signs  []Sign     `json:"signs"`
	Axis   []AxisTick `json:"axis"`
}

// Title is the chart heading for year.
func Title(year int) string {
	return "Number of Collisions by Speed Limit — " + strconv.Itoa(year)
}

// BuildScene lays out the bars of one year.
func BuildScene(l Layout, year int, years []int, bars []Bar) Scene {
	speeds := make([]string, len(bars))
	values := make([]float64, len(bars))
	for i, b := range bars {
		speeds[i] = b.Speed
		values[i] = b.Value
	}

	x := scale.NewBand(speeds, 0, l.Width, 0.5, 0.5)
	vmax := 0.0
	for _, v := range values {
		vmax = math.Max(vmax, v)
	}
	roadY := l.RoadY()
	y := scale.NewLinear(0, vmax*1.05, roadY-l.SignSize/2, l.TopPadding)

	s := Scene{Layout: l, Year: year, Years: years, Title: Title(year)}
	for _, b := range bars {
		cx, _ := x.Center(b.Speed)
		top := SafeY(l, y.Map(b.Value))
		s.Signs = append(s.Signs, Sign{
			Speed:      b.Speed,
			Value:      b.Value,
			X:          cx,
			PoleY:      top,
			PoleHeight: roadY - top,
			SquareY:    top - l.SignSize,
			TextY:      top - l.SignSize/2 + 5,
			Tooltip:    b.Speed + ": " + scale.FormatComma(b.Value),
		})
	}

	for _, t := range y.Ticks(l.AxisTicks) {
		s.Axis = append(s.Axis, AxisTick{Value: t, Y: y.Map(t), Label: scale.FormatSI(t)})
	}
	return s
}

// SafeY keeps a sign from rising above the top of the plot.
func SafeY(l Layout, y float64) float64 {
	return math.Max(y, l.MinSignY)
}
