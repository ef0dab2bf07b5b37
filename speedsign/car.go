package speedsign

import (
	"fmt"
	"time"

	"github.com/stsysd/collisionviz/canvas"
)

// CarPath outlines a side-on car of size w x h whose bottom left corner is
// at (x, y).
func CarPath(x, y, w, h float64) string {
	head := x + w*0.2
	tail := x + w*0.8
	top := y - h
	shoulder := top + h*0.2
	n := canvas.Num
	return fmt.Sprintf("M%s,%s L%s,%s L%s,%s L%s,%s L%s,%s L%s,%s L%s,%s L%s,%s Z",
		n(x), n(y),
		n(x), n(shoulder),
		n(head), n(shoulder),
		n(head), n(top),
		n(tail), n(top),
		n(tail), n(shoulder),
		n(x+w), n(shoulder),
		n(x+w), n(y))
}

// CarPosition is where the car is at a point in its loop.
type CarPosition struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Progress float64 `json:"progress"` // 0 at the left edge, 1 at the right
}

// CarAt returns the car position elapsed time after the loop started. The
// car moves linearly from just off the left edge to the right edge and then
// starts over.
func CarAt(l Layout, elapsed time.Duration) CarPosition {
	period := time.Duration(l.DriveMS) * time.Millisecond
	if period <= 0 {
		return CarPosition{X: -l.CarWidth, Y: l.RoadY() - l.CarHeight}
	}
	elapsed %= period
	if elapsed < 0 {
		elapsed += period
	}
	p := float64(elapsed) / float64(period)
	from, to := -l.CarWidth, l.Width
	return CarPosition{
		X:        from + (to-from)*p,
		Y:        l.RoadY() - l.CarHeight,
		Progress: p,
	}
}
