package clock

import "time"

// Hand is the hour hand position.
type Hand struct {
	Hour     int     `json:"hour"`
	Minute   int     `json:"minute"`
	Rotation float64 `json:"rotation"` // degrees clockwise from twelve o'clock
	Length   float64 `json:"length"`
}

// Rotation returns the hour hand angle in degrees for a 24-hour time.
func Rotation(hour, minute int) float64 {
	return float64(hour%12)*30 + float64(minute)/2
}

// HandLength points the hand at the outer ring before noon and the inner
// ring after.
func HandLength(l Layout, hour int) float64 {
	if hour < 12 {
		return l.OuterRadius * 0.9
	}
	return l.InnerRadius * 0.8
}

// HandAt returns the hand for wall clock time t.
func HandAt(l Layout, t time.Time) Hand {
	h, m := t.Hour(), t.Minute()
	return Hand{
		Hour:     h,
		Minute:   m,
		Rotation: Rotation(h, m),
		Length:   HandLength(l, h),
	}
}
