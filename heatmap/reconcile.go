package heatmap

import "github.com/stsysd/collisionviz/model"

// Diff partitions the next set of keyed items against the keys that are
// currently shown. Enter and Update keep the order of next; Exit keeps the
// order of the previous keys.
type Diff[T any] struct {
	Enter  []T      `json:"enter"`
	Update []T      `json:"update"`
	Exit   []string `json:"exit"`
}

// Reconcile computes the keyed diff from prevKeys to next. Keys are compared
// by identity only; an item whose data changed under the same key is an
// update.
func Reconcile[T any](prevKeys []string, next []T, key func(T) string) Diff[T] {
	prev := make(map[string]bool, len(prevKeys))
	for _, k := range prevKeys {
		prev[k] = true
	}

	d := Diff[T]{Enter: []T{}, Update: []T{}, Exit: []string{}}
	present := make(map[string]bool, len(next))
	for _, item := range next {
		k := key(item)
		present[k] = true
		if prev[k] {
			d.Update = append(d.Update, item)
		} else {
			d.Enter = append(d.Enter, item)
		}
	}
	for _, k := range prevKeys {
		if !present[k] {
			d.Exit = append(d.Exit, k)
		}
	}
	return d
}

// FrameDiff is what a client applies to move from one frame to the next.
// Weekday labels and grid lines are sent whole since they are not keyed.
type FrameDiff struct {
	Range         model.YearRange `json:"range"`
	RangeLabel    string          `json:"range_label"`
	Cells         Diff[Cell]      `json:"cells"`
	YearLabels    Diff[Label]     `json:"year_labels"`
	WeekdayLabels []Label         `json:"weekday_labels"`
	GridX         []float64       `json:"grid_x"`
	GridY         []float64       `json:"grid_y"`
	ColorDomain   [2]float64      `json:"color_domain"`
	Animate       bool            `json:"animate"`
	Transition    Transition      `json:"transition"`
}

// DiffFrames computes the diff from the keys currently shown to next.
func DiffFrames(prevCellKeys, prevYearKeys []string, next Frame) FrameDiff {
	return FrameDiff{
		Range:         next.Range,
		RangeLabel:    next.RangeLabel,
		Cells:         Reconcile(prevCellKeys, next.Cells, func(c Cell) string { return c.Key }),
		YearLabels:    Reconcile(prevYearKeys, next.YearLabels, func(l Label) string { return l.Key }),
		WeekdayLabels: next.WeekdayLabels,
		GridX:         next.GridX,
		GridY:         next.GridY,
		Animate:       next.Animate,
		Transition:    next.Transition,
		ColorDomain:   next.ColorDomain,
	}
}
