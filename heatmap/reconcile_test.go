package heatmap

import (
	"reflect"
	"testing"

	"github.com/stsysd/collisionviz/model"
)

func TestReconcile(t *testing.T) {
	next := []string{"b", "c", "d"}
	d := Reconcile([]string{"a", "b", "c"}, next, func(s string) string { return s })

	if !reflect.DeepEqual(d.Enter, []string{"d"}) {
		t.Errorf("Unexpected enter %v", d.Enter)
	}
	if !reflect.DeepEqual(d.Update, []string{"b", "c"}) {
		t.Errorf("Unexpected update %v", d.Update)
	}
	if !reflect.DeepEqual(d.Exit, []string{"a"}) {
		t.Errorf("Unexpected exit %v", d.Exit)
	}
}

func TestReconcile_FromEmpty(t *testing.T) {
	d := Reconcile(nil, []int{1, 2}, func(i int) string { return string(rune('0' + i)) })
	if len(d.Enter) != 2 || len(d.Update) != 0 || len(d.Exit) != 0 {
		t.Errorf("Expected everything to enter, got %+v", d)
	}
}

func TestDiffFrames_Partition(t *testing.T) {
	ds := sampleDataset(t)
	l := DefaultLayout()

	prev := BuildFrame(l, selection(ds, model.YearRange{Start: 2018, End: 2020}), false)
	next := BuildFrame(l, selection(ds, model.YearRange{Start: 2020, End: 2022}), true)
	diff := DiffFrames(prev.CellKeys(), prev.YearLabelKeys(), next)

	// enter ∪ update は next と一致し、exit は prev にしかないキー
	seen := map[string]int{}
	for _, c := range diff.Cells.Enter {
		seen[c.Key]++
	}
	for _, c := range diff.Cells.Update {
		seen[c.Key]++
	}
	if len(seen) != len(next.Cells) {
		t.Errorf("Expected %d next keys, got %d", len(next.Cells), len(seen))
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("Key %s appears %d times", k, n)
		}
	}
	if len(diff.Cells.Update) != 7 || len(diff.Cells.Enter) != 14 || len(diff.Cells.Exit) != 14 {
		t.Errorf("Unexpected partition sizes enter=%d update=%d exit=%d",
			len(diff.Cells.Enter), len(diff.Cells.Update), len(diff.Cells.Exit))
	}
	if !reflect.DeepEqual(diff.YearLabels.Exit, []string{"2018", "2019"}) {
		t.Errorf("Unexpected year label exit %v", diff.YearLabels.Exit)
	}
	if !diff.Animate {
		t.Error("Expected animated diff")
	}
}
