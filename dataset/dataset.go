package dataset

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

// DefaultRangeYears is how many of the most recent years are selected
// initially.
const DefaultRangeYears = 5

// Dataset is the long-form record set behind the heatmap. It is immutable
// after Build.
type Dataset struct {
	records []model.Record
	years   []int
	min     float64
	max     float64
}

// Build normalizes and transforms a loaded table.
func Build(t *table.Table) (*Dataset, error) {
	t, schema, err := Normalize(t)
	if err != nil {
		return nil, err
	}
	records, err := Transform(t, schema)
	if err != nil {
		return nil, err
	}
	return New(records)
}

// New wraps records in a Dataset. Records sharing a (year, weekday) key keep
// the first occurrence.
func New(records []model.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, model.NewVisualizationError(model.ErrEmptyDataset,
			"No data found after reading the CSV.", nil)
	}

	seen := make(map[string]bool, len(records))
	kept := make([]model.Record, 0, len(records))
	yearSet := make(map[int]bool)
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		kept = append(kept, r)
		yearSet[r.Year] = true
		values = append(values, r.Value)
	}
	sortRecords(kept)

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	lo, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	hi, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	return &Dataset{records: kept, years: years, min: lo, max: hi}, nil
}

// Records returns every record ordered by (year, weekday).
func (d *Dataset) Records() []model.Record {
	out := make([]model.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Years returns the distinct years present, ascending.
func (d *Dataset) Years() []int {
	out := make([]int, len(d.years))
	copy(out, d.years)
	return out
}

// YearBounds returns the smallest and largest year present.
func (d *Dataset) YearBounds() (int, int) {
	return d.years[0], d.years[len(d.years)-1]
}

// ValueDomain returns the min and max value over the full dataset. The color
// scale uses it regardless of the current selection.
func (d *Dataset) ValueDomain() (float64, float64) {
	return d.min, d.max
}

// FullRange covers every year present.
func (d *Dataset) FullRange() model.YearRange {
	lo, hi := d.YearBounds()
	return model.YearRange{Start: lo, End: hi}
}

// DefaultRange covers the last DefaultRangeYears distinct years, or all of
// them when fewer exist.
func (d *Dataset) DefaultRange() model.YearRange {
	n := min(DefaultRangeYears, len(d.years))
	return model.YearRange{Start: d.years[len(d.years)-n], End: d.years[len(d.years)-1]}
}

// Select returns the records inside r. The zero range selects everything.
func (d *Dataset) Select(r model.YearRange) []model.Record {
	return SelectRecords(d.records, r)
}

// SelectRecords filters records to r and orders them by (year, weekday).
// An inverted r selects the same years as its ordered form. The input is not
// modified.
func SelectRecords(records []model.Record, r model.YearRange) []model.Record {
	r = r.Ordered()
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if r.IsZero() || r.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out
}

func sortRecords(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].Weekday < records[j].Weekday
	})
}
