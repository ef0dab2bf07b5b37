// Package clock builds the 24-hour radial chart: eight three-hour segments
// on two rings, hour labels, and an hour hand that follows the wall clock.
package clock

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/stsysd/collisionviz/dataset"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

// SegmentCount is the number of three-hour segments in a day.
const SegmentCount = 8

// Segment is one three-hour slice of the day. Segments starting before noon
// sit on the outer ring.
type Segment struct {
	Index  int     `json:"index"`
	Start  int     `json:"start"` // hour, inclusive
	End    int     `json:"end"`   // hour, exclusive
	Column string  `json:"column"`
	Value  float64 `json:"value"`
	Outer  bool    `json:"outer"`
}

// Aggregate averages every column over the data rows, skipping the first
// data row, and assigns the first eight column means to the segments in
// order. Blank and non-numeric cells do not count toward a mean.
func Aggregate(t *table.Table) ([]Segment, error) {
	if len(t.Columns) < SegmentCount {
		return nil, model.NewVisualizationError(model.ErrSchemaMismatch,
			fmt.Sprintf("Expected at least %d columns in the clock CSV, found %d.", SegmentCount, len(t.Columns)), nil)
	}
	if len(t.Rows) < 2 {
		return nil, model.NewVisualizationError(model.ErrEmptyDataset,
			"No data found after reading the CSV.", nil)
	}

	segments := make([]Segment, SegmentCount)
	for i := range segments {
		col := t.Columns[i]
		segments[i] = Segment{
			Index:  i,
			Start:  i * 3,
			End:    i*3 + 3,
			Column: col,
			Value:  columnMean(t.Rows[1:], col),
			Outer:  i < SegmentCount/2,
		}
	}
	return segments, nil
}

func columnMean(rows []table.Row, col string) float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := dataset.ParseNumber(row[col]); ok {
			values = append(values, v)
		}
	}
	mean, err := stats.Mean(values)
	if err != nil {
		// no numeric cells in this column
		return 0
	}
	return mean
}

// MaxValue returns the largest segment value, or 0 for no segments.
func MaxValue(segments []Segment) float64 {
	values := make([]float64, len(segments))
	for i, s := range segments {
		values[i] = s.Value
	}
	m, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return m
}
