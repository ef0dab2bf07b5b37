package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

// Transform pivots every year column into long-form records. Rows whose
// weekday is not canonical are dropped, as are blank or non-numeric cells.
func Transform(t *table.Table, schema Schema) ([]model.Record, error) {
	years := make([]int, len(schema.YearColumns))
	for i, c := range schema.YearColumns {
		years[i], _ = strconv.Atoi(c)
	}

	var records []model.Record
	for _, row := range t.Rows {
		weekday, ok := model.ParseWeekday(row[schema.WeekdayColumn])
		if !ok {
			continue
		}
		for i, col := range schema.YearColumns {
			v, ok := ParseNumber(row[col])
			if !ok {
				continue
			}
			records = append(records, model.Record{Year: years[i], Weekday: weekday, Value: v})
		}
	}

	if len(records) == 0 {
		return nil, model.NewVisualizationError(model.ErrEmptyDataset,
			"No data found after reading the CSV.", nil)
	}
	return records, nil
}

// ParseNumber parses a cell as a finite number. Blank and whitespace-only
// cells are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
