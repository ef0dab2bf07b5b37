// Package speedsign builds the collisions-by-speed-limit chart, drawn as road
// signs whose height follows the yearly total, with a car driving past.
package speedsign

import (
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/stsysd/collisionviz/dataset"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

const (
	measureColumn   = "Measures"
	collisionsValue = "Number of collisions"
	speedSuffix     = "per hour"
)

// Bar is the yearly total for one speed limit.
type Bar struct {
	Speed string  `json:"speed"`
	Value float64 `json:"value"`
}

// Data holds the totals of every year, ready to chart.
type Data struct {
	Years  []int         `json:"years"`
	ByYear map[int][]Bar `json:"by_year"`
}

// Aggregate keeps the collision-count rows, groups them by year and sums
// every speed column.
func Aggregate(t *table.Table) (*Data, error) {
	var speedKeys []string
	for _, c := range t.Columns {
		if strings.HasSuffix(c, speedSuffix) {
			speedKeys = append(speedKeys, c)
		}
	}

	rowsByYear := make(map[int][]table.Row)
	for _, row := range t.Rows {
		if row[measureColumn] != collisionsValue {
			continue
		}
		year, ok := rowYear(row)
		if !ok {
			continue
		}
		rowsByYear[year] = append(rowsByYear[year], row)
	}

	if len(rowsByYear) == 0 || len(speedKeys) == 0 {
		return nil, model.NewVisualizationError(model.ErrEmptyDataset, "No data available", nil)
	}

	d := &Data{ByYear: make(map[int][]Bar, len(rowsByYear))}
	for year, rows := range rowsByYear {
		d.Years = append(d.Years, year)
		bars := make([]Bar, len(speedKeys))
		for i, key := range speedKeys {
			bars[i] = Bar{
				Speed: strings.TrimSpace(strings.Replace(key, " per hour", "", 1)),
				Value: columnSum(rows, key),
			}
		}
		sortBySpeed(bars)
		d.ByYear[year] = bars
	}
	sort.Ints(d.Years)
	return d, nil
}

// Latest returns the most recent year.
func (d *Data) Latest() int {
	return d.Years[len(d.Years)-1]
}

// Has reports whether year has data.
func (d *Data) Has(year int) bool {
	_, ok := d.ByYear[year]
	return ok
}

// rowYear reads the Year column, falling back to the first four characters
// of Month. Zero is not a year.
func rowYear(row table.Row) (int, bool) {
	if y := strings.TrimSpace(row["Year"]); y != "" {
		v, ok := dataset.ParseNumber(y)
		if !ok || v == 0 {
			return 0, false
		}
		return int(v), true
	}
	month := row["Month"]
	if month == "" {
		return 0, false
	}
	if len(month) > 4 {
		month = month[:4]
	}
	v, ok := leadingInt(month)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

func columnSum(rows []table.Row, key string) float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := dataset.ParseNumber(row[key]); ok {
			values = append(values, v)
		}
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return sum
}

// sortBySpeed orders bars by the leading integer of their speed label.
// Labels without one keep their relative order after the numeric ones.
func sortBySpeed(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		a, okA := leadingInt(bars[i].Speed)
		b, okB := leadingInt(bars[j].Speed)
		switch {
		case okA && okB:
			return a < b
		default:
			return okA && !okB
		}
	})
}

// leadingInt parses the optionally signed decimal prefix of s after leading
// whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
