// Package dataset turns a wide weekday-by-year table into long-form records
// and selects them by year range.
package dataset

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/table"
)

var (
	yearColumnPattern = regexp.MustCompile(`^\d{4}$`)

	// exact names are checked before the substring fallback
	weekdayColumnNames = map[string]bool{
		"day of week": true,
		"weekday":     true,
		"day":         true,
	}
)

// Schema names the columns the transformer reads.
type Schema struct {
	WeekdayColumn string
	YearColumns   []string
}

// NormalizeColumns trims whitespace from every column name. Rows are only
// rewritten when at least one name changed. When two names trim to the same
// string, the later column in header order wins.
func NormalizeColumns(t *table.Table) *table.Table {
	trimmed := make([]string, len(t.Columns))
	changed := false
	for i, c := range t.Columns {
		trimmed[i] = strings.TrimSpace(c)
		if trimmed[i] != c {
			changed = true
		}
	}
	if !changed {
		return t
	}

	rows := make([]table.Row, len(t.Rows))
	for i, row := range t.Rows {
		out := make(table.Row, len(row))
		for j, c := range t.Columns {
			if v, ok := row[c]; ok {
				out[trimmed[j]] = v
			}
		}
		rows[i] = out
	}
	return &table.Table{Columns: trimmed, Rows: rows}
}

// DetectWeekdayColumn finds the column holding weekday names.
func DetectWeekdayColumn(columns []string) (string, error) {
	for _, c := range columns {
		if weekdayColumnNames[strings.ToLower(strings.TrimSpace(c))] {
			return c, nil
		}
	}
	// NOTE: also matches unrelated names such as "Someday"
	for _, c := range columns {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "week") || strings.Contains(lower, "day") {
			return c, nil
		}
	}
	return "", model.NewVisualizationError(model.ErrSchemaMismatch,
		"Could not detect the weekday column in the CSV.", nil)
}

// DetectYearColumns returns every four-digit column name in ascending
// numeric order.
func DetectYearColumns(columns []string) ([]string, error) {
	var years []string
	for _, c := range columns {
		c = strings.TrimSpace(c)
		if yearColumnPattern.MatchString(c) {
			years = append(years, c)
		}
	}
	if len(years) == 0 {
		return nil, model.NewVisualizationError(model.ErrSchemaMismatch,
			"No numeric year columns found in the CSV.", nil)
	}

	sort.SliceStable(years, func(i, j int) bool {
		a, _ := strconv.Atoi(years[i])
		b, _ := strconv.Atoi(years[j])
		return a < b
	})
	return years, nil
}

// Normalize trims the header and detects the schema.
func Normalize(t *table.Table) (*table.Table, Schema, error) {
	t = NormalizeColumns(t)

	weekdayCol, err := DetectWeekdayColumn(t.Columns)
	if err != nil {
		return nil, Schema{}, err
	}
	yearCols, err := DetectYearColumns(t.Columns)
	if err != nil {
		return nil, Schema{}, err
	}
	return t, Schema{WeekdayColumn: weekdayCol, YearColumns: yearCols}, nil
}
