package model

import (
	"fmt"
	"strconv"
	"strings"
)

// YearRange is an inclusive range of years. The zero value means "unset".
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewYearRange parses start/end query parameters. Both empty yields the
// zero range; a single value selects that one year.
func NewYearRange(startStr, endStr string) (YearRange, error) {
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	if startStr == "" && endStr == "" {
		return YearRange{}, nil
	}

	var start, end int
	var err error

	if startStr != "" {
		start, err = parseYear(startStr)
		if err != nil {
			return YearRange{}, NewValidationError("invalid start parameter. Use a four digit year")
		}
	}
	if endStr != "" {
		end, err = parseYear(endStr)
		if err != nil {
			return YearRange{}, NewValidationError("invalid end parameter. Use a four digit year")
		}
	}

	// 片方だけ指定された場合はその年のみ
	if startStr == "" {
		start = end
	}
	if endStr == "" {
		end = start
	}

	if start > end {
		start, end = end, start
	}
	return YearRange{Start: start, End: end}, nil
}

func parseYear(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("year must have four digits")
	}
	return strconv.Atoi(s)
}

// IsZero reports whether the range is unset.
func (r YearRange) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return r.Start <= year && year <= r.End
}

// Years returns every integer year from Start to End.
func (r YearRange) Years() []int {
	if r.End < r.Start {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}

// Ordered returns the range with Start <= End.
func (r YearRange) Ordered() YearRange {
	if r.Start > r.End {
		return YearRange{Start: r.End, End: r.Start}
	}
	return r
}

// Clamp orders the endpoints and clamps both into [min, max].
func (r YearRange) Clamp(min, max int) YearRange {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return YearRange{Start: clampInt(lo, min, max), End: clampInt(hi, min, max)}
}

// Label renders the range the way the range control shows it.
func (r YearRange) Label() string {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return fmt.Sprintf("Years selected: %d", lo)
	}
	return fmt.Sprintf("Years selected: %d–%d", lo, hi)
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
