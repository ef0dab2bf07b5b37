package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Weekday is one of the seven canonical weekday names, ordered Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekdays returns the canonical weekdays in Monday..Sunday order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "Unknown"
	}
	return weekdayNames[w]
}

// Valid reports whether w is a canonical weekday.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// ParseWeekday resolves a cell value to a canonical weekday. Matching is
// case and surrounding-whitespace insensitive only.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if strings.ToLower(name) == s {
			return Weekday(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the weekday as its canonical name.
func (w Weekday) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText decodes a canonical weekday name.
func (w *Weekday) UnmarshalText(b []byte) error {
	v, ok := ParseWeekday(string(b))
	if !ok {
		return fmt.Errorf("invalid weekday %q", string(b))
	}
	*w = v
	return nil
}

// Record is one long-form {year, weekday, value} observation.
type Record struct {
	Year    int     `json:"year"`
	Weekday Weekday `json:"weekday"`
	Value   float64 `json:"value"`
}

// NewRecord creates a validated Record.
func NewRecord(year int, weekday Weekday, value float64) (Record, error) {
	rec := Record{Year: year, Weekday: weekday, Value: value}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Key identifies a record across re-renders.
func (r Record) Key() string {
	return fmt.Sprintf("%d-%s", r.Year, r.Weekday)
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if r.Year < 1000 || r.Year > 9999 {
		return errors.New("year must have four digits")
	}
	if !r.Weekday.Valid() {
		return errors.New("weekday is not canonical")
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return errors.New("value must be finite")
	}
	return nil
}
