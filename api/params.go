package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stsysd/collisionviz/clock"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/rangecontrol"
)

var validate = validator.New()

// RangeParams represents the year range query of a heatmap request.
type RangeParams struct {
	Range model.YearRange
}

// NewRangeParams creates parameters from the start and end query values.
func NewRangeParams(r *http.Request) (*RangeParams, error) {
	query := r.URL.Query()
	yr, err := model.NewYearRange(query.Get("start"), query.Get("end"))
	if err != nil {
		return nil, err
	}
	return &RangeParams{Range: yr}, nil
}

// SessionParams represents the session path parameter.
type SessionParams struct {
	SessionID uuid.UUID
}

// NewSessionParams creates parameters from the session_id path value.
func NewSessionParams(r *http.Request) (*SessionParams, error) {
	id, err := uuid.Parse(chi.URLParam(r, "session_id"))
	if err != nil {
		return nil, model.NewValidationError("invalid session_id")
	}
	return &SessionParams{SessionID: id}, nil
}

// BrushRequest is a live brush extent in pixels.
type BrushRequest struct {
	X0 *float64 `json:"x0" validate:"required"`
	X1 *float64 `json:"x1" validate:"required"`
}

// Bind implements render.Binder.
func (b *BrushRequest) Bind(r *http.Request) error {
	if err := validate.Struct(b); err != nil {
		return model.NewValidationError("x0 and x1 are required")
	}
	return nil
}

// CommitRequest is a released brush extent.
type CommitRequest struct {
	X0     *float64            `json:"x0" validate:"required"`
	X1     *float64            `json:"x1" validate:"required"`
	Source rangecontrol.Source `json:"source"`
}

// Bind implements render.Binder. A missing source means a drag.
func (c *CommitRequest) Bind(r *http.Request) error {
	if err := validate.Struct(c); err != nil {
		return model.NewValidationError("x0 and x1 are required")
	}
	if c.Source == "" {
		c.Source = rangecontrol.SourceDrag
	}
	if !c.Source.Valid() {
		return model.NewValidationError(fmt.Sprintf("invalid source %q", c.Source))
	}
	return nil
}

// ClockParams represents the pinned segment query.
type ClockParams struct {
	Pin clock.Pin
}

// NewClockParams creates parameters from the pinned query value. An empty
// value pins nothing.
func NewClockParams(r *http.Request) (*ClockParams, error) {
	v := strings.TrimSpace(r.URL.Query().Get("pinned"))
	if v == "" {
		return &ClockParams{}, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 || i >= clock.SegmentCount {
		return nil, model.NewValidationError(fmt.Sprintf("pinned must be between 0 and %d", clock.SegmentCount-1))
	}
	return &ClockParams{Pin: clock.PinSegment(i)}, nil
}

// SpeedParams represents the year query of the speed chart. Zero selects
// the latest year.
type SpeedParams struct {
	Year int
}

// NewSpeedParams creates parameters from the year query value.
func NewSpeedParams(r *http.Request) (*SpeedParams, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return &SpeedParams{}, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || len(v) != 4 {
		return nil, model.NewValidationError("invalid year parameter. Use a four digit year")
	}
	return &SpeedParams{Year: year}, nil
}

// CarParams represents the elapsed time of the car animation. Without t
// the server's own uptime is used.
type CarParams struct {
	Elapsed time.Duration
	Given   bool
}

// NewCarParams creates parameters from the t query value, in milliseconds.
func NewCarParams(r *http.Request) (*CarParams, error) {
	v := strings.TrimSpace(r.URL.Query().Get("t"))
	if v == "" {
		return &CarParams{}, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms < 0 {
		return nil, model.NewValidationError("t must be a non-negative number of milliseconds")
	}
	return &CarParams{Elapsed: time.Duration(ms) * time.Millisecond, Given: true}, nil
}
