// Package model provides the data model shared by the visualizations.
package model

import "errors"

// Sentinel errors for the three ways a visualization can fail to load.
var (
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrEmptyDataset        = errors.New("empty dataset")
)

// ErrSessionNotFound is returned when a viewer session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError represents invalid request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError is a helper that builds a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// VisualizationError carries the user-visible message shown in place of a
// visualization that could not be built. Kind is one of the sentinels above.
type VisualizationError struct {
	Kind    error
	Message string
	Err     error
}

func (e *VisualizationError) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *VisualizationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewVisualizationError builds a VisualizationError.
func NewVisualizationError(kind error, msg string, cause error) error {
	return &VisualizationError{Kind: kind, Message: msg, Err: cause}
}

// UserMessage returns the message to show in place of a failed
// visualization.
func UserMessage(err error) string {
	var ve *VisualizationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Visualization unavailable."
}
