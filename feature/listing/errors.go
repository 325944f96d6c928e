package listing

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks a record that was dropped because an expected
// sub-field was missing or did not match its pattern.
var ErrMalformedRecord = errors.New("malformed record")

// errExcluded marks a record dropped on purpose (e.g. a guest performance).
var errExcluded = errors.New("excluded record")

// MalformedRecordError describes why a single record was dropped.
type MalformedRecordError struct {
	// Field names the sub-field that failed (time_location, title, date).
	Field string
	// Text is the offending raw text, if any.
	Text string
}

func (e *MalformedRecordError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("malformed record: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed record: %s %q", e.Field, e.Text)
}

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// FetchError is returned when a listing window could not be fetched.
// The window yields no candidates; other windows are unaffected.
type FetchError struct {
	Window     Window
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching listing %s: %v", e.Window, e.Err)
	}
	return fmt.Sprintf("fetching listing %s: unexpected status code: %d", e.Window, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
