package recipes

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteData is returned when any record in a batch fails validation.
	ErrIncompleteData = errors.New("recipes data is incomplete")
	// ErrErrorResponse is returned when the endpoint answers with its error payload.
	ErrErrorResponse = errors.New("recipes endpoint returned an error response")
)

// IncompleteDataError reports how many records of a batch were usable.
type IncompleteDataError struct {
	Valid    int
	Total    int
	Failures []*RecordError
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("%v: %d of %d records valid", ErrIncompleteData, e.Valid, e.Total)
}

func (e *IncompleteDataError) Is(target error) bool { return target == ErrIncompleteData }

// RecordError explains why one wire record could not become a domain record.
type RecordError struct {
	Index  int
	UUID   string
	Fields []string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (uuid %q): invalid fields %v: %v", e.Index, e.UUID, e.Fields, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
