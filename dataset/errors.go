package dataset

import "fmt"

// DataIntegrityError means the indicator table cannot support the requested
// analysis at all: the join key is missing or duplicated, or a required
// column is absent. It aborts the affected view and is surfaced verbatim.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity error: %s", e.Reason)
}

func integrityErrorf(format string, args ...interface{}) error {
	return &DataIntegrityError{Reason: fmt.Sprintf(format, args...)}
}
