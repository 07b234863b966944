package processor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("target dimensions must be positive")
	ErrMissingSettings   = errors.New("image entry has no settings")
	ErrEmptyOutput       = errors.New("conversion produced no output")
)

// ConvertError wraps a per-entry conversion failure with the operation
// and the source filename it concerned.
type ConvertError struct {
	Operation string
	Name      string
	Err       error
}

func (e *ConvertError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("conversion %s failed for %s: %v", e.Operation, e.Name, e.Err)
	}
	return fmt.Sprintf("conversion %s failed: %v", e.Operation, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError creates a new conversion error
func NewConvertError(operation, name string, err error) *ConvertError {
	return &ConvertError{
		Operation: operation,
		Name:      name,
		Err:       err,
	}
}
