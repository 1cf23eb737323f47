package sweep

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a non-finite sweep entry.
var ErrInvalidValue = errors.New("sweep: invalid sweep value")

// InvalidValueError reports which entry was rejected.
type InvalidValueError struct {
	Index int
	Value float64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("non-finite sweep value %g at index %d", e.Value, e.Index)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
