package device

import (
	"errors"
	"fmt"
)

// ErrInvalidParams indicates a device parameter outside its valid range.
var ErrInvalidParams = errors.New("device: invalid device parameters")

// ParamError reports which parameter failed validation.
type ParamError struct {
	Field string
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid device parameter %s=%g", e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
