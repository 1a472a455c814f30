package alert

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter indicates a required parameter was absent or empty.
	ErrMissingParameter = errors.New("parameter missing")
	// ErrInvalidParameter indicates a parameter held a value outside its allowed set.
	ErrInvalidParameter = errors.New("parameter invalid")
	// ErrMalformedParameters indicates the parameter payload was not a flat JSON object.
	ErrMalformedParameters = errors.New("parameters malformed")
)

// IsInputError reports whether err was caused by the caller's parameters
// rather than by delivery.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrMalformedParameters)
}

// ParameterError reports which parameter failed validation and why.
type ParameterError struct {
	Name     string
	Value    string
	Expected string
	Err      error
}

func (e *ParameterError) Error() string {
	if errors.Is(e.Err, ErrMissingParameter) {
		return fmt.Sprintf("cannot get %s", e.Name)
	}
	return fmt.Sprintf("incorrect %q parameter given: %q: must be %s", e.Name, e.Value, e.Expected)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

func missing(name string) error {
	return &ParameterError{Name: name, Err: ErrMissingParameter}
}

func invalid(name, value, expected string) error {
	return &ParameterError{Name: name, Value: value, Expected: expected, Err: ErrInvalidParameter}
}
