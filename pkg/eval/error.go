package eval

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched (errors.Is) by every structural error that aborts
// an evaluation.
var ErrMalformed = errors.New("malformed expression")

// ErrStackExhausted is returned when evaluation nests deeper than the
// interpreter's maximum depth.
var ErrStackExhausted = errors.New("maximum evaluation depth exceeded")

// MalformedError reports an expression whose structure cannot be evaluated:
// a closure applied to the wrong number of arguments, a non-atom where a
// binding name is required, a cond clause that is not a pair, or a missing
// sub-expression.
type MalformedError struct {
	// Form names the special form, primitive or "lambda" that rejected the
	// expression.
	Form string
	// Msg describes the problem.
	Msg string
	// Err is an underlying error, if any.
	Err error
}

func malformedf(form string, format string, v ...interface{}) *MalformedError {
	return &MalformedError{Form: form, Msg: fmt.Sprintf(format, v...)}
}

func malformedErr(form string, err error) *MalformedError {
	return &MalformedError{Form: form, Msg: err.Error(), Err: err}
}

func (err *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s", err.Form, err.Msg)
}

// Unwrap returns the underlying error.
func (err *MalformedError) Unwrap() error {
	return err.Err
}

// Is makes every MalformedError match ErrMalformed.
func (err *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}
