package indicator

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the price series has no bars.
var ErrEmptyInput = errors.New("price series is empty")

// InsufficientDataError reports too few bars for an indicator's window.
type InsufficientDataError struct {
	Indicator string
	Required  int
	Actual    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data, need at least %d bars, got %d", e.Indicator, e.Required, e.Actual)
}

// MissingFieldError reports an undefined OHLC value in an input bar.
type MissingFieldError struct {
	Field string
	Index int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("bar %d has undefined %s", e.Index, e.Field)
}

// ExecutionError wraps an unexpected failure during computation,
// including recovered panics.
type ExecutionError struct {
	Indicator string
	Reason    string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s execution failed: %s", e.Indicator, e.Reason)
}
