package resolver

import (
	"errors"
	"fmt"
)

// ErrExhaustedFallback is matched by every ExhaustedError.
var ErrExhaustedFallback = errors.New("company info fallback exhausted")

// ExhaustedError reports that no provider and no generated text could produce
// company information. Last is the final underlying cause.
type ExhaustedError struct {
	Ticker string
	Last   error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s for %s", ErrExhaustedFallback, e.Ticker)
	}
	return fmt.Sprintf("%s for %s: %v", ErrExhaustedFallback, e.Ticker, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhaustedFallback
}
