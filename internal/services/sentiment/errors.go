package sentiment

import "fmt"

// Stage identifies which step of synthesis failed.
type Stage string

const (
	StageNews       Stage = "news"
	StageGeneration Stage = "generation"
)

// StageError labels a synthesis failure with its stage so callers can tell
// "no news" apart from "generation failed".
type StageError struct {
	Stage  Stage
	Ticker string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("sentiment %s stage failed for %s: %v", e.Stage, e.Ticker, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Label is the user-facing description of the failed stage.
func (e *StageError) Label() string {
	switch e.Stage {
	case StageNews:
		return "News unavailable"
	case StageGeneration:
		return "Summary generation failed"
	default:
		return "Sentiment unavailable"
	}
}
