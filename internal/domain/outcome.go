package domain

import "errors"

// Outcome is the terminal status of a run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUsageError
	OutcomeInvalidConfig
	OutcomeOpenFailed
	OutcomeFramingError
	OutcomeReadFailed
	OutcomeWriteFailed
	OutcomeCanceled
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeUsageError:
		return "UsageError"
	case OutcomeInvalidConfig:
		return "InvalidConfig"
	case OutcomeOpenFailed:
		return "OpenFailed"
	case OutcomeFramingError:
		return "FramingError"
	case OutcomeReadFailed:
		return "ReadFailed"
	case OutcomeWriteFailed:
		return "WriteFailed"
	case OutcomeCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// OK reports whether the outcome maps to exit code 0.
func (o Outcome) OK() bool {
	return o == OutcomeSuccess
}

// Classify maps an error chain to an Outcome. A nil error is a success.
// Unrecognised errors are treated as read failures.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrUsage):
		return OutcomeUsageError
	case errors.Is(err, ErrInvalidConfig):
		return OutcomeInvalidConfig
	case errors.Is(err, ErrOpen):
		return OutcomeOpenFailed
	case errors.Is(err, ErrShortRecord):
		return OutcomeFramingError
	case errors.Is(err, ErrWrite):
		return OutcomeWriteFailed
	case errors.Is(err, ErrCanceled):
		return OutcomeCanceled
	default:
		return OutcomeReadFailed
	}
}
