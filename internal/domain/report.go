package domain

// SecondaryStatus describes what happened to the optional data-only destination.
type SecondaryStatus int

const (
	// SecondaryNone means no secondary destination was requested.
	SecondaryNone SecondaryStatus = iota
	// SecondaryActive means every data prefix was written.
	SecondaryActive
	// SecondaryUnavailable means the destination could not be opened.
	SecondaryUnavailable
	// SecondaryDisabled means a write came up short and no further writes were attempted.
	SecondaryDisabled
)

// String returns a human-readable representation of the status.
func (s SecondaryStatus) String() string {
	switch s {
	case SecondaryNone:
		return "none"
	case SecondaryActive:
		return "active"
	case SecondaryUnavailable:
		return "unavailable"
	case SecondaryDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Report is the result of one pass over the source stream.
type Report struct {
	Counters  Counters
	Outcome   Outcome
	Err       error
	Secondary SecondaryStatus

	// Digest is the hex BLAKE3 sum of the data-only stream, empty unless requested.
	Digest string
}
