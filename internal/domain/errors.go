package domain

import "errors"

// Domain errors represent the fatal conditions of a run.
// They are wrapped with context and can be checked with errors.Is.
var (
	// ErrUsage is returned when the wrong number of arguments is given.
	ErrUsage = errors.New("fixpi: usage")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("fixpi: invalid configuration")

	// ErrOpen is returned when the source or primary destination cannot be opened.
	ErrOpen = errors.New("fixpi: open failed")

	// ErrShortRecord is returned when the source ends in the middle of a record.
	// The stream length is not a multiple of the record size, or the wrong
	// geometry was configured.
	ErrShortRecord = errors.New("fixpi: short record")

	// ErrRead is returned for read failures other than end of stream.
	ErrRead = errors.New("fixpi: read failed")

	// ErrWrite is returned when the primary destination rejects a record.
	ErrWrite = errors.New("fixpi: write failed")

	// ErrCanceled is returned when the context is canceled between records.
	ErrCanceled = errors.New("fixpi: canceled")
)
