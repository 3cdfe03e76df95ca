package app

import (
	"fmt"
	"io"

	"github.com/bft-labs/fixpi/internal/ports"
)

// SinkPolicy decides what a failed write to a destination means for the run.
type SinkPolicy int

const (
	// PolicyFatal stops the pass on the first failed write.
	PolicyFatal SinkPolicy = iota
	// PolicyOptional disables the destination and lets the pass continue.
	PolicyOptional
)

// Span selects which part of a record a destination receives.
type Span int

const (
	// SpanRecord is the whole record after the trailer was neutralized.
	SpanRecord Span = iota
	// SpanData is the data-only prefix, taken before the trailer is touched.
	SpanData
)

// Destination is a sink together with the rules for feeding it.
type Destination struct {
	Name   string
	Sink   ports.Sink
	Span   Span
	Policy SinkPolicy

	disabled bool
}

// Disabled reports whether an optional destination was switched off after a failed write.
func (d *Destination) Disabled() bool {
	return d.disabled
}

// write sends p in a single call. Anything short of len(p) bytes is an error.
func (d *Destination) write(p []byte) error {
	n, err := d.Sink.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("attempted to write %d bytes to %q but only wrote %d: %w", len(p), d.Name, n, err)
	}
	return nil
}
