package ports

import "io"

// Sink is a destination stream. *os.File, pipes and in-memory buffers all
// satisfy it; a write that transfers fewer bytes than requested is a failure.
type Sink interface {
	io.Writer
}
