package fs

import (
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/fixpi/internal/domain"
)

// RecordReader reads whole records from a byte stream. Pipes may hand back
// a record in several pieces, so reads are accumulated until the buffer is
// full or the stream ends.
type RecordReader struct {
	r    io.Reader
	name string
}

// NewRecordReader wraps r. name is used in error messages.
func NewRecordReader(r io.Reader, name string) *RecordReader {
	return &RecordReader{r: r, name: name}
}

// ReadRecord implements ports.RecordReader.
func (rr *RecordReader) ReadRecord(buf []byte) error {
	n := 0
	for n < len(buf) {
		m, err := rr.r.Read(buf[n:])
		n += m
		if err == nil {
			continue
		}
		if isInterrupted(err) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return io.EOF
			}
			if n == len(buf) {
				return nil
			}
			return fmt.Errorf("%w: expected %d bytes but read %d from %q", domain.ErrShortRecord, len(buf), n, rr.name)
		}
		return fmt.Errorf("%w: read on %q: %w", domain.ErrRead, rr.name, err)
	}
	return nil
}
