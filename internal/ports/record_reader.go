package ports

// RecordReader reads fixed-size records from the source stream.
type RecordReader interface {
	// ReadRecord fills buf completely.
	// Returns io.EOF if the stream ended exactly on a record boundary,
	// domain.ErrShortRecord if it ended inside a record, and a wrapped
	// domain.ErrRead for any other failure. Interrupted reads are retried.
	ReadRecord(buf []byte) error
}
