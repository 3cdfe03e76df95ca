// Package fixpi copies a stream of T10-PI protected sectors while
// disabling the protection information of every sector.
//
// Each record in the source is DataSize bytes of user data followed by an
// 8 byte protection interval (guard tag, application tag, reference tag).
// The interval is overwritten with 0xff, which tells the target device to
// skip integrity checking for that sector, and the record is written to the
// destination. Optionally the bare user data is also written to a second
// destination, typically a pipe into a checksum program.
//
// # Usage
//
//	cfg := fixpi.DefaultConfig()
//	cfg.Source = "/dev/stdin"
//	cfg.Destination = "/dev/stdout"
//	report := fixpi.Run(context.Background(), cfg, fixpi.WithLogger(logger))
//	if !report.Outcome.OK() {
//	    os.Exit(1)
//	}
//
// # Failure model
//
// A short trailing record, a read error or a failed write to Destination
// stops the pass. A failed write to DataDestination only disables that
// destination. Nothing already written is rolled back.
//
// The T10-PI type is never inferred. Overwriting only the application tag
// is enough for Type 2; the whole interval is overwritten for all types.
package fixpi
