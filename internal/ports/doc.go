// Package ports defines the interfaces that connect the record pipeline
// to its streams and to logging.
//
//   - [RecordReader]: yields whole records from the source stream
//   - [Sink]: accepts bytes for a destination stream
//   - [Logger]: structured logging abstraction
//
// The pipeline in internal/app depends only on these interfaces; the
// file-backed implementations live in internal/adapters/fs.
package ports
