// Package log provides the logging abstraction used by fixpi components.
//
// Library code never writes to stdout: either destination may be
// /dev/stdout, so every message goes through a Logger that the caller
// points at stderr (or discards).
//
//	logger := log.NewZerologAdapter()   // console output on stderr
//	logger := log.NewNoopLogger()       // tests
package log
