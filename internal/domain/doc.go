// Package domain contains the core entities and value objects for fixpi.
//
// This package has no dependencies on infrastructure concerns (files,
// logging, configuration) and holds only the record layout rules.
//
// # Entities
//
//   - [Geometry]: sector layout (data size plus the 8 byte T10-PI trailer)
//   - [Counters]: progress counters accumulated over one pass
//   - [Outcome]: terminal status of a run
//   - [Report]: final counters, outcome and error handed back to the caller
package domain
