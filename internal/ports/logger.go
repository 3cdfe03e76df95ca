package ports

import "github.com/bft-labs/fixpi/pkg/log"

// Logger is the structured logger used inside the module.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for internal callers.
var (
	String = log.String
	Int    = log.Int
	Uint64 = log.Uint64
	Err    = log.Err
)
