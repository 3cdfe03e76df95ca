package fixpi

import (
	"github.com/bft-labs/fixpi/internal/ports"
	"github.com/bft-labs/fixpi/pkg/log"
)

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	logger ports.Logger
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets the logger used for the banner, progress and summary.
// If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
