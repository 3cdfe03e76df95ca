package app

import (
	"github.com/dustin/go-humanize"

	"github.com/bft-labs/fixpi/internal/domain"
	"github.com/bft-labs/fixpi/internal/ports"
)

// DefaultProgressEvery is 8 GB worth of 4096 byte sectors.
const DefaultProgressEvery = 1953125

// progressReporter logs the counters every N sectors.
type progressReporter struct {
	every  uint64
	logger ports.Logger
}

func (p progressReporter) observe(c domain.Counters) {
	if p.every == 0 || c.Sectors%p.every != 0 {
		return
	}
	p.logger.Info("progress", CounterFields(c)...)
}

// CounterFields renders counters as log fields, including the derived GB figure.
func CounterFields(c domain.Counters) []ports.Field {
	return []ports.Field{
		ports.Uint64("sectors", c.Sectors),
		ports.Uint64("data_bytes", c.BytesDataOnly),
		ports.Uint64("gb", c.GB()),
		ports.String("data", humanize.Bytes(c.BytesDataOnly)),
		ports.Uint64("bytes_with_pi", c.BytesWithTrailer),
	}
}
