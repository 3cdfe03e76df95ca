package fixpi

import (
	"context"
	"fmt"
	"os"

	"github.com/bft-labs/fixpi/internal/adapters/fs"
	"github.com/bft-labs/fixpi/internal/app"
	"github.com/bft-labs/fixpi/internal/domain"
	"github.com/bft-labs/fixpi/internal/ports"
)

// Report is the result of a run.
type Report = domain.Report

// Outcome is the terminal status of a run.
type Outcome = domain.Outcome

// Re-exported outcomes and secondary statuses.
const (
	OutcomeSuccess       = domain.OutcomeSuccess
	OutcomeInvalidConfig = domain.OutcomeInvalidConfig
	OutcomeOpenFailed    = domain.OutcomeOpenFailed
	OutcomeFramingError  = domain.OutcomeFramingError
	OutcomeReadFailed    = domain.OutcomeReadFailed
	OutcomeWriteFailed   = domain.OutcomeWriteFailed

	SecondaryNone        = domain.SecondaryNone
	SecondaryActive      = domain.SecondaryActive
	SecondaryUnavailable = domain.SecondaryUnavailable
	SecondaryDisabled    = domain.SecondaryDisabled
)

// Config describes one pass.
type Config struct {
	// Source holds records of DataSize+8 bytes.
	Source string
	// Destination receives every record with its protection interval disabled.
	Destination string
	// DataDestination, if set, receives only the user data of every record.
	DataDestination string

	// DataSize is the logical sector size, 4096 or 512.
	DataSize int
	// ProgressEvery is the number of sectors between progress lines. Zero disables them.
	ProgressEvery uint64
	// Digest requests a BLAKE3 sum of the user data in the report.
	Digest bool
}

// DefaultConfig returns a Config for 4096 byte sectors. Paths must be set.
func DefaultConfig() Config {
	return Config{
		DataSize:      domain.DefaultDataSize,
		ProgressEvery: app.DefaultProgressEvery,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source path is required", domain.ErrInvalidConfig)
	}
	if c.Destination == "" {
		return fmt.Errorf("%w: destination path is required", domain.ErrInvalidConfig)
	}
	return domain.Geometry{DataSize: c.DataSize}.Validate()
}

// Run performs one pass from Source to Destination. The summary is logged
// exactly once after the streams were opened, before any of them is closed.
// Configuration errors are reported without touching the file system.
func Run(ctx context.Context, cfg Config, opts ...Option) Report {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", ports.Err(err))
		return Report{Outcome: domain.Classify(err), Err: err}
	}

	g := domain.Geometry{DataSize: cfg.DataSize}
	logger.Info("copying and overwriting the T10-PI protection interval of every sector",
		ports.String("source", cfg.Source),
		ports.String("destination", cfg.Destination),
		ports.String("data_destination", cfg.DataDestination),
		ports.Int("data_size", g.DataSize),
		ports.Int("pi_size", domain.TrailerSize),
		ports.Int("record_size", g.RecordSize()),
	)

	s, err := openStreams(cfg, logger)
	if err != nil {
		return finish(logger, Report{Outcome: domain.Classify(err), Err: err})
	}
	defer s.close(logger)

	pipeOpts := []app.PipelineOption{
		app.WithDestination(&app.Destination{
			Name:   cfg.Destination,
			Sink:   s.dst,
			Span:   app.SpanRecord,
			Policy: app.PolicyFatal,
		}),
	}
	if s.data != nil {
		pipeOpts = append(pipeOpts, app.WithDestination(&app.Destination{
			Name:   cfg.DataDestination,
			Sink:   s.data,
			Span:   app.SpanData,
			Policy: app.PolicyOptional,
		}))
	}
	if cfg.Digest {
		pipeOpts = append(pipeOpts, app.WithDigest(app.NewDigest()))
	}

	p, err := app.NewPipeline(app.PipelineConfig{Geometry: g, ProgressEvery: cfg.ProgressEvery},
		fs.NewRecordReader(s.src, cfg.Source), logger, pipeOpts...)
	if err != nil {
		return finish(logger, Report{Outcome: domain.Classify(err), Err: err})
	}

	report := p.Run(ctx)
	if s.dataUnavailable {
		report.Secondary = domain.SecondaryUnavailable
	}
	return finish(logger, report)
}

// finish logs the terminal error, the statistics and the verdict.
func finish(logger ports.Logger, report Report) Report {
	if report.Err != nil {
		logger.Error("error", ports.Err(report.Err))
	}

	fields := app.CounterFields(report.Counters)
	fields = append(fields, ports.String("data_destination", report.Secondary.String()))
	if report.Digest != "" {
		fields = append(fields, ports.String("blake3", report.Digest))
	}
	logger.Info("copied", fields...)

	if report.Outcome.OK() {
		logger.Info("success")
	} else {
		logger.Error("failed, see error message above the statistics",
			ports.String("outcome", report.Outcome.String()))
	}
	return report
}

type streams struct {
	src  *os.File
	dst  *os.File
	data *os.File

	dataUnavailable bool
}

// openStreams opens source and destination, which are required, and the
// optional data destination, whose failure is only logged.
func openStreams(cfg Config, logger ports.Logger) (*streams, error) {
	src, err := fs.OpenSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	dst, err := fs.OpenDestination(cfg.Destination)
	if err != nil {
		src.Close()
		return nil, err
	}

	s := &streams{src: src, dst: dst}
	if cfg.DataDestination == "" {
		return s, nil
	}
	data, err := fs.OpenDestination(cfg.DataDestination)
	if err != nil {
		logger.Warn("continuing without data destination", ports.Err(err))
		s.dataUnavailable = true
		return s, nil
	}
	s.data = data
	return s, nil
}

func (s *streams) close(logger ports.Logger) {
	for _, f := range []*os.File{s.src, s.dst, s.data} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			logger.Warn("close failed", ports.String("path", f.Name()), ports.Err(err))
		}
	}
}
