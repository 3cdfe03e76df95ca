package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/bft-labs/fixpi/internal/domain"
	"github.com/bft-labs/fixpi/internal/ports"
)

// PipelineConfig holds the parameters of one pass.
type PipelineConfig struct {
	Geometry domain.Geometry

	// ProgressEvery is the number of sectors between progress lines. Zero disables them.
	ProgressEvery uint64
}

// Pipeline copies records from a reader to its destinations, neutralizing
// the T10-PI trailer of every record on the way.
type Pipeline struct {
	cfg          PipelineConfig
	reader       ports.RecordReader
	destinations []*Destination
	digest       hash.Hash
	logger       ports.Logger
	progress     progressReporter

	buf      []byte
	counters domain.Counters
}

// PipelineOption configures optional behavior of a Pipeline.
type PipelineOption func(*Pipeline)

// WithDestination adds a destination. Destinations with the same span are
// written in the order they were added.
func WithDestination(d *Destination) PipelineOption {
	return func(p *Pipeline) {
		p.destinations = append(p.destinations, d)
	}
}

// WithDigest feeds the data-only prefix of every processed record into h.
func WithDigest(h hash.Hash) PipelineOption {
	return func(p *Pipeline) {
		p.digest = h
	}
}

// NewPipeline creates a pipeline reading from reader.
func NewPipeline(cfg PipelineConfig, reader ports.RecordReader, logger ports.Logger, opts ...PipelineOption) (*Pipeline, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		reader:   reader,
		logger:   logger,
		progress: progressReporter{every: cfg.ProgressEvery, logger: logger},
		buf:      make([]byte, cfg.Geometry.RecordSize()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Counters returns the counters accumulated so far.
func (p *Pipeline) Counters() domain.Counters {
	return p.counters
}

// Run processes the source until it ends or a fatal error occurs.
// ctx is only checked between records.
func (p *Pipeline) Run(ctx context.Context) domain.Report {
	err := p.run(ctx)

	report := domain.Report{
		Counters:  p.counters,
		Outcome:   domain.Classify(err),
		Err:       err,
		Secondary: domain.SecondaryNone,
	}
	for _, d := range p.destinations {
		if d.Policy != PolicyOptional {
			continue
		}
		report.Secondary = domain.SecondaryActive
		if d.Disabled() {
			report.Secondary = domain.SecondaryDisabled
		}
	}
	if p.digest != nil {
		report.Digest = hex.EncodeToString(p.digest.Sum(nil))
	}
	return report
}

func (p *Pipeline) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCanceled, err)
		}

		err := p.reader.ReadRecord(p.buf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := p.step(); err != nil {
			return err
		}

		p.progress.observe(p.counters)
	}
}

// step handles the record currently in buf.
func (p *Pipeline) step() error {
	g := p.cfg.Geometry
	data := p.buf[:g.DataSize]

	if err := p.writeSpan(SpanData, data); err != nil {
		return err
	}

	g.Neutralize(p.buf)

	if err := p.writeSpan(SpanRecord, p.buf); err != nil {
		return err
	}

	if p.digest != nil {
		p.digest.Write(data)
	}
	p.counters.Add(g)
	return nil
}

func (p *Pipeline) writeSpan(span Span, b []byte) error {
	for _, d := range p.destinations {
		if d.Span != span || d.disabled {
			continue
		}
		err := d.write(b)
		if err == nil {
			continue
		}
		if d.Policy == PolicyFatal {
			return fmt.Errorf("%w: %w", domain.ErrWrite, err)
		}
		d.disabled = true
		p.logger.Warn("disabling destination",
			ports.String("destination", d.Name),
			ports.Uint64("sector", p.counters.Sectors),
			ports.Err(err),
		)
	}
	return nil
}
