package app

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/fixpi/internal/adapters/fs"
	"github.com/bft-labs/fixpi/internal/domain"
	"github.com/bft-labs/fixpi/pkg/log"
)

// limitedWriter accepts limit bytes and then fails every write.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
	err   error
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if room >= len(p) {
		return w.buf.Write(p)
	}
	if room < 0 {
		room = 0
	}
	w.buf.Write(p[:room])
	return room, w.err
}

// shortWriter claims success but drops the last byte.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

// recordingLogger captures messages for assertions.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, level+": "+msg)
}

func (r *recordingLogger) Debug(msg string, _ ...log.Field) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...log.Field)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...log.Field)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...log.Field) { r.record("error", msg) }

func (r *recordingLogger) count(entry string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m == entry {
			n++
		}
	}
	return n
}

func makeRecords(t *testing.T, g domain.Geometry, n int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(n)))
	b := make([]byte, n*g.RecordSize())
	rng.Read(b)
	return b
}

func newTestPipeline(t *testing.T, g domain.Geometry, src []byte, opts ...PipelineOption) *Pipeline {
	t.Helper()
	reader := fs.NewRecordReader(bytes.NewReader(src), "src")
	p, err := NewPipeline(PipelineConfig{Geometry: g}, reader, log.NewNoopLogger(), opts...)
	require.NoError(t, err)
	return p
}

func TestPipeline_ThreeRecords(t *testing.T) {
	g := domain.DefaultGeometry()
	src := makeRecords(t, g, 3)
	require.Len(t, src, 12312)

	var primary bytes.Buffer
	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
	)

	report := p.Run(context.Background())

	require.NoError(t, report.Err)
	assert.Equal(t, domain.OutcomeSuccess, report.Outcome)
	assert.Equal(t, domain.Counters{Sectors: 3, BytesDataOnly: 12288, BytesWithTrailer: 12312}, report.Counters)
	assert.Equal(t, domain.SecondaryNone, report.Secondary)

	out := primary.Bytes()
	require.Len(t, out, len(src))
	sentinel := bytes.Repeat([]byte{domain.Sentinel}, domain.TrailerSize)
	for _, off := range []int{4096, 8200, 12304} {
		assert.Equal(t, sentinel, out[off:off+domain.TrailerSize], "trailer at %d", off)
	}
	for k := 0; k < 3; k++ {
		start := k * g.RecordSize()
		assert.Equal(t, src[start:start+g.DataSize], out[start:start+g.DataSize], "data of record %d", k)
	}
}

func TestPipeline_SecondaryReceivesDataOnly(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	src := makeRecords(t, g, 17)

	var primary, secondary bytes.Buffer
	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
		WithDestination(&Destination{Name: "data", Sink: &secondary, Span: SpanData, Policy: PolicyOptional}),
	)

	report := p.Run(context.Background())
	require.NoError(t, report.Err)
	assert.Equal(t, domain.SecondaryActive, report.Secondary)

	var want []byte
	for k := 0; k < 17; k++ {
		start := k * g.RecordSize()
		want = append(want, src[start:start+g.DataSize]...)
	}
	assert.Equal(t, want, secondary.Bytes())
	assert.Equal(t, report.Counters.Sectors*uint64(g.DataSize), uint64(secondary.Len()))
}

func TestPipeline_SecondaryFailureIsNotFatal(t *testing.T) {
	tests := []struct {
		name string
		sink io.Writer
	}{
		{"error after two sectors", &limitedWriter{limit: 2*512 + 100, err: errors.New("broken pipe")}},
		{"silent short write", shortWriter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.Geometry{DataSize: 512}
			src := makeRecords(t, g, 5)
			logger := &recordingLogger{}

			var primary bytes.Buffer
			reader := fs.NewRecordReader(bytes.NewReader(src), "src")
			p, err := NewPipeline(PipelineConfig{Geometry: g}, reader, logger,
				WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
				WithDestination(&Destination{Name: "data", Sink: tt.sink, Span: SpanData, Policy: PolicyOptional}),
			)
			require.NoError(t, err)

			report := p.Run(context.Background())

			require.NoError(t, report.Err)
			assert.Equal(t, domain.OutcomeSuccess, report.Outcome)
			assert.Equal(t, domain.SecondaryDisabled, report.Secondary)
			assert.Equal(t, uint64(5), report.Counters.Sectors)
			assert.Equal(t, len(src), primary.Len())
			assert.Equal(t, 1, logger.count("warn: disabling destination"))
		})
	}
}

func TestPipeline_SecondaryNotWrittenAfterDisable(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	src := makeRecords(t, g, 4)
	secondary := &limitedWriter{limit: 512 + 10, err: errors.New("no space left on device")}

	var primary bytes.Buffer
	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
		WithDestination(&Destination{Name: "data", Sink: secondary, Span: SpanData, Policy: PolicyOptional}),
	)

	report := p.Run(context.Background())
	require.NoError(t, report.Err)
	// One full prefix and the partial second write; nothing after.
	assert.Equal(t, 512+10, secondary.buf.Len())
}

func TestPipeline_PrimaryFailureIsFatal(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	src := makeRecords(t, g, 5)
	primary := &limitedWriter{limit: 2 * g.RecordSize(), err: errors.New("no space left on device")}

	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: primary, Span: SpanRecord, Policy: PolicyFatal}),
	)

	report := p.Run(context.Background())

	require.Error(t, report.Err)
	assert.ErrorIs(t, report.Err, domain.ErrWrite)
	assert.Equal(t, domain.OutcomeWriteFailed, report.Outcome)
	assert.Equal(t, uint64(2), report.Counters.Sectors)
	assert.Contains(t, report.Err.Error(), `"dst"`)
}

func TestPipeline_PrimaryShortWriteIsFatal(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	p := newTestPipeline(t, g, makeRecords(t, g, 2),
		WithDestination(&Destination{Name: "dst", Sink: shortWriter{}, Span: SpanRecord, Policy: PolicyFatal}),
	)

	report := p.Run(context.Background())

	assert.ErrorIs(t, report.Err, io.ErrShortWrite)
	assert.Equal(t, domain.OutcomeWriteFailed, report.Outcome)
	assert.Zero(t, report.Counters.Sectors)
}

func TestPipeline_ShortTail(t *testing.T) {
	g := domain.DefaultGeometry()
	whole := makeRecords(t, g, 2)
	src := append(append([]byte(nil), whole...), make([]byte, g.RecordSize()-1)...)

	var primary bytes.Buffer
	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
	)

	report := p.Run(context.Background())

	assert.ErrorIs(t, report.Err, domain.ErrShortRecord)
	assert.Equal(t, domain.OutcomeFramingError, report.Outcome)
	assert.Equal(t, uint64(2), report.Counters.Sectors)
	assert.Equal(t, len(whole), primary.Len())
}

func TestPipeline_EmptySource(t *testing.T) {
	var primary bytes.Buffer
	p := newTestPipeline(t, domain.DefaultGeometry(), nil,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
	)

	report := p.Run(context.Background())

	require.NoError(t, report.Err)
	assert.Equal(t, domain.Counters{}, report.Counters)
	assert.Zero(t, primary.Len())
}

func TestPipeline_Idempotent(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	src := makeRecords(t, g, 8)

	run := func(in []byte) []byte {
		var out bytes.Buffer
		p := newTestPipeline(t, g, in,
			WithDestination(&Destination{Name: "dst", Sink: &out, Span: SpanRecord, Policy: PolicyFatal}),
		)
		report := p.Run(context.Background())
		require.NoError(t, report.Err)
		return out.Bytes()
	}

	first := run(src)
	second := run(first)
	assert.Equal(t, first, second)
}

func TestPipeline_Digest(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	src := makeRecords(t, g, 6)

	var primary, secondary bytes.Buffer
	p := newTestPipeline(t, g, src,
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
		WithDestination(&Destination{Name: "data", Sink: &secondary, Span: SpanData, Policy: PolicyOptional}),
		WithDigest(NewDigest()),
	)

	report := p.Run(context.Background())
	require.NoError(t, report.Err)

	h := NewDigest()
	h.Write(secondary.Bytes())
	assert.Equal(t, hex.EncodeToString(h.Sum(nil)), report.Digest)
	assert.Len(t, report.Digest, 64)
}

func TestPipeline_Canceled(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	var primary bytes.Buffer
	p := newTestPipeline(t, g, makeRecords(t, g, 3),
		WithDestination(&Destination{Name: "dst", Sink: &primary, Span: SpanRecord, Policy: PolicyFatal}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := p.Run(ctx)

	assert.ErrorIs(t, report.Err, context.Canceled)
	assert.Equal(t, domain.OutcomeCanceled, report.Outcome)
	assert.Zero(t, primary.Len())
}

func TestPipeline_Progress(t *testing.T) {
	g := domain.Geometry{DataSize: 512}
	logger := &recordingLogger{}
	reader := fs.NewRecordReader(bytes.NewReader(makeRecords(t, g, 10)), "src")

	p, err := NewPipeline(PipelineConfig{Geometry: g, ProgressEvery: 4}, reader, logger,
		WithDestination(&Destination{Name: "dst", Sink: io.Discard, Span: SpanRecord, Policy: PolicyFatal}),
	)
	require.NoError(t, err)

	report := p.Run(context.Background())
	require.NoError(t, report.Err)
	assert.Equal(t, 2, logger.count("info: progress"))
	assert.Equal(t, report.Counters, p.Counters())
}

func TestNewPipeline_InvalidGeometry(t *testing.T) {
	_, err := NewPipeline(PipelineConfig{Geometry: domain.Geometry{DataSize: 1000}}, nil, log.NewNoopLogger())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
