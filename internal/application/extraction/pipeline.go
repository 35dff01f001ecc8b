package extraction

import (
	"context"
	"path/filepath"
	"time"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
	extractor "github.com/turtacn/DealLens/internal/intelligence/deal_extractor"
)

// RunRequest names the input notes and the JSON output file.
type RunRequest struct {
	SourcePath string
	OutputPath string
}

// RunSummary reports a finished run.
type RunSummary struct {
	RunID          string          `json:"run_id"`
	Source         string          `json:"source"`
	OutputPath     string          `json:"output_path"`
	Characters     int             `json:"characters"`
	SectionCount   int             `json:"section_count"`
	SkippedShort   int             `json:"skipped_short"`
	SkippedNoFacts int             `json:"skipped_no_facts"`
	Records        []deal.Record   `json:"records"`
	Forwards       []ForwardResult `json:"forwards,omitempty"`
	Duration       time.Duration   `json:"duration"`
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithForwarders appends best-effort sinks, run in order after the file is
// saved.
func WithForwarders(fs ...Forwarder) PipelineOption {
	return func(p *Pipeline) { p.forwarders = append(p.forwarders, fs...) }
}

// WithMetrics records extraction metrics on m.
func WithMetrics(m *prometheus.AppMetrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// WithRunID overrides run id generation.
func WithRunID(gen func() string) PipelineOption {
	return func(p *Pipeline) { p.newRunID = gen }
}

// Pipeline wires source loading, extraction, the JSON file and forwarders.
type Pipeline struct {
	extractor  extractor.Extractor
	forwarders []Forwarder
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
	now        func() time.Time
	newRunID   func() string
}

// NewPipeline returns a Pipeline around ex. A nil ex uses the default
// extractor.
func NewPipeline(ex extractor.Extractor, logger logging.Logger, opts ...PipelineOption) *Pipeline {
	if ex == nil {
		ex = extractor.NewDefault()
	}
	p := &Pipeline{
		extractor: ex,
		logger:    logger,
		now:       time.Now,
		newRunID:  deal.NewRunID,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run loads, extracts and saves. Source and output failures abort the run;
// forwarder failures are counted in the summary only.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (*RunSummary, error) {
	started := p.now()

	text, err := LoadSource(req.SourcePath)
	if err != nil {
		return nil, err
	}

	res, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	doc, err := MarshalRecords(res.Records)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(req.OutputPath, doc); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:          p.newRunID(),
		Source:         filepath.Base(req.SourcePath),
		OutputPath:     req.OutputPath,
		Characters:     res.TextLength,
		SectionCount:   res.SectionCount,
		SkippedShort:   res.SkippedShort,
		SkippedNoFacts: res.SkippedNoFacts,
		Records:        res.Records,
	}
	p.record("file", len(res.Records), 0)

	run := &Run{
		ID:        summary.RunID,
		Source:    summary.Source,
		StartedAt: started,
		Records:   res.Records,
		Document:  doc,
	}
	if len(run.Records) > 0 {
		for _, f := range p.forwarders {
			fr := f.Forward(ctx, run)
			summary.Forwards = append(summary.Forwards, fr)
			p.record(fr.Sink, fr.Written, fr.Failed)
		}
	}

	summary.Duration = p.now().Sub(started)
	if p.metrics != nil {
		for i := range res.Records {
			p.metrics.RecordDealExtracted(res.Records[i].Sector)
		}
		p.metrics.ExtractionDuration.WithLabelValues().Observe(summary.Duration.Seconds())
	}

	p.logger.Info("Extraction run complete",
		logging.String("run_id", summary.RunID),
		logging.String("source", summary.Source),
		logging.Int("characters", summary.Characters),
		logging.Int("deals", len(summary.Records)),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

func (p *Pipeline) record(sink string, written, failed int) {
	if p.metrics != nil {
		p.metrics.RecordSink(sink, written, failed)
	}
	if failed > 0 {
		p.logger.Warn("Sink rejected records",
			logging.String("sink", sink),
			logging.Int("written", written),
			logging.Int("failed", failed))
	}
}

//Personal.AI order the ending
