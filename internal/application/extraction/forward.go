package extraction

import (
	"context"
	"time"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/storage/minio"
)

// Run is one extraction run as seen by the forwarders.
type Run struct {
	ID        string
	Source    string
	StartedAt time.Time
	Records   []deal.Record
	Document  []byte // the JSON written to the output file
}

// ForwardResult counts what a forwarder accepted.
type ForwardResult struct {
	Sink    string `json:"sink"`
	Written int    `json:"written"`
	Failed  int    `json:"failed"`
}

// Forwarder is a best-effort side channel. It reports failures in its result
// and never aborts the run.
type Forwarder interface {
	Name() string
	Forward(ctx context.Context, run *Run) ForwardResult
}

// StoreForwarder inserts one deal_outcomes row per record.
type StoreForwarder struct {
	repo   deal.OutcomeRepository
	orgID  string
	logger logging.Logger
}

func NewStoreForwarder(repo deal.OutcomeRepository, organizationID string, logger logging.Logger) *StoreForwarder {
	return &StoreForwarder{repo: repo, orgID: organizationID, logger: logger}
}

func (f *StoreForwarder) Name() string { return "postgres" }

func (f *StoreForwarder) Forward(ctx context.Context, run *Run) ForwardResult {
	res := ForwardResult{Sink: f.Name()}
	for i := range run.Records {
		r := &run.Records[i]
		id, err := f.repo.Insert(ctx, deal.NewOutcome(f.orgID, r))
		if err != nil {
			res.Failed++
			f.logger.Error("Failed to insert deal outcome",
				logging.Err(err),
				logging.Int("page", r.Page),
				logging.String("company", r.DisplayName("Unknown")))
			continue
		}
		res.Written++
		f.logger.Debug("Inserted deal outcome", logging.Int64("id", id), logging.String("company", r.DisplayName("Unknown")))
	}
	return res
}

// EventForwarder publishes one DealEvent per record, keyed by run id.
type EventForwarder struct {
	publisher kafka.Publisher
	topic     string
	logger    logging.Logger
}

func NewEventForwarder(publisher kafka.Publisher, topic string, logger logging.Logger) *EventForwarder {
	if topic == "" {
		topic = kafka.TopicDealsExtracted
	}
	return &EventForwarder{publisher: publisher, topic: topic, logger: logger}
}

func (f *EventForwarder) Name() string { return "kafka" }

func (f *EventForwarder) Forward(ctx context.Context, run *Run) ForwardResult {
	res := ForwardResult{Sink: f.Name()}
	for i := range run.Records {
		msg, err := kafka.DealEventMessage(f.topic, deal.NewEvent(run.ID, run.Source, run.StartedAt, run.Records[i]))
		if err == nil {
			err = f.publisher.Publish(ctx, msg)
		}
		if err != nil {
			res.Failed++
			f.logger.Error("Failed to publish deal event",
				logging.Err(err),
				logging.String("run_id", run.ID),
				logging.Int("page", run.Records[i].Page))
			continue
		}
		res.Written++
	}
	return res
}

// ArchiveForwarder uploads the run's JSON document as a single object.
type ArchiveForwarder struct {
	archive minio.Archive
	logger  logging.Logger
}

func NewArchiveForwarder(archive minio.Archive, logger logging.Logger) *ArchiveForwarder {
	return &ArchiveForwarder{archive: archive, logger: logger}
}

func (f *ArchiveForwarder) Name() string { return "minio" }

// Forward counts records, not objects: all of them land or none do.
func (f *ArchiveForwarder) Forward(ctx context.Context, run *Run) ForwardResult {
	res := ForwardResult{Sink: f.Name()}
	if _, err := f.archive.Put(ctx, run.ID, run.StartedAt, run.Document); err != nil {
		res.Failed = len(run.Records)
		f.logger.Error("Failed to archive extraction", logging.Err(err), logging.String("run_id", run.ID))
		return res
	}
	res.Written = len(run.Records)
	return res
}

//Personal.AI order the ending
