// Package ingest turns consumed deal events into deal_outcomes rows.
package ingest

import (
	"context"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
)

// Consumed-event outcomes, used as the metric label.
const (
	ResultInserted = "inserted"
	ResultInvalid  = "invalid"
	ResultFailed   = "failed"
)

// DealEventHandler inserts one outcome per deal event.
type DealEventHandler struct {
	repo    deal.OutcomeRepository
	orgID   string
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewDealEventHandler returns a handler writing rows for organizationID.
// metrics may be nil.
func NewDealEventHandler(repo deal.OutcomeRepository, organizationID string, metrics *prometheus.AppMetrics, logger logging.Logger) *DealEventHandler {
	return &DealEventHandler{repo: repo, orgID: organizationID, metrics: metrics, logger: logger}
}

// Handle is a kafka.MessageHandler. Undecodable events and failed inserts are
// returned so the consumer retries them and finally dead-letters them.
func (h *DealEventHandler) Handle(ctx context.Context, msg *kafka.Message) error {
	ev, err := kafka.DecodeDealEvent(msg)
	if err != nil {
		h.count(ResultInvalid)
		h.logger.Warn("Undecodable deal event, returning it for retry and dead-lettering",
			logging.Err(err),
			logging.String("topic", msg.Topic),
			logging.Int64("offset", msg.Offset))
		return err
	}

	id, err := h.repo.Insert(ctx, deal.NewOutcome(h.orgID, &ev.Record))
	if err != nil {
		h.count(ResultFailed)
		h.logger.Error("Failed to insert deal outcome",
			logging.Err(err),
			logging.String("run_id", ev.RunID),
			logging.Int("page", ev.Record.Page))
		return err
	}

	h.count(ResultInserted)
	h.logger.Info("Inserted deal outcome",
		logging.Int64("id", id),
		logging.String("run_id", ev.RunID),
		logging.String("source", ev.Source),
		logging.String("sector", ev.Record.Sector))
	return nil
}

func (h *DealEventHandler) count(result string) {
	if h.metrics != nil {
		h.metrics.DealEventsConsumedTotal.WithLabelValues(result).Inc()
	}
}

//Personal.AI order the ending
