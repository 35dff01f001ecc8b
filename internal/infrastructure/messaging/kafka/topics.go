package kafka

import (
	"context"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/pkg/errors"
)

const (
	TopicDealsExtracted  = "deallens.deals.extracted"
	TopicDealsDeadLetter = "deallens.deals.dlq"
)

// Header keys.
const (
	HeaderEventType     = "event_type"
	HeaderSource        = "source"
	HeaderRunID         = "run_id"
	HeaderSchemaVersion = "schema_version"
	HeaderOriginalTopic = "original_topic"
	HeaderError         = "error_message"

	EventTypeDealExtracted = "deal.extracted"
	SchemaVersion          = "v1"
)

// DealEventMessage encodes e for topic. The run id is the partition key so
// records of one run stay ordered.
func DealEventMessage(topic string, e deal.Event) (*ProducerMessage, error) {
	if e.RunID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "deal event without run_id")
	}
	val, err := e.Marshal()
	if err != nil {
		return nil, err
	}
	return &ProducerMessage{
		Topic: topic,
		Key:   []byte(e.RunID),
		Value: val,
		Headers: map[string]string{
			HeaderEventType:     EventTypeDealExtracted,
			HeaderSource:        e.Source,
			HeaderRunID:         e.RunID,
			HeaderSchemaVersion: SchemaVersion,
		},
		Timestamp: e.ExtractedAt,
	}, nil
}

// DecodeDealEvent decodes a consumed deal event.
func DecodeDealEvent(msg *Message) (deal.Event, error) {
	if msg == nil || len(msg.Value) == 0 {
		return deal.Event{}, errors.New(errors.ErrCodeValidation, "empty message value")
	}
	if v, ok := msg.Headers[HeaderSchemaVersion]; ok && v != SchemaVersion {
		return deal.Event{}, errors.Newf(errors.ErrCodeValidation, "unsupported schema version %q", v)
	}
	return deal.UnmarshalEvent(msg.Value)
}

// ConnInterface abstracts kafka.Conn for testing.
type ConnInterface interface {
	CreateTopics(topics ...kafka.TopicConfig) error
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	Close() error
}

// TopicManager creates the deal topics on startup.
type TopicManager struct {
	conn   ConnInterface
	logger logging.Logger
}

// NewTopicManager dials the first broker.
func NewTopicManager(brokers []string, logger logging.Logger) (*TopicManager, error) {
	if len(brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "brokers required")
	}
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMessageQueue, "failed to dial kafka")
	}
	return NewTopicManagerWithConn(conn, logger), nil
}

// NewTopicManagerWithConn wraps an existing connection.
func NewTopicManagerWithConn(conn ConnInterface, logger logging.Logger) *TopicManager {
	return &TopicManager{conn: conn, logger: logger}
}

// CreateTopic creates cfg unless it already exists.
func (m *TopicManager) CreateTopic(ctx context.Context, cfg TopicConfig) error {
	if cfg.Name == "" {
		return errors.New(errors.ErrCodeValidation, "topic name required")
	}
	if cfg.NumPartitions <= 0 {
		return errors.New(errors.ErrCodeValidation, "NumPartitions must be > 0")
	}
	if cfg.ReplicationFactor <= 0 {
		return errors.New(errors.ErrCodeValidation, "ReplicationFactor must be > 0")
	}

	kCfg := kafka.TopicConfig{
		Topic:             cfg.Name,
		NumPartitions:     cfg.NumPartitions,
		ReplicationFactor: cfg.ReplicationFactor,
	}
	if cfg.RetentionMs > 0 {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries, kafka.ConfigEntry{ConfigName: "retention.ms", ConfigValue: strconv.FormatInt(cfg.RetentionMs, 10)})
	}
	if cfg.CleanupPolicy != "" {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries, kafka.ConfigEntry{ConfigName: "cleanup.policy", ConfigValue: cfg.CleanupPolicy})
	}
	for k, v := range cfg.Configs {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries, kafka.ConfigEntry{ConfigName: k, ConfigValue: v})
	}

	if err := m.conn.CreateTopics(kCfg); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		if exists, _ := m.TopicExists(ctx, cfg.Name); exists {
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeMessageQueue, "create topic "+cfg.Name)
	}
	m.logger.Info("Topic created", logging.String("topic", cfg.Name))
	return nil
}

// TopicExists reports whether name has partitions.
func (m *TopicManager) TopicExists(_ context.Context, name string) (bool, error) {
	partitions, err := m.conn.ReadPartitions(name)
	if err != nil {
		return false, nil
	}
	return len(partitions) > 0, nil
}

// EnsureTopics creates every topic in order and stops at the first error.
func (m *TopicManager) EnsureTopics(ctx context.Context, topics []TopicConfig) error {
	for _, t := range topics {
		if err := m.CreateTopic(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the connection.
func (m *TopicManager) Close() error {
	return m.conn.Close()
}

// DealTopics returns the topic set for the given names. An empty dead letter
// name is skipped.
func DealTopics(dealsTopic, deadLetter string) []TopicConfig {
	const day = 24 * 3600 * 1000
	topics := []TopicConfig{
		{Name: dealsTopic, NumPartitions: 6, ReplicationFactor: 1, RetentionMs: 7 * day},
	}
	if deadLetter != "" {
		topics = append(topics, TopicConfig{Name: deadLetter, NumPartitions: 1, ReplicationFactor: 1, RetentionMs: 30 * day})
	}
	return topics
}

//Personal.AI order the ending
