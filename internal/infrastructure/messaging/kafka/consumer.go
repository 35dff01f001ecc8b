package kafka

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/pkg/errors"
)

var (
	ErrAlreadyRunning = errors.New(errors.ErrCodeConflict, "consumer already running")
	ErrConsumerClosed = errors.New(errors.ErrCodeMessageQueue, "consumer closed")
)

// RetryConfig defines handler retry behavior.
type RetryConfig struct {
	MaxRetries      int
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
	DeadLetterTopic string
}

// ConsumerConfig holds configuration for the Consumer.
type ConsumerConfig struct {
	Brokers            []string
	GroupID            string
	Topics             []string
	AutoOffsetReset    string
	AutoCommitInterval time.Duration
	SessionTimeout     time.Duration
	HeartbeatInterval  time.Duration
	MaxWait            time.Duration
	FetchMinBytes      int
	FetchMaxBytes      int
	RetryConfig        RetryConfig
}

// ConsumerConfigFrom maps the application kafka section onto a consumer of
// the deals topic.
func ConsumerConfigFrom(c config.KafkaConfig) ConsumerConfig {
	return ConsumerConfig{
		Brokers: c.Brokers,
		GroupID: c.ConsumerGroup,
		Topics:  []string{c.DealsTopic},
		RetryConfig: RetryConfig{
			MaxRetries:      c.MaxRetries,
			RetryBackoff:    c.RetryBackoff,
			DeadLetterTopic: c.DeadLetter,
		},
	}
}

// ConsumerStats is a point-in-time copy of the consumer counters.
type ConsumerStats struct {
	MessagesConsumed     int64
	MessagesProcessed    int64
	MessagesFailed       int64
	MessagesRetried      int64
	MessagesDeadLettered int64
	Lag                  int64
	LastConsumedAt       time.Time
}

type consumerMetrics struct {
	consumed     atomic.Int64
	processed    atomic.Int64
	failed       atomic.Int64
	retried      atomic.Int64
	deadLettered atomic.Int64
	lag          atomic.Int64
	lastConsumed atomic.Int64 // unix nanos
}

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.ReaderStats
}

// Publisher receives dead-lettered messages.
type Publisher interface {
	Publish(ctx context.Context, msg *ProducerMessage) error
}

// Consumer dispatches fetched messages to per-topic handlers. Offsets are
// committed after a message is handled, dead-lettered or dropped.
type Consumer struct {
	reader ReaderInterface
	config ConsumerConfig
	logger logging.Logger

	handlers map[string]MessageHandler
	mu       sync.RWMutex

	running atomic.Bool
	closed  atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	deadLetter Publisher
	ownsDLQ    bool
	metrics    *consumerMetrics
}

// NewConsumer creates a group reader and, when a dead letter topic is set,
// a producer for it.
func NewConsumer(cfg ConsumerConfig, logger logging.Logger) (*Consumer, error) {
	if err := ValidateConsumerConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.AutoOffsetReset == "" {
		cfg.AutoOffsetReset = "earliest"
	}
	if cfg.SessionTimeout == 0 {
		cfg.SessionTimeout = 30 * time.Second
	}
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = 3 * time.Second
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = 10 * time.Second
	}
	if cfg.FetchMinBytes == 0 {
		cfg.FetchMinBytes = 1
	}
	if cfg.FetchMaxBytes == 0 {
		cfg.FetchMaxBytes = 10 * 1024 * 1024
	}

	readerCfg := kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		GroupID:           cfg.GroupID,
		GroupTopics:       cfg.Topics,
		MinBytes:          cfg.FetchMinBytes,
		MaxBytes:          cfg.FetchMaxBytes,
		MaxWait:           cfg.MaxWait,
		CommitInterval:    cfg.AutoCommitInterval,
		SessionTimeout:    cfg.SessionTimeout,
		HeartbeatInterval: cfg.HeartbeatInterval,
		StartOffset:       kafka.FirstOffset,
		Dialer:            &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true},
	}
	if cfg.AutoOffsetReset == "latest" {
		readerCfg.StartOffset = kafka.LastOffset
	}

	c := NewConsumerWithReader(kafka.NewReader(readerCfg), cfg, logger)

	if cfg.RetryConfig.DeadLetterTopic != "" {
		p, err := NewProducer(ProducerConfig{Brokers: cfg.Brokers}, logger)
		if err != nil {
			return nil, err
		}
		c.deadLetter = p
		c.ownsDLQ = true
	}
	return c, nil
}

// NewConsumerWithReader wraps an existing reader.
func NewConsumerWithReader(r ReaderInterface, cfg ConsumerConfig, logger logging.Logger) *Consumer {
	return &Consumer{
		reader:   r,
		config:   cfg,
		logger:   logger,
		handlers: make(map[string]MessageHandler),
		metrics:  &consumerMetrics{},
	}
}

// SetDeadLetterPublisher replaces the dead letter sink.
func (c *Consumer) SetDeadLetterPublisher(p Publisher) {
	c.deadLetter = p
	c.ownsDLQ = false
}

// Subscribe registers handler for topic.
func (c *Consumer) Subscribe(topic string, handler MessageHandler) error {
	if topic == "" || handler == nil {
		return errors.New(errors.ErrCodeValidation, "topic and handler required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = handler
	c.logger.Info("Subscribed to topic", logging.String("topic", topic))
	return nil
}

// Unsubscribe removes the handler for topic.
func (c *Consumer) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, topic)
}

// Start runs the consume loop in the background until ctx is cancelled or
// Close is called.
func (c *Consumer) Start(ctx context.Context) error {
	if c.closed.Load() {
		return ErrConsumerClosed
	}
	if c.running.Swap(true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.Info("Kafka consumer started", logging.String("group", c.config.GroupID))
	return nil
}

// Wait blocks until the consume loop exits.
func (c *Consumer) Wait() {
	c.wg.Wait()
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("FetchMessage error", logging.Err(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		c.metrics.consumed.Add(1)
		c.metrics.lastConsumed.Store(time.Now().UnixNano())
		if m.HighWaterMark > 0 {
			c.metrics.lag.Store(m.HighWaterMark - m.Offset - 1)
		}

		msg := fromKafkaMessage(m)

		c.mu.RLock()
		handler, ok := c.handlers[m.Topic]
		c.mu.RUnlock()

		if !ok {
			c.logger.Warn("No handler for topic", logging.String("topic", m.Topic))
		} else if c.processMessage(ctx, msg, handler) {
			c.metrics.processed.Add(1)
		} else {
			c.metrics.failed.Add(1)
		}

		if ctx.Err() != nil {
			return
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("CommitMessages failed", logging.Err(err), logging.Int64("offset", m.Offset))
		}
	}
}

// processMessage runs handler with exponential backoff retries. It reports
// whether the handler eventually succeeded; on exhaustion the message is
// forwarded to the dead letter topic when one is configured.
func (c *Consumer) processMessage(ctx context.Context, msg *Message, handler MessageHandler) bool {
	err := handler(ctx, msg)
	if err == nil {
		return true
	}

	maxRetries := c.config.RetryConfig.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	backoff := c.config.RetryConfig.RetryBackoff
	if backoff == 0 {
		backoff = time.Second
	}
	maxBackoff := c.config.RetryConfig.MaxRetryBackoff
	if maxBackoff == 0 {
		maxBackoff = 30 * time.Second
	}

	for i := 0; i < maxRetries; i++ {
		c.metrics.retried.Add(1)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}

		if err = handler(ctx, msg); err == nil {
			return true
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	c.logger.Error("Message processing failed after retries",
		logging.String("topic", msg.Topic),
		logging.Int64("offset", msg.Offset),
		logging.Err(err))

	if c.deadLetter == nil || c.config.RetryConfig.DeadLetterTopic == "" {
		return false
	}

	headers := make(map[string]string, len(msg.Headers)+2)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = msg.Topic
	headers[HeaderError] = err.Error()

	dl := &ProducerMessage{
		Topic:   c.config.RetryConfig.DeadLetterTopic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
	if dlErr := c.deadLetter.Publish(ctx, dl); dlErr != nil {
		c.logger.Error("Failed to send to dead letter topic", logging.Err(dlErr))
		return false
	}
	c.metrics.deadLettered.Add(1)
	return false
}

// Stats returns a snapshot of the counters.
func (c *Consumer) Stats() ConsumerStats {
	s := ConsumerStats{
		MessagesConsumed:     c.metrics.consumed.Load(),
		MessagesProcessed:    c.metrics.processed.Load(),
		MessagesFailed:       c.metrics.failed.Load(),
		MessagesRetried:      c.metrics.retried.Load(),
		MessagesDeadLettered: c.metrics.deadLettered.Load(),
		Lag:                  c.metrics.lag.Load(),
	}
	if ns := c.metrics.lastConsumed.Load(); ns > 0 {
		s.LastConsumedAt = time.Unix(0, ns)
	}
	return s
}

// Close stops the loop and closes the reader once.
func (c *Consumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.running.Store(false)

	err := c.reader.Close()
	if c.ownsDLQ {
		if p, ok := c.deadLetter.(*Producer); ok {
			if perr := p.Close(); err == nil {
				err = perr
			}
		}
	}
	c.logger.Info("Kafka consumer closed", logging.Int64("consumed", c.metrics.consumed.Load()))
	return err
}

func fromKafkaMessage(m kafka.Message) *Message {
	msg := &Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Timestamp: m.Time,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}

// ValidateConsumerConfig checks required settings.
func ValidateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if cfg.GroupID == "" {
		return errors.New(errors.ErrCodeValidation, "group id required")
	}
	if len(cfg.Topics) == 0 {
		return errors.New(errors.ErrCodeValidation, "topics required")
	}
	return nil
}

//Personal.AI order the ending
