package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

type mockKafkaReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (m *mockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	m.mu.Lock()
	if len(m.queue) > 0 {
		msg := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		return msg, nil
	}
	m.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockKafkaReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, msgs...)
	return nil
}

func (m *mockKafkaReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockKafkaReader) Stats() kafka.ReaderStats { return kafka.ReaderStats{} }

func (m *mockKafkaReader) commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.committed)
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*ProducerMessage
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg *ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "test-group",
		Topics:  []string{"deals"},
		RetryConfig: RetryConfig{
			MaxRetries:   2,
			RetryBackoff: time.Millisecond,
		},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(testConsumerConfig()))

	cfg := testConsumerConfig()
	cfg.Brokers = nil
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = testConsumerConfig()
	cfg.GroupID = ""
	assert.Error(t, ValidateConsumerConfig(cfg))

	cfg = testConsumerConfig()
	cfg.Topics = nil
	assert.Error(t, ValidateConsumerConfig(cfg))
}

func TestConsumerConfigFrom(t *testing.T) {
	cfg := ConsumerConfigFrom(config.KafkaConfig{
		Brokers:       []string{"k:9092"},
		DealsTopic:    "deals",
		ConsumerGroup: "writers",
		DeadLetter:    "deals.dlq",
		MaxRetries:    4,
		RetryBackoff:  2 * time.Second,
	})
	assert.Equal(t, []string{"deals"}, cfg.Topics)
	assert.Equal(t, "writers", cfg.GroupID)
	assert.Equal(t, "deals.dlq", cfg.RetryConfig.DeadLetterTopic)
	assert.Equal(t, 4, cfg.RetryConfig.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryConfig.RetryBackoff)
}

func TestSubscribe_RequiresHandler(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), logging.NewNopLogger())
	assert.Error(t, c.Subscribe("deals", nil))
	assert.NoError(t, c.Subscribe("deals", func(context.Context, *Message) error { return nil }))
	assert.Len(t, c.handlers, 1)
	c.Unsubscribe("deals")
	assert.Empty(t, c.handlers)
}

func TestStart_AlreadyRunning(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), logging.NewNopLogger())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyRunning)
}

func TestStart_AfterClose(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), logging.NewNopLogger())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}

func TestConsumeLoop_HandlesAndCommits(t *testing.T) {
	reader := &mockKafkaReader{queue: []kafka.Message{{
		Topic:   "deals",
		Offset:  7,
		Value:   []byte("value"),
		Headers: []kafka.Header{{Key: HeaderRunID, Value: []byte("r1")}},
	}}}
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())

	got := make(chan *Message, 1)
	require.NoError(t, c.Subscribe("deals", func(_ context.Context, msg *Message) error {
		got <- msg
		return nil
	}))
	require.NoError(t, c.Start(context.Background()))

	select {
	case msg := <-got:
		assert.Equal(t, "value", string(msg.Value))
		assert.Equal(t, int64(7), msg.Offset)
		assert.Equal(t, "r1", msg.Headers[HeaderRunID])
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for handler")
	}

	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, reader.closed)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.MessagesConsumed)
	assert.Equal(t, int64(1), stats.MessagesProcessed)
	assert.False(t, stats.LastConsumedAt.IsZero())
}

func TestConsumeLoop_UnknownTopicIsCommitted(t *testing.T) {
	reader := &mockKafkaReader{queue: []kafka.Message{{Topic: "other", Value: []byte("x")}}}
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())
	require.NoError(t, c.Start(context.Background()))

	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.Equal(t, int64(0), c.Stats().MessagesProcessed)
}

func TestProcessMessage_RetrySuccess(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), logging.NewNopLogger())

	var attempts int32
	ok := c.processMessage(context.Background(), &Message{}, func(context.Context, *Message) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return errors.New("fail")
		}
		return nil
	})
	assert.True(t, ok)
	assert.Equal(t, int32(2), attempts)
	assert.Equal(t, int64(1), c.Stats().MessagesRetried)
}

func TestProcessMessage_ExhaustedWithoutDeadLetter(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, testConsumerConfig(), logging.NewNopLogger())

	var attempts int
	ok := c.processMessage(context.Background(), &Message{}, func(context.Context, *Message) error {
		attempts++
		return errors.New("fail")
	})
	assert.False(t, ok)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, int64(0), c.Stats().MessagesDeadLettered)
}

func TestProcessMessage_DeadLetter(t *testing.T) {
	cfg := testConsumerConfig()
	cfg.RetryConfig.DeadLetterTopic = "deals.dlq"
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, logging.NewNopLogger())
	dlq := &recordingPublisher{}
	c.SetDeadLetterPublisher(dlq)

	msg := &Message{Topic: "deals", Key: []byte("r1"), Value: []byte("bad"), Headers: map[string]string{HeaderRunID: "r1"}}
	ok := c.processMessage(context.Background(), msg, func(context.Context, *Message) error {
		return errors.New("insert failed")
	})
	assert.False(t, ok)

	require.Len(t, dlq.msgs, 1)
	dl := dlq.msgs[0]
	assert.Equal(t, "deals.dlq", dl.Topic)
	assert.Equal(t, "r1", string(dl.Key))
	assert.Equal(t, "deals", dl.Headers[HeaderOriginalTopic])
	assert.Equal(t, "insert failed", dl.Headers[HeaderError])
	assert.Equal(t, "r1", dl.Headers[HeaderRunID])
	assert.NotContains(t, msg.Headers, HeaderError)
	assert.Equal(t, int64(1), c.Stats().MessagesDeadLettered)
}

func TestProcessMessage_CancelledDuringBackoff(t *testing.T) {
	cfg := testConsumerConfig()
	cfg.RetryConfig.RetryBackoff = time.Hour
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := c.processMessage(ctx, &Message{}, func(context.Context, *Message) error { return errors.New("fail") })
	assert.False(t, ok)
}

//Personal.AI order the ending
