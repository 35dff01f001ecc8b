package kafka

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/DealLens/pkg/errors"
)

type mockKafkaWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	closeFunc func() error
	closes    int
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaWriter) Close() error {
	m.closes++
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockKafkaWriter) Stats() kafka.WriterStats { return kafka.WriterStats{} }

func newTestProducer(w WriterInterface) *Producer {
	return NewProducerWithWriter(w, ProducerConfig{Brokers: []string{"localhost:9092"}}, logging.NewNopLogger())
}

func testMessage(topic, key, value string) *ProducerMessage {
	return &ProducerMessage{Topic: topic, Key: []byte(key), Value: []byte(value)}
}

func TestValidateProducerConfig(t *testing.T) {
	assert.NoError(t, ValidateProducerConfig(ProducerConfig{Brokers: []string{"b:9092"}}))
	assert.Error(t, ValidateProducerConfig(ProducerConfig{}))
	assert.Error(t, ValidateProducerConfig(ProducerConfig{Brokers: []string{"b:9092"}, MaxRetries: -1}))
}

func TestProducerConfigFrom(t *testing.T) {
	cfg := ProducerConfigFrom(config.KafkaConfig{Brokers: []string{"k1:9092"}, MaxRetries: 5})
	assert.Equal(t, []string{"k1:9092"}, cfg.Brokers)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "all", cfg.Acks)
}

func TestNewProducer_InvalidConfig(t *testing.T) {
	_, err := NewProducer(ProducerConfig{}, logging.NewNopLogger())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func TestPublish_Success(t *testing.T) {
	var captured []kafka.Message
	w := &mockKafkaWriter{writeFunc: func(_ context.Context, msgs ...kafka.Message) error {
		captured = msgs
		return nil
	}}
	p := newTestProducer(w)

	msg := testMessage("deals", "run-1", "payload")
	msg.Headers = map[string]string{HeaderRunID: "run-1"}
	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, captured, 1)
	assert.Equal(t, "deals", captured[0].Topic)
	assert.Equal(t, "run-1", string(captured[0].Key))
	assert.Equal(t, "payload", string(captured[0].Value))
	assert.False(t, captured[0].Time.IsZero())
	require.Len(t, captured[0].Headers, 1)
	assert.Equal(t, HeaderRunID, captured[0].Headers[0].Key)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.MessagesSent)
	assert.Equal(t, int64(len("payload")), stats.BytesSent)
}

func TestPublish_WriterFailure(t *testing.T) {
	w := &mockKafkaWriter{writeFunc: func(context.Context, ...kafka.Message) error {
		return errors.New("broker down")
	}}
	p := newTestProducer(w)

	err := p.Publish(context.Background(), testMessage("deals", "k", "v"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMessageQueue))
	assert.Equal(t, int64(1), p.Stats().MessagesFailed)
}

func TestPublish_Validation(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{})

	assert.Error(t, p.Publish(context.Background(), testMessage("", "k", "v")))
	assert.Error(t, p.Publish(context.Background(), testMessage("deals", "k", "")))

	big := testMessage("deals", "k", strings.Repeat("x", 1024*1024+1))
	assert.True(t, apperrors.IsCode(p.Publish(context.Background(), big), apperrors.ErrCodeValidation))
}

func TestPublishBatch_PartialFailure(t *testing.T) {
	w := &mockKafkaWriter{writeFunc: func(_ context.Context, msgs ...kafka.Message) error {
		errs := make(kafka.WriteErrors, len(msgs))
		errs[1] = errors.New("fail")
		return errs
	}}
	p := newTestProducer(w)

	res, err := p.PublishBatch(context.Background(), []*ProducerMessage{
		testMessage("deals", "1", "1"),
		testMessage("deals", "2", "2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, "deals", res.Errors[0].Topic)
}

func TestPublishBatch_TotalFailure(t *testing.T) {
	w := &mockKafkaWriter{writeFunc: func(context.Context, ...kafka.Message) error {
		return errors.New("timeout")
	}}
	p := newTestProducer(w)

	res, err := p.PublishBatch(context.Background(), []*ProducerMessage{
		testMessage("deals", "1", "1"),
		testMessage("deals", "2", "2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, -1, res.Errors[0].Index)
}

func TestPublishBatch_Empty(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{})
	_, err := p.PublishBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestProducerClose_Once(t *testing.T) {
	w := &mockKafkaWriter{}
	p := newTestProducer(w)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closes)

	assert.ErrorIs(t, p.Publish(context.Background(), testMessage("deals", "k", "v")), ErrProducerClosed)
}

//Personal.AI order the ending
