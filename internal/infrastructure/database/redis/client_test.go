package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/DealLens/pkg/errors"
)

func TestNewClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(&RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(context.Background()))
	assert.Equal(t, "redis", client.Name())
}

func TestNewClient_ConnectionFailed(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewClient(&RedisConfig{Addr: addr, DialTimeout: 200 * time.Millisecond, MaxRetries: -1}, logging.NewNopLogger())
	assert.Nil(t, client)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func TestClient_Operations(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(&RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "foo", "bar", time.Minute).Err())
	val, err := client.Get(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, "bar", val)
	assert.Equal(t, time.Minute, mr.TTL("foo"))

	n, err := client.Del(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestClient_ClosedRejectsCommands(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(&RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.NoError(t, client.Close(), "close is idempotent")

	ctx := context.Background()
	assert.ErrorIs(t, client.Ping(ctx), ErrClientClosed)
	assert.ErrorIs(t, client.Get(ctx, "k").Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Set(ctx, "k", "v", 0).Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Del(ctx, "k").Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Scan(ctx, 0, "*", 10).Err(), ErrClientClosed)
	assert.Error(t, client.HealthCheck(ctx))
}

func TestFromConfig(t *testing.T) {
	rc := FromConfig(config.RedisConfig{Addr: "cache:6379", DB: 2, PoolSize: 4})
	assert.Equal(t, "cache:6379", rc.Addr)
	assert.Equal(t, 2, rc.DB)
	assert.Equal(t, 4, rc.PoolSize)

	applyDefaults(rc)
	assert.Equal(t, 5*time.Second, rc.DialTimeout)
	assert.Equal(t, 4, rc.PoolSize)
}

//Personal.AI order the ending
