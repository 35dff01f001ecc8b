package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DealLens/internal/infrastructure/database/redis"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

type score struct {
	Multiple float64  `json:"multiple"`
	Drivers  []string `json:"drivers"`
}

func newTestCache() *Cache {
	return NewCache("deallens:", time.Minute, logging.NewNopLogger())
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	in := score{Multiple: 4.86, Drivers: []string{"Final multiple: 4.86x"}}
	require.NoError(t, c.Set(ctx, "score:a", in, 0))

	var out score
	require.NoError(t, c.Get(ctx, "score:a", &out))
	assert.Equal(t, in, out)

	out.Drivers[0] = "mutated"
	var again score
	require.NoError(t, c.Get(ctx, "score:a", &again))
	assert.Equal(t, "Final multiple: 4.86x", again.Drivers[0])
}

func TestCache_Miss(t *testing.T) {
	var out score
	assert.Equal(t, redis.ErrCacheMiss, newTestCache().Get(context.Background(), "nope", &out))
}

func TestCache_Expiry(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, 20*time.Millisecond))

	time.Sleep(40 * time.Millisecond)
	var v int
	assert.Equal(t, redis.ErrCacheMiss, c.Get(ctx, "k", &v))
}

func TestCache_GetOrSetLoadsOnce(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	var loads atomic.Int32
	loader := func(context.Context) (interface{}, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)
		return score{Multiple: 3.2}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out score
			assert.NoError(t, c.GetOrSet(ctx, "score:b", &out, 0, loader))
			assert.Equal(t, 3.2, out.Multiple)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), loads.Load())

	var out score
	require.NoError(t, c.GetOrSet(ctx, "score:b", &out, 0, loader))
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_GetOrSetLoaderError(t *testing.T) {
	c := newTestCache()
	boom := errors.New("boom")

	var out score
	err := c.GetOrSet(context.Background(), "k", &out, 0, func(context.Context) (interface{}, error) {
		return nil, boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "score:a", 1, 0))
	require.NoError(t, c.Set(ctx, "score:b", 2, 0))
	require.NoError(t, c.Set(ctx, "other", 3, 0))

	n, err := c.DeleteByPrefix(ctx, "score:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "other"))
	assert.Equal(t, 0, c.Len())
	assert.NoError(t, c.Ping(ctx))
}

//Personal.AI order the ending
