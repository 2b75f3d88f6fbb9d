package kv

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRedis struct {
	data   map[string]string
	closed bool
}

func (s *stubRedis) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *stubRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubRedis) Ping(_ context.Context) error {
	return nil
}

func (s *stubRedis) Close() error {
	s.closed = true
	return nil
}

func TestRedisStoreAdaptsSentinel(t *testing.T) {
	ctx := context.Background()
	stub := &stubRedis{data: map[string]string{}}
	store := &RedisStore{client: stub}

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart:sess-1", "blob"))
	value, err := store.Get(ctx, "cart:sess-1")
	require.NoError(t, err)
	assert.Equal(t, "blob", value)

	require.NoError(t, store.Delete(ctx, "cart:sess-1"))
	require.NoError(t, store.Close())
	assert.True(t, stub.closed)
}
