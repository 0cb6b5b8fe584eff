package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-redis-url", "test", zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	c := &RedisCache{prefix: "dealscout"}
	assert.Equal(t, "dealscout:settings", c.key("settings"))

	c.prefix = ""
	assert.Equal(t, "settings", c.key("settings"))
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
	n, err := c.Incr(ctx, "v")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Ping(ctx))
}
