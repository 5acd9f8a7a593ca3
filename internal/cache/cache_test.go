package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_DisabledReturnsNoop(t *testing.T) {
	c := cache.New(&config.CacheConfig{Enabled: false}, zap.NewNop())
	assert.IsType(t, cache.Noop{}, c)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := cache.Noop{}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Delete(ctx, "k")
	assert.NoError(t, c.Ping(ctx))
}
