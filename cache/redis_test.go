package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only: REDIS_ADDR=localhost:6379 go test ./cache/...
func setupRedis(t *testing.T) *RedisResultCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	logging.Log = logrus.New()

	c, err := NewRedisResultCache(context.Background(), addr, time.Minute)
	require.NoError(t, err, "failed to connect to redis")
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisResultCache(t *testing.T) {
	c := setupRedis(t)
	ctx := context.Background()
	sessionID := time.Now().UnixNano()
	t.Cleanup(func() { c.Client.Del(context.Background(), key(sessionID)) })

	t.Run("Happy path - miss", func(t *testing.T) {
		_, ok, err := c.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	first := &voting.Result{
		SessionID:  sessionID,
		Total:      3,
		Yes:        2,
		No:         1,
		YesPercent: 200.0 / 3,
		NoPercent:  100.0 / 3,
		Approved:   true,
		Status:     voting.StatusClosed,
		Final:      true,
		TalliedAt:  time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}

	t.Run("Happy path - first add wins", func(t *testing.T) {
		stored, err := c.Add(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, first, stored)

		second := *first
		second.Total = 99
		again, err := c.Add(ctx, &second)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		got, ok, err := c.Get(ctx, sessionID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, got)
	})
}

func TestRedisResultCacheSatisfiesInterface(t *testing.T) {
	var _ voting.ResultCache = (*RedisResultCache)(nil)
}
