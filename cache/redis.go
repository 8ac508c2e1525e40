// Package cache holds the shared result cache used when several instances serve the same
// storage backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/voting"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "coop-voting:result:"

// RedisResultCache stores final results as JSON. A zero TTL keeps entries forever.
type RedisResultCache struct {
	Client *goredis.Client
	TTL    time.Duration
}

func NewRedisResultCache(ctx context.Context, addr string, ttl time.Duration) (*RedisResultCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logging.Log.Infof("CACHE: connected to redis at %s", addr)
	return &RedisResultCache{Client: rdb, TTL: ttl}, nil
}

func key(sessionID int64) string {
	return keyPrefix + strconv.FormatInt(sessionID, 10)
}

func (c *RedisResultCache) Get(ctx context.Context, sessionID int64) (*voting.Result, bool, error) {
	raw, err := c.Client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var r voting.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("decode cached result: %w", err)
	}
	return &r, true, nil
}

// Add writes r with SET NX. When another instance got there first the stored value wins.
func (c *RedisResultCache) Add(ctx context.Context, r *voting.Result) (*voting.Result, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	stored, err := c.Client.SetNX(ctx, key(r.SessionID), raw, c.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if stored {
		// Round trip through JSON so the caller sees what later readers will decode.
		var out voting.Result
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		return &out, nil
	}

	existing, ok, err := c.Get(ctx, r.SessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Expired between SETNX and GET.
		return r, nil
	}
	return existing, nil
}

func (c *RedisResultCache) Close() error {
	return c.Client.Close()
}
