package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key inside fixed time windows
type WindowCounter interface {
	// Hit records one hit for key and returns the hit count of the current window
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisWindowCounter shares counters between instances using INCR with an expiry
type RedisWindowCounter struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisWindowCounter creates a counter on an existing Redis client
func NewRedisWindowCounter(client redis.UniversalClient, keyPrefix string) *RedisWindowCounter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisWindowCounter{client: client, keyPrefix: keyPrefix}
}

// Hit increments the counter; the first hit of a window sets its expiry
func (c *RedisWindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := c.keyPrefix + key

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		pipe.ExpireNX(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count request: %w", err)
	}
	return incr.Val(), nil
}

var _ WindowCounter = (*RedisWindowCounter)(nil)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// InMemoryWindowCounter keeps counters in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryWindowCounter struct {
	mu        sync.Mutex
	entries   map[string]*windowEntry
	now       func() time.Time
	stopChan  chan struct{}
	closeOnce sync.Once
}

// NewInMemoryWindowCounter creates a counter that sweeps expired windows every sweepEvery
func NewInMemoryWindowCounter(sweepEvery time.Duration) *InMemoryWindowCounter {
	c := &InMemoryWindowCounter{
		entries:  make(map[string]*windowEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if sweepEvery > 0 {
		go c.sweepLoop(sweepEvery)
	}
	return c
}

// Hit records a hit and returns the count of the current window
func (c *InMemoryWindowCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		c.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Close stops the background sweep
func (c *InMemoryWindowCounter) Close() {
	c.closeOnce.Do(func() { close(c.stopChan) })
}

func (c *InMemoryWindowCounter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *InMemoryWindowCounter) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.resetAt) {
			delete(c.entries, key)
		}
	}
}

var _ WindowCounter = (*InMemoryWindowCounter)(nil)
