package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backends bundles the shared-state stores used by the HTTP layer
type Backends struct {
	// Redis is nil when the in-memory fallback is in use
	Redis   *redis.Client
	Counter WindowCounter
}

// Close releases the Redis connection or stops the in-memory sweeper
func (b *Backends) Close() error {
	if c, ok := b.Counter.(*InMemoryWindowCounter); ok {
		c.Close()
	}
	if b.Redis != nil {
		return b.Redis.Close()
	}
	return nil
}

// Factory builds Backends from configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to in-memory stores.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new backends factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create connects to Redis when enabled and falls back to in-memory stores otherwise
func (f *Factory) Create(ctx context.Context) (*Backends, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory session and rate-limit stores")
		return f.inMemory(), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis for session revocation and rate limiting",
			zap.String("addr", f.redisConfig.Addr()))
		return &Backends{Redis: client, Counter: NewRedisWindowCounter(client, "")}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
		"Logouts and rate limits will not be shared between instances.",
		zap.Error(err),
	)
	return f.inMemory(), nil
}

func (f *Factory) inMemory() *Backends {
	return &Backends{Counter: NewInMemoryWindowCounter(time.Minute)}
}
