package cache

import (
	"fmt"
	"io"

	appreport "github.com/crmdesk/backend/internal/application/report"
	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores groups the Redis backed components used by the server
type Stores struct {
	ReportCache    appreport.Cache
	TokenBlacklist auth.TokenBlacklist
	// Redis is nil when the in-memory implementations are in use
	Redis *redis.Client

	closers []io.Closer
}

// Close releases the Redis connection or stops the in-memory sweepers
func (s *Stores) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Factory creates cache stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(config.RedisConfig) (*redis.Client, error)
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect:               NewRedisClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStores creates single-process stores. State is not shared
// across instances, so a token revoked on one instance stays valid on others.
func (f *Factory) CreateInMemoryStores() *Stores {
	reports := NewInMemoryReportCache()
	return &Stores{
		ReportCache:    reports,
		TokenBlacklist: auth.NewInMemoryTokenBlacklist(),
		closers:        []io.Closer{reports},
	}
}

// CreateStores uses Redis when it is enabled and reachable, falling back to
// in-memory stores otherwise when fallback is allowed.
func (f *Factory) CreateStores() (*Stores, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory report cache and token blacklist")
		return f.CreateInMemoryStores(), nil
	}

	client, err := f.connect(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis report cache and token blacklist", zap.String("addr", f.redisConfig.Addr()))
		return &Stores{
			ReportCache:    NewRedisReportCache(client, ""),
			TokenBlacklist: auth.NewRedisTokenBlacklist(client),
			Redis:          client,
			closers:        []io.Closer{client},
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
		"Revoked tokens are not shared between instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStores(), nil
}
