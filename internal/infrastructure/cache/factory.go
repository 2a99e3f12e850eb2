package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/infrastructure/config"
)

// CredentialStoreFactory creates credential stores based on configuration
type CredentialStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CredentialStoreFactoryOption is a functional option for the factory
type CredentialStoreFactoryOption func(*CredentialStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CredentialStoreFactoryOption {
	return func(f *CredentialStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CredentialStoreFactoryOption {
	return func(f *CredentialStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCredentialStoreFactory creates a new factory
func NewCredentialStoreFactory(cfg config.RedisConfig, opts ...CredentialStoreFactoryOption) *CredentialStoreFactory {
	f := &CredentialStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds a Redis-backed credential store, falling back to the
// in-memory store when Redis is unreachable and fallback is allowed.
func (f *CredentialStoreFactory) Create() (CredentialStore, error) {
	store, err := NewRedisCredentialStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis credential store",
			zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis credential store unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory credential store",
		zap.Error(err))
	return NewInMemoryCredentialStore(), nil
}
