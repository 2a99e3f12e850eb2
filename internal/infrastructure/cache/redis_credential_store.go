package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brownstreet/backend/internal/infrastructure/commerce"
)

// RedisCredentialStore implements CredentialStore using Redis. This is the
// store for distributed deployments where multiple instances must share one
// bearer credential instead of racing the token endpoint.
type RedisCredentialStore struct {
	client *redis.Client
	key    string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCredentialStore creates a new Redis-based credential store
func NewRedisCredentialStore(cfg RedisConfig) (*RedisCredentialStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCredentialStore{
		client: client,
		key:    "commerce:bearer_credential",
	}, nil
}

// NewRedisCredentialStoreWithClient creates a store with an existing Redis
// client. This is useful for testing or when sharing a client.
func NewRedisCredentialStoreWithClient(client *redis.Client, key string) *RedisCredentialStore {
	if key == "" {
		key = "commerce:bearer_credential"
	}
	return &RedisCredentialStore{client: client, key: key}
}

// Get implements CredentialStore. The TTL set on Put already accounts for
// the expiry buffer, so key presence means the credential is still usable.
func (s *RedisCredentialStore) Get(ctx context.Context) (*commerce.BearerCredential, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached credential: %w", err)
	}

	var cred commerce.BearerCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached credential: %w", err)
	}
	return &cred, true, nil
}

// Put implements CredentialStore
func (s *RedisCredentialStore) Put(ctx context.Context, cred *commerce.BearerCredential) error {
	ttl := time.Duration(cred.ExpiresIn)*time.Second - expiryBuffer
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache credential: %w", err)
	}
	return nil
}

// Invalidate implements CredentialStore
func (s *RedisCredentialStore) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to drop cached credential: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCredentialStore) Close() error {
	return s.client.Close()
}

var _ CredentialStore = (*RedisCredentialStore)(nil)
