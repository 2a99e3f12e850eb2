package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brownstreet/backend/internal/infrastructure/commerce"
)

// expiryBuffer is subtracted from the upstream TTL so a credential is never
// handed out moments before the gateway rejects it.
const expiryBuffer = 60 * time.Second

// CredentialStore caches the gateway bearer credential. A run fetches at
// most one token; the store shares it across runs and instances.
type CredentialStore interface {
	// Get returns the cached credential and whether one with remaining
	// lifetime exists.
	Get(ctx context.Context) (*commerce.BearerCredential, bool, error)
	// Put caches a credential for its advertised lifetime minus the buffer.
	Put(ctx context.Context, cred *commerce.BearerCredential) error
	// Invalidate drops the cached credential.
	Invalidate(ctx context.Context) error
}

// InMemoryCredentialStore is a process-local credential store. It backs
// single-instance deployments and serves as the fallback when Redis is
// unavailable.
type InMemoryCredentialStore struct {
	mu        sync.RWMutex
	cred      *commerce.BearerCredential
	expiresAt time.Time
	now       func() time.Time
}

// NewInMemoryCredentialStore creates an in-memory credential store
func NewInMemoryCredentialStore() *InMemoryCredentialStore {
	return &InMemoryCredentialStore{now: time.Now}
}

// Get implements CredentialStore
func (s *InMemoryCredentialStore) Get(ctx context.Context) (*commerce.BearerCredential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil || !s.now().Before(s.expiresAt) {
		return nil, false, nil
	}
	return s.cred, true, nil
}

// Put implements CredentialStore
func (s *InMemoryCredentialStore) Put(ctx context.Context, cred *commerce.BearerCredential) error {
	ttl := time.Duration(cred.ExpiresIn)*time.Second - expiryBuffer
	if ttl <= 0 {
		// Shorter-lived than the buffer; not worth caching.
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.expiresAt = s.now().Add(ttl)
	return nil
}

// Invalidate implements CredentialStore
func (s *InMemoryCredentialStore) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.expiresAt = time.Time{}
	return nil
}

var _ CredentialStore = (*InMemoryCredentialStore)(nil)
