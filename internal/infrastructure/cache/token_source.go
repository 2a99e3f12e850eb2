package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/infrastructure/commerce"
)

// TokenIssuer mints a fresh bearer credential from the gateway
type TokenIssuer interface {
	Token(ctx context.Context) (*commerce.BearerCredential, error)
}

// TokenSource hands out access tokens, serving from the credential store
// while one is still fresh and hitting the token endpoint otherwise. Store
// failures degrade to direct issuance rather than failing the caller.
// Issuance is serialized so concurrent callers racing on an empty store
// produce one token endpoint call, not one each.
type TokenSource struct {
	issuer TokenIssuer
	store  CredentialStore
	logger *zap.Logger

	mu sync.Mutex
}

// NewTokenSource creates a token source over an issuer and a store
func NewTokenSource(issuer TokenIssuer, store CredentialStore, logger *zap.Logger) *TokenSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSource{issuer: issuer, store: store, logger: logger}
}

// AccessToken returns a usable access token.
func (s *TokenSource) AccessToken(ctx context.Context) (string, error) {
	cred, ok, err := s.store.Get(ctx)
	if err != nil {
		s.logger.Warn("credential store read failed", zap.Error(err))
	} else if ok {
		return cred.AccessToken, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A caller that lost the race re-reads the store: the winner has
	// already put a fresh credential there.
	cred, ok, err = s.store.Get(ctx)
	if err != nil {
		s.logger.Warn("credential store read failed", zap.Error(err))
	} else if ok {
		return cred.AccessToken, nil
	}

	cred, err = s.issuer.Token(ctx)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, cred); err != nil {
		s.logger.Warn("credential store write failed", zap.Error(err))
	}
	return cred.AccessToken, nil
}

// Invalidate drops the cached credential, forcing the next AccessToken call
// to hit the token endpoint.
func (s *TokenSource) Invalidate(ctx context.Context) error {
	return s.store.Invalidate(ctx)
}
