package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/infrastructure/commerce"
)

type fakeIssuer struct {
	cred  *commerce.BearerCredential
	err   error
	calls int
}

func (f *fakeIssuer) Token(ctx context.Context) (*commerce.BearerCredential, error) {
	f.calls++
	return f.cred, f.err
}

func TestTokenSource_CachesAcrossCalls(t *testing.T) {
	ctx := context.Background()
	issuer := &fakeIssuer{cred: &commerce.BearerCredential{AccessToken: "tok-1", ExpiresIn: 10800}}
	source := NewTokenSource(issuer, NewInMemoryCredentialStore(), zap.NewNop())

	for i := 0; i < 3; i++ {
		token, err := source.AccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	}
	assert.Equal(t, 1, issuer.calls, "subsequent calls must be served from the store")
}

func TestTokenSource_IssuerFailurePropagates(t *testing.T) {
	issuer := &fakeIssuer{err: commerce.ErrAuthFailed}
	source := NewTokenSource(issuer, NewInMemoryCredentialStore(), zap.NewNop())

	_, err := source.AccessToken(context.Background())
	assert.ErrorIs(t, err, commerce.ErrAuthFailed)
}

type slowIssuer struct {
	mu    sync.Mutex
	calls int
}

func (f *slowIssuer) Token(ctx context.Context) (*commerce.BearerCredential, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	time.Sleep(10 * time.Millisecond)
	return &commerce.BearerCredential{AccessToken: "tok-c", ExpiresIn: 3600}, nil
}

func TestTokenSource_ConcurrentColdStartIssuesOnce(t *testing.T) {
	issuer := &slowIssuer{}
	source := NewTokenSource(issuer, NewInMemoryCredentialStore(), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := source.AccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok-c", token)
		}()
	}
	wg.Wait()

	issuer.mu.Lock()
	defer issuer.mu.Unlock()
	assert.Equal(t, 1, issuer.calls, "cold-start callers must share one issuance")
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context) (*commerce.BearerCredential, bool, error) {
	return nil, false, errors.New("store down")
}
func (failingStore) Put(ctx context.Context, cred *commerce.BearerCredential) error {
	return errors.New("store down")
}
func (failingStore) Invalidate(ctx context.Context) error { return nil }

func TestTokenSource_StoreFailureDegradesToIssuer(t *testing.T) {
	issuer := &fakeIssuer{cred: &commerce.BearerCredential{AccessToken: "tok-2", ExpiresIn: 3600}}
	source := NewTokenSource(issuer, failingStore{}, zap.NewNop())

	token, err := source.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestTokenSource_InvalidateForcesReissue(t *testing.T) {
	ctx := context.Background()
	issuer := &fakeIssuer{cred: &commerce.BearerCredential{AccessToken: "tok-3", ExpiresIn: 10800}}
	source := NewTokenSource(issuer, NewInMemoryCredentialStore(), zap.NewNop())

	_, err := source.AccessToken(ctx)
	require.NoError(t, err)
	require.NoError(t, source.Invalidate(ctx))
	_, err = source.AccessToken(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, issuer.calls)
}
