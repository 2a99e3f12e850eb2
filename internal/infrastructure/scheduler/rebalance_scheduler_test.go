package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownstreet/backend/internal/application/exhibition"
	"github.com/brownstreet/backend/internal/domain/catalog"
)

type stubDriftSource struct {
	items []catalog.Item
	err   error
}

func (s *stubDriftSource) FindStageDrifted(context.Context, int) ([]catalog.Item, error) {
	return s.items, s.err
}

type recordingRunner struct {
	mu   sync.Mutex
	runs []exhibition.SyncRequest
}

func (r *recordingRunner) Run(_ context.Context, req exhibition.SyncRequest) (<-chan exhibition.Event, error) {
	r.mu.Lock()
	r.runs = append(r.runs, req)
	r.mu.Unlock()

	events := make(chan exhibition.Event, 2)
	events <- exhibition.Event{Type: exhibition.EventComplete, Succeeded: len(req.ProductNos)}
	close(events)
	return events, nil
}

func (r *recordingRunner) byCategory(category string) *exhibition.SyncRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].InternalCategory == category {
			return &r.runs[i]
		}
	}
	return nil
}

func TestRebalanceScheduler_Sweep(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	source := &stubDriftSource{items: []catalog.Item{
		{ProductNo: "101", RegisteredAt: daysAgo(40), Stage: catalog.StageNew},
		{ProductNo: "102", RegisteredAt: daysAgo(45), Stage: catalog.StageNew},
		{ProductNo: "103", RegisteredAt: daysAgo(200), Stage: catalog.StageArchive},
	}}
	runner := &recordingRunner{}

	s := NewRebalanceScheduler(DefaultRebalanceConfig(), source, runner,
		catalog.DefaultLifecycleThresholds(), nil)
	s.now = func() time.Time { return now }

	handed := s.Sweep(context.Background())
	assert.Equal(t, 3, handed)

	curated := runner.byCategory(string(catalog.CategoryCurated))
	require.NotNil(t, curated)
	assert.ElementsMatch(t, []string{"101", "102"}, curated.ProductNos)
	assert.Equal(t, "lifecycle-scheduler", curated.SyncedBy)

	clearance := runner.byCategory(string(catalog.CategoryClearance))
	require.NotNil(t, clearance)
	assert.Equal(t, []string{"103"}, clearance.ProductNos)
}

func TestRebalanceScheduler_SweepNothingDrifted(t *testing.T) {
	runner := &recordingRunner{}
	s := NewRebalanceScheduler(DefaultRebalanceConfig(), &stubDriftSource{}, runner,
		catalog.DefaultLifecycleThresholds(), nil)

	assert.Zero(t, s.Sweep(context.Background()))
	assert.Empty(t, runner.runs)
}

func TestRebalanceScheduler_StartStop(t *testing.T) {
	config := DefaultRebalanceConfig()
	config.CheckInterval = time.Hour

	s := NewRebalanceScheduler(config, &stubDriftSource{}, &recordingRunner{},
		catalog.DefaultLifecycleThresholds(), nil)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestRebalanceScheduler_DisabledStart(t *testing.T) {
	config := DefaultRebalanceConfig()
	config.Enabled = false

	s := NewRebalanceScheduler(config, &stubDriftSource{}, &recordingRunner{},
		catalog.DefaultLifecycleThresholds(), nil)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
