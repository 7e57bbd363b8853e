package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freewen/internal/model"
	"freewen/internal/store"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
	grounded bool
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, grounded bool) (string, error) {
	f.calls++
	f.grounded = grounded
	return f.response, f.err
}

type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) GetResponse(_ context.Context, key string) (string, bool, error) {
	raw, ok := f.entries[key]
	return raw, ok, nil
}

func (f *fakeCache) SetResponse(_ context.Context, key, raw string) error {
	f.entries[key] = raw
	f.sets++
	return nil
}

type fakePublisher struct {
	records []model.PlanRecord
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, rec model.PlanRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func newTestSession(t *testing.T, sessions *store.SessionStore, workspaceID string) string {
	t.Helper()
	_, err := sessions.Create(workspaceID, "Tokyo Trip", testTripConfig())
	require.NoError(t, err)
	return "Tokyo Trip"
}

func TestGenerate_SavesPlanOnSession(t *testing.T) {
	sessions := store.NewSessionStore()
	name := newTestSession(t, sessions, "ws-1")
	gen := &fakeGenerator{response: fullResponse}
	svc := NewService(sessions, gen, nil, nil, true)

	plan, err := svc.Generate(context.Background(), "ws-1", name)
	require.NoError(t, err)

	assert.Equal(t, model.ParseComplete, plan.Status)
	assert.True(t, gen.grounded)
	assert.Equal(t, "Tokyo, Japan", plan.Config.Destination, "plan carries a frozen config snapshot")

	stored, err := sessions.Get("ws-1", name)
	require.NoError(t, err)
	require.NotNil(t, stored.Plan)
	assert.Equal(t, plan.Raw, stored.Plan.Raw)
}

func TestGenerate_ValidationErrors(t *testing.T) {
	sessions := store.NewSessionStore()
	gen := &fakeGenerator{response: fullResponse}
	svc := NewService(sessions, gen, nil, nil, false)
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*model.TripConfig)
		want   error
	}{
		"missing origin":      {func(c *model.TripConfig) { c.Origin = "  " }, ErrMissingCities},
		"missing destination": {func(c *model.TripConfig) { c.Destination = "" }, ErrMissingCities},
		"end before start":    {func(c *model.TripConfig) { c.EndDate = c.StartDate }, ErrInvalidDates},
		"zero budget":         {func(c *model.TripConfig) { c.Budget = 0 }, ErrInvalidBudget},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testTripConfig()
			tc.mutate(&cfg)
			_, err := sessions.Create("ws-v", name, cfg)
			require.NoError(t, err)

			_, err = svc.Generate(ctx, "ws-v", name)
			assert.ErrorIs(t, err, tc.want)

			session, getErr := sessions.Get("ws-v", name)
			require.NoError(t, getErr)
			assert.Nil(t, session.Plan, "failed generation must not attach a plan")
		})
	}

	assert.Zero(t, gen.calls, "invalid config never reaches the model")
}

func TestGenerate_UnknownSession(t *testing.T) {
	svc := NewService(store.NewSessionStore(), &fakeGenerator{}, nil, nil, false)

	_, err := svc.Generate(context.Background(), "ws-1", "no-such-session")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestGenerate_GeneratorFailureLeavesSessionPlanless(t *testing.T) {
	sessions := store.NewSessionStore()
	name := newTestSession(t, sessions, "ws-1")
	genErr := errors.New("upstream exploded")
	svc := NewService(sessions, &fakeGenerator{err: genErr}, nil, nil, false)

	_, err := svc.Generate(context.Background(), "ws-1", name)
	assert.ErrorIs(t, err, genErr)

	session, err := sessions.Get("ws-1", name)
	require.NoError(t, err)
	assert.Nil(t, session.Plan)
}

func TestGenerate_CacheRoundTrip(t *testing.T) {
	sessions := store.NewSessionStore()
	name := newTestSession(t, sessions, "ws-1")
	gen := &fakeGenerator{response: fullResponse}
	cache := newFakeCache()
	svc := NewService(sessions, gen, cache, nil, true)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "ws-1", name)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, cache.sets)

	// Same config, same prompt: the second run is served from cache.
	plan, err := svc.Generate(ctx, "ws-1", name)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, fullResponse, plan.Raw)

	// A config change produces a new prompt and misses the cache.
	cfg := testTripConfig()
	cfg.Destination = "Osaka, Japan"
	require.NoError(t, sessions.UpdateConfig("ws-1", name, cfg))

	_, err = svc.Generate(ctx, "ws-1", name)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerate_PublishesArchiveRecord(t *testing.T) {
	sessions := store.NewSessionStore()
	name := newTestSession(t, sessions, "ws-1")
	pub := &fakePublisher{}
	svc := NewService(sessions, &fakeGenerator{response: fullResponse}, nil, pub, false)

	_, err := svc.Generate(context.Background(), "ws-1", name)
	require.NoError(t, err)

	require.Len(t, pub.records, 1)
	rec := pub.records[0]
	assert.Equal(t, "ws-1", rec.WorkspaceID)
	assert.Equal(t, name, rec.SessionName)
	assert.Equal(t, "Tokyo, Japan", rec.Destination)
	assert.Equal(t, fullResponse, rec.RawResponse)
	assert.Equal(t, string(model.ParseComplete), rec.ParseStatus)
}

func TestGenerate_PublishFailureIsNotFatal(t *testing.T) {
	sessions := store.NewSessionStore()
	name := newTestSession(t, sessions, "ws-1")
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(sessions, &fakeGenerator{response: fullResponse}, nil, pub, false)

	plan, err := svc.Generate(context.Background(), "ws-1", name)
	require.NoError(t, err)
	assert.Equal(t, model.ParseComplete, plan.Status)
}
