package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/persistence"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Show(msg string) { r.messages = append(r.messages, msg) }

func (r *recordingNotifier) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

// countingStore counts writes so tests can assert persistence points.
type countingStore struct {
	*persistence.MemoryStore
	sets int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.MemoryStore.Set(ctx, key, value)
}

type fixture struct {
	state    *state.AppState
	store    *countingStore
	notifier *recordingNotifier
	opts     []CollectionOption
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &countingStore{MemoryStore: persistence.NewMemoryStore()}
	n := &recordingNotifier{}
	st := state.New(persistence.NewAdapter(store, "mf_state_v5"), n, nil)
	require.NoError(t, st.Load(context.Background()))

	seq := 0
	clock := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	return &fixture{
		state:    st,
		store:    store,
		notifier: n,
		opts: []CollectionOption{
			WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
			WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock }),
		},
	}
}
