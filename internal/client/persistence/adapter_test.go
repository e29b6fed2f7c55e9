package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
	getErr, setErr error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestAdapter_LoadMissingReturnsDefaults(t *testing.T) {
	a := NewAdapter(NewMemoryStore(), "")

	doc, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.NewDocument(), doc)
	assert.Equal(t, "mf_state_v5", a.Key())
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryStore(), "mf_state_v5")

	doc := models.NewDocument()
	doc.Habits = append(doc.Habits, models.Habit{Base: models.Base{ID: "h1"}, Name: "Meditar"})
	doc.WaterGoal = 2500

	require.NoError(t, a.Save(ctx, doc))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Habits, 1)
	assert.Equal(t, "Meditar", got.Habits[0].Name)
	assert.Equal(t, 2500, got.WaterGoal)
}

func TestAdapter_LoadCorruptFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", []byte(`{"habits":`)))

	doc, err := NewAdapter(store, "k").Load(ctx)
	require.ErrorIs(t, err, ErrDecode)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Habits)
	assert.Equal(t, models.DefaultWaterGoal, doc.WaterGoal)
}

func TestAdapter_StoreReadFailureIsDecodeError(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), getErr: errors.New("disk gone")}

	doc, err := NewAdapter(store, "k").Load(context.Background())
	require.ErrorIs(t, err, ErrDecode)
	assert.NotNil(t, doc)
}

func TestAdapter_SaveFailureIsWriteError(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), setErr: errors.New("quota exceeded")}

	err := NewAdapter(store, "k").Save(context.Background(), models.NewDocument())
	require.ErrorIs(t, err, ErrWrite)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAdapter_ClearThenLoadReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryStore(), "k")

	doc := models.NewDocument()
	doc.Workouts = append(doc.Workouts, models.Workout{Base: models.Base{ID: "w"}, Name: "Run"})
	require.NoError(t, a.Save(ctx, doc))
	require.NoError(t, a.Clear(ctx))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Workouts)
}
