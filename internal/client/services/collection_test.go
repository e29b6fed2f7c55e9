package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHabits(t *testing.T) (*Collection[models.Habit], *fixture) {
	t.Helper()
	f := newFixture(t)
	return NewCollection[models.Habit](f.state, kinds.Habits{}, f.notifier, f.opts...), f
}

func TestAdd_SingleHabit(t *testing.T) {
	c, f := newHabits(t)

	h, err := c.Add(context.Background(), models.Fields{"name": "Meditar"})
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, h, items[0])
	assert.False(t, items[0].Completed)
	assert.Equal(t, "Meditar", items[0].Name)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Equal(t, "Habit added", f.notifier.last())
	assert.Equal(t, 1, f.store.sets)
}

func TestAdd_NewestFirst(t *testing.T) {
	c, _ := newHabits(t)
	ctx := context.Background()

	a, err := c.Add(ctx, models.Fields{"name": "A"})
	require.NoError(t, err)
	b, err := c.Add(ctx, models.Fields{"name": "B"})
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt.Time))
}

func TestAdd_UniqueIDsWithRealGenerator(t *testing.T) {
	f := newFixture(t)
	c := NewCollection[models.Habit](f.state, kinds.Habits{}, nil)
	ctx := context.Background()

	const n = 50
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		h, err := c.Add(ctx, models.Fields{"name": "x"})
		require.NoError(t, err)
		seen[h.ID] = struct{}{}
	}
	assert.Equal(t, n, c.Len())
	assert.Len(t, seen, n)
}

func TestAdd_PersistsWholeDocument(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()

	f.state.Document().WaterGoal = 2600
	_, err := c.Add(ctx, models.Fields{"name": "Run"})
	require.NoError(t, err)

	raw, err := f.store.Get(ctx, "mf_state_v5")
	require.NoError(t, err)
	doc, err := models.DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, 2600, doc.WaterGoal)
	assert.Len(t, doc.Habits, 1)
}

func TestAdd_BadPayloadDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	c := NewCollection[models.Workout](f.state, kinds.Workouts{}, f.notifier, f.opts...)

	_, err := c.Add(context.Background(), models.Fields{"duration": "forever"})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, f.store.sets)
}

func TestUpdate(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	h, err := c.Add(ctx, models.Fields{"name": "Read", "note": "10 pages"})
	require.NoError(t, err)

	ok, err := c.Update(ctx, h.ID, models.Fields{"note": "20 pages", "id": "other"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found := c.Get(h.ID)
	require.True(t, found)
	assert.Equal(t, "20 pages", got.Note)
	assert.Equal(t, "Read", got.Name)
	assert.True(t, h.CreatedAt.Equal(got.CreatedAt.Time))
	assert.Equal(t, "Habit updated", f.notifier.last())
}

func TestUpdate_MissingIDIsSilentNoop(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	_, err := c.Add(ctx, models.Fields{"name": "Read"})
	require.NoError(t, err)
	before := c.Items()
	writes, msgs := f.store.sets, len(f.notifier.messages)

	ok, err := c.Update(ctx, "missing-id", models.Fields{"name": "X"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, c.Items())
	assert.Equal(t, writes, f.store.sets)
	assert.Len(t, f.notifier.messages, msgs)
}

func TestUpdate_EmptyChangesStillPersists(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	h, err := c.Add(ctx, models.Fields{"name": "Read"})
	require.NoError(t, err)
	writes := f.store.sets

	ok, err := c.Update(ctx, h.ID, models.Fields{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, writes+1, f.store.sets)
	assert.Equal(t, "Habit updated", f.notifier.last())
}

func TestPatch_IsQuiet(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	h, err := c.Add(ctx, models.Fields{"name": "Read"})
	require.NoError(t, err)
	msgs := len(f.notifier.messages)

	ok, err := c.Patch(ctx, h.ID, models.Fields{"remoteId": "12"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := c.Get(h.ID)
	assert.Equal(t, "12", got.RemoteID)
	assert.Len(t, f.notifier.messages, msgs)
}

func TestRemove_Idempotent(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	a, _ := c.Add(ctx, models.Fields{"name": "A"})
	_, _ = c.Add(ctx, models.Fields{"name": "B"})

	require.NoError(t, c.Remove(ctx, a.ID))
	once := c.Items()
	writes := f.store.sets
	assert.Equal(t, "Habit removed", f.notifier.last())

	require.NoError(t, c.Remove(ctx, a.ID))
	assert.Equal(t, once, c.Items())
	assert.Equal(t, writes, f.store.sets, "removing an absent id writes nothing")
}

func TestRemoveMany_OnlyExistingRemoved(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	a, _ := c.Add(ctx, models.Fields{"name": "A"})
	b, _ := c.Add(ctx, models.Fields{"name": "B"})
	writes := f.store.sets

	n, err := c.RemoveMany(ctx, []string{a.ID, "idB-missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, writes+1, f.store.sets)
	assert.Equal(t, "1 habit removed", f.notifier.last())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	n, err = c.RemoveMany(ctx, []string{"nope"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, writes+2, f.store.sets, "one write per call even when nothing matched")
	assert.Equal(t, "0 habits removed", f.notifier.last())
	assert.Len(t, c.Items(), 1)
}

func TestRemoveMany_CountInMessage(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	a, _ := c.Add(ctx, models.Fields{"name": "A"})
	b, _ := c.Add(ctx, models.Fields{"name": "B"})

	n, err := c.RemoveMany(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "2 habits removed", f.notifier.last())
	assert.NotNil(t, f.state.Document().Habits)
	assert.Empty(t, f.state.Document().Habits)
}

func TestToggleComplete_RestoresOtherFields(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	h, _ := c.Add(ctx, models.Fields{"name": "Read", "note": "n", "time": "21:00"})
	msgs := len(f.notifier.messages)

	require.NoError(t, c.ToggleComplete(ctx, h.ID, true))
	got, _ := c.Get(h.ID)
	assert.True(t, got.Completed)

	require.NoError(t, c.ToggleComplete(ctx, h.ID, true))
	got, _ = c.Get(h.ID)
	assert.True(t, got.Completed, "value is set, not flipped")

	require.NoError(t, c.ToggleComplete(ctx, h.ID, false))
	got, _ = c.Get(h.ID)

	if diff := cmp.Diff(h, got, cmp.Comparer(func(a, b models.Timestamp) bool { return a.Equal(b.Time) })); diff != "" {
		t.Fatalf("toggle round trip changed the entity (-want +got):\n%s", diff)
	}
	assert.Len(t, f.notifier.messages, msgs, "toggling does not notify")

	assert.NoError(t, c.ToggleComplete(ctx, "missing", true))
}

func TestMarkAllComplete(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	_, _ = c.Add(ctx, models.Fields{"name": "A"})
	_, _ = c.Add(ctx, models.Fields{"name": "B"})

	require.NoError(t, c.MarkAllComplete(ctx))

	total, done := c.Stats()
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, done)
	assert.Equal(t, "All habits completed", f.notifier.last())
}

func TestMarkComplete_Subset(t *testing.T) {
	c, _ := newHabits(t)
	ctx := context.Background()
	a, _ := c.Add(ctx, models.Fields{"name": "A"})
	_, _ = c.Add(ctx, models.Fields{"name": "B"})

	n, err := c.MarkComplete(ctx, []string{a.ID, "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, done := c.Stats()
	assert.Equal(t, 1, done)
}

func TestOnChange_ObserversSeeEveryMutation(t *testing.T) {
	c, _ := newHabits(t)
	ctx := context.Background()
	var ops []Op
	c.OnChange(func(_ context.Context, ch Change) {
		assert.Equal(t, models.KeyHabits, ch.Key)
		ops = append(ops, ch.Op)
	})

	h, _ := c.Add(ctx, models.Fields{"name": "A"})
	_, _ = c.Update(ctx, h.ID, models.Fields{"note": "x"})
	_ = c.ToggleComplete(ctx, h.ID, true)
	_ = c.MarkAllComplete(ctx)
	_ = c.Remove(ctx, h.ID)

	assert.Equal(t, []Op{OpAdded, OpUpdated, OpToggled, OpMarkedAll, OpRemoved}, ops)
}

func TestViews(t *testing.T) {
	f := newFixture(t)
	c := NewCollection[models.Meal](f.state, kinds.Meals{}, nil, f.opts...)
	_, err := c.Add(context.Background(), models.Fields{"name": "Salad", "calories": 420})
	require.NoError(t, err)

	views := c.Views()
	require.Len(t, views, 1)
	assert.Equal(t, "Salad", views[0].Title)
	assert.Equal(t, "420 kcal", views[0].Subtitle)
}

func TestCollection_SurvivesReset(t *testing.T) {
	c, f := newHabits(t)
	ctx := context.Background()
	_, _ = c.Add(ctx, models.Fields{"name": "A"})

	require.NoError(t, f.state.Reset(ctx))
	assert.Equal(t, 0, c.Len())

	_, err := c.Add(ctx, models.Fields{"name": "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len(), "collection reads the new document after reset")
}
