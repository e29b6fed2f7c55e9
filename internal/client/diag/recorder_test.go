package diag

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"github.com/dmitrijs2005/fittracker/internal/client/modal"
	"github.com/dmitrijs2005/fittracker/internal/client/persistence"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestRecorder_RingKeepsNewest(t *testing.T) {
	r := NewRecorder(nil, 3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		r.Record(ctx, "e", fmt.Sprint(i))
	}

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "2", events[0].Detail)
	assert.Equal(t, "4", events[2].Detail)
}

func TestRecorder_PartialRing(t *testing.T) {
	r := NewRecorder(nil, 0)
	r.Record(context.Background(), "e", "only")

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "only", events[0].Detail)
}

func TestRecorder_Attach(t *testing.T) {
	ctx := context.Background()
	st := state.New(persistence.NewAdapter(persistence.NewMemoryStore(), ""), nil, nil)
	m := modal.NewController(nil, nil)
	rt := router.New(nil)

	r := NewRecorder(nil, DefaultCapacity)
	r.Attach(st, m, rt)

	require.NoError(t, st.Save(ctx))
	rt.Navigate(ctx, router.Meals)
	f := forms.NewConfirm("Delete?", "Really?", "Delete")
	require.True(t, m.Open(f, modal.Options{}))
	m.Close()
	require.NoError(t, st.Reset(ctx))

	events := r.Events()
	assert.Equal(t, []string{EventSave, EventNavigate, EventModalOpen, EventModalClose, EventReset}, kinds(events))
	assert.Equal(t, router.Meals, events[1].Detail)
	assert.Equal(t, "Delete?", events[2].Detail)

	rep := r.Report(st.Document())
	assert.Equal(t, 1, rep.Saves)
	assert.False(t, rep.LastSave.IsZero())
	assert.Equal(t, 2000, rep.WaterGoal)
	assert.Equal(t, 5, rep.Events)
}
