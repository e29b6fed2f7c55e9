package router

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/fittracker/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Router, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(logging.NewZapLogger(zap.New(core))), logs
}

func TestRouter_DefaultSection(t *testing.T) {
	r, _ := newObserved()
	assert.Equal(t, Home, r.Active().Name)
	assert.Equal(t, "Mundo Fitness — Home", r.Title())
	assert.Len(t, r.Sections(), len(DefaultSections))
}

func TestRouter_NavigateRendersEveryTime(t *testing.T) {
	r, _ := newObserved()
	ctx := context.Background()
	calls := 0
	r.Register(Meals, func(context.Context) error { calls++; return nil })

	require.True(t, r.Navigate(ctx, Meals))
	require.True(t, r.Navigate(ctx, Meals))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Mundo Fitness — Meals", r.Title())
}

func TestRouter_UnknownSection(t *testing.T) {
	r, logs := newObserved()
	ctx := context.Background()
	r.Navigate(ctx, Habits)

	assert.False(t, r.Navigate(ctx, "sleep"))
	assert.Equal(t, Habits, r.Active().Name)
	require.Equal(t, 1, logs.FilterMessage("unknown section").Len())
}

func TestRouter_RenderFailuresAreContained(t *testing.T) {
	tests := []struct {
		name string
		fn   RenderFunc
	}{
		{"error", func(context.Context) error { return errors.New("boom") }},
		{"panic", func(context.Context) error { panic("boom") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := newObserved()
			r.Register(Workouts, tt.fn)

			assert.NotPanics(t, func() { r.Navigate(context.Background(), Workouts) })
			assert.Equal(t, Workouts, r.Active().Name)

			entries := logs.FilterMessage("section render failed").AllUntimed()
			require.Len(t, entries, 1)
			err, ok := entries[0].ContextMap()["err"].(string)
			require.True(t, ok)
			assert.Contains(t, err, ErrRender.Error())
		})
	}
}

func TestRouter_NextPrevWrap(t *testing.T) {
	r := New(nil, Section{"a", "A"}, Section{"b", "B"})
	ctx := context.Background()

	r.Prev(ctx)
	assert.Equal(t, "b", r.Active().Name)
	r.Next(ctx)
	assert.Equal(t, "a", r.Active().Name)
}

func TestRouter_RegisterAddsSection(t *testing.T) {
	r := New(nil, Section{"a", "A"})
	r.Register("stats", nil)

	require.True(t, r.Navigate(context.Background(), "stats"))
	assert.Equal(t, "Stats", r.Active().Title)
}

func TestRouter_OnNavigate(t *testing.T) {
	r := New(nil)
	var seen []string
	r.OnNavigate(func(_ context.Context, s Section) { seen = append(seen, s.Name) })

	ctx := context.Background()
	r.Start(ctx)
	r.Navigate(ctx, Account)
	r.Navigate(ctx, "nope")

	assert.Equal(t, []string{Home, Account}, seen)
}
