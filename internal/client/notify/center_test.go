package notify

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeTimer struct {
	fn      func()
	d       time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{fn: f, d: d}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the i-th timer callback even if it was stopped, the way a timer
// that already fired races with Stop.
func (c *fakeClock) fire(i int) { c.timers[i].fn() }

type recordingSurface struct {
	mu        sync.Mutex
	shown     []string
	dismissed int
}

func (s *recordingSurface) Display(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, msg)
}

func (s *recordingSurface) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed++
}

func (s *recordingSurface) dismissCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissed
}

type panickingSurface struct{}

func (panickingSurface) Display(string) { panic("no element") }
func (panickingSurface) Dismiss()       { panic("no element") }

func newTestLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func TestShow_DisplaysAndUsesDefaultDuration(t *testing.T) {
	clock := &fakeClock{}
	surface := &recordingSurface{}
	c := New(surface, nil, WithClock(clock))

	c.Show("Habit added")

	assert.Equal(t, []string{"Habit added"}, surface.shown)
	require.Len(t, clock.timers, 1)
	assert.Equal(t, DefaultDuration, clock.timers[0].d)

	msg, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "Habit added", msg)
}

func TestShow_ReplacesAndRestartsTimer(t *testing.T) {
	clock := &fakeClock{}
	surface := &recordingSurface{}
	c := New(surface, nil, WithClock(clock), WithDuration(time.Second))

	c.Show("first")
	c.ShowFor("second", 5*time.Second)

	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped)
	assert.Equal(t, 5*time.Second, clock.timers[1].d)

	// a stale timer firing late must not hide the newer message
	clock.fire(0)
	msg, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "second", msg)
	assert.Equal(t, 0, surface.dismissCount())

	clock.fire(1)
	_, ok = c.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, surface.dismissCount())
}

func TestShow_NoSurfaceFallsBackToLogger(t *testing.T) {
	logger, buf := newTestLogger()
	c := New(nil, logger, WithClock(&fakeClock{}))

	assert.NotPanics(t, func() { c.Show("Saved") })
	assert.Contains(t, buf.String(), "message=Saved")
}

func TestShow_PanickingSurfaceIsContained(t *testing.T) {
	logger, buf := newTestLogger()
	clock := &fakeClock{}
	c := New(panickingSurface{}, logger, WithClock(clock))

	assert.NotPanics(t, func() {
		c.Show("Saved")
		clock.fire(0)
	})
	assert.Contains(t, buf.String(), "toast surface failed")
}

func TestSetSurface_SwitchesTarget(t *testing.T) {
	clock := &fakeClock{}
	c := New(nil, nil, WithClock(clock))
	s := &recordingSurface{}

	c.SetSurface(s)
	c.Show("hi")

	assert.Equal(t, []string{"hi"}, s.shown)
}

func TestRealClock_DismissesWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	surface := &recordingSurface{}
	c := New(surface, nil)

	c.ShowFor("short", 10*time.Millisecond)
	c.ShowFor("shorter", 5*time.Millisecond)

	require.Eventually(t, func() bool { return surface.dismissCount() == 1 }, time.Second, 5*time.Millisecond)
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestClose_CancelsPendingDismissal(t *testing.T) {
	defer goleak.VerifyNone(t)

	surface := &recordingSurface{}
	c := New(surface, nil)

	c.ShowFor("sticky", time.Hour)
	c.Close()

	assert.Equal(t, 0, surface.dismissCount())
}
