// Package notify implements the toast channel: a single ephemeral message
// that replaces the previous one and dismisses itself after a delay.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/logging"
)

const DefaultDuration = 2400 * time.Millisecond

// Surface displays and hides the current message.
type Surface interface {
	Display(msg string)
	Dismiss()
}

type Timer interface {
	Stop() bool
}

// Clock schedules dismissals. The zero Center uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Center is safe for concurrent use; dismissal timers fire on their own
// goroutine.
type Center struct {
	mu       sync.Mutex
	surface  Surface
	logger   logging.Logger
	clock    Clock
	duration time.Duration

	timer   Timer
	gen     uint64
	current string
	visible bool
}

type Option func(*Center)

func WithClock(c Clock) Option {
	return func(n *Center) { n.clock = c }
}

// WithDuration sets the default display time used by Show.
func WithDuration(d time.Duration) Option {
	return func(n *Center) {
		if d > 0 {
			n.duration = d
		}
	}
}

// New returns a Center. surface may be nil, in which case messages go to the
// logger.
func New(surface Surface, logger logging.Logger, opts ...Option) *Center {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Center{
		surface:  surface,
		logger:   logger,
		clock:    realClock{},
		duration: DefaultDuration,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetSurface attaches or detaches the display surface.
func (c *Center) SetSurface(s Surface) {
	c.mu.Lock()
	c.surface = s
	c.mu.Unlock()
}

func (c *Center) Show(msg string) {
	c.ShowFor(msg, 0)
}

// ShowFor displays msg for d (the default when d <= 0), replacing any current
// message and restarting the dismissal timer.
func (c *Center) ShowFor(msg string, d time.Duration) {
	if d <= 0 {
		d = c.duration
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.current = msg
	c.visible = true
	surface := c.surface
	c.timer = c.clock.AfterFunc(d, func() { c.expire(gen) })
	c.mu.Unlock()

	if surface == nil {
		c.logger.Info(context.Background(), "toast", "message", msg)
		return
	}
	c.safely(surface.Display, msg)
}

// Current returns the message on screen, if any.
func (c *Center) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.visible
}

// Close stops a pending dismissal.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Center) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		// superseded by a later Show
		c.mu.Unlock()
		return
	}
	c.current = ""
	c.visible = false
	c.timer = nil
	surface := c.surface
	c.mu.Unlock()

	if surface != nil {
		c.safely(func(string) { surface.Dismiss() }, "")
	}
}

func (c *Center) safely(fn func(string), msg string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn(context.Background(), "toast surface failed",
				"message", msg, "panic", fmt.Sprint(r))
		}
	}()
	fn(msg)
}
