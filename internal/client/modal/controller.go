// Package modal manages a single scoped overlay with a focus trap.
//
// While a modal is open the rest of the surface is inert and does not
// scroll; focus cycles only between the modal's focusable elements. Closing
// the modal restores focus to whatever held it before the first Open.
package modal

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// Content is what a modal displays. Focusables returns element ids in tab
// order.
type Content interface {
	Empty() bool
	Focusables() []string
}

// Host is the surface the modal sits on.
type Host interface {
	ActiveElement() string
	Focus(id string)
	SetInert(inert bool)
	SetScrollLocked(locked bool)
}

type Key int

const (
	KeyEscape Key = iota
	KeyTab
	KeyShiftTab
)

type Options struct {
	// OnClose runs once when this content is closed. It is dropped, not
	// called, when the content is replaced by another Open.
	OnClose func()
}

type Hook func(c Content)

type Controller struct {
	host   Host
	logger logging.Logger

	open      bool
	content   Content
	onClose   func()
	prevFocus string
	focused   string

	openHooks  []Hook
	closeHooks []Hook
}

func NewController(host Host, logger logging.Logger) *Controller {
	if host == nil {
		host = nopHost{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{host: host, logger: logger.With("component", "modal")}
}

func (c *Controller) OnOpen(h Hook)  { c.openHooks = append(c.openHooks, h) }
func (c *Controller) OnClose(h Hook) { c.closeHooks = append(c.closeHooks, h) }

func (c *Controller) IsOpen() bool     { return c.open }
func (c *Controller) Content() Content { return c.content }
func (c *Controller) Focused() string  { return c.focused }

// Open shows content. Empty content is rejected with a warning. Opening while
// already open swaps the content and keeps the originally captured focus.
func (c *Controller) Open(content Content, opts Options) bool {
	if content == nil || content.Empty() {
		c.logger.Warn(context.Background(), "modal open ignored: empty content")
		return false
	}

	if !c.open {
		c.prevFocus = c.host.ActiveElement()
		c.host.SetInert(true)
		c.host.SetScrollLocked(true)
		c.open = true
	}

	c.content = content
	c.onClose = opts.OnClose
	c.focusFirst()

	for _, h := range c.openHooks {
		h(content)
	}
	return true
}

// Close clears the content, restores focus and releases the trap, then runs
// the stored OnClose. OnClose may open a follow-up modal; that modal stays
// open. Closing a closed modal does nothing.
func (c *Controller) Close() {
	if !c.open {
		return
	}

	cb := c.onClose
	content := c.content
	c.onClose = nil

	c.content = nil
	c.focused = ""
	c.open = false
	c.host.SetInert(false)
	c.host.SetScrollLocked(false)
	if c.prevFocus != "" {
		c.host.Focus(c.prevFocus)
	}
	c.prevFocus = ""

	for _, h := range c.closeHooks {
		h(content)
	}
	if cb != nil {
		cb()
	}
}

// HandleKey applies Escape and Tab handling. It reports whether the key was
// consumed.
func (c *Controller) HandleKey(k Key) bool {
	if !c.open {
		return false
	}
	switch k {
	case KeyEscape:
		c.Close()
		return true
	case KeyTab:
		c.cycle(1)
		return true
	case KeyShiftTab:
		c.cycle(-1)
		return true
	}
	return false
}

// ClickBackdrop closes the modal, like a click outside its box.
func (c *Controller) ClickBackdrop() {
	c.Close()
}

// Focus moves focus to id when it belongs to the modal.
func (c *Controller) Focus(id string) bool {
	if !c.open || !slices.Contains(c.content.Focusables(), id) {
		return false
	}
	c.setFocus(id)
	return true
}

// Refresh re-validates focus after the content changed its focusables.
func (c *Controller) Refresh() {
	if !c.open {
		return
	}
	if !slices.Contains(c.content.Focusables(), c.focused) {
		c.focusFirst()
	}
}

func (c *Controller) focusFirst() {
	ids := c.content.Focusables()
	if len(ids) == 0 {
		c.focused = ""
		return
	}
	c.setFocus(ids[0])
}

func (c *Controller) cycle(step int) {
	ids := c.content.Focusables()
	if len(ids) == 0 {
		return
	}
	i := slices.Index(ids, c.focused)
	if i < 0 {
		// focus escaped the box; pull it back in
		c.setFocus(ids[0])
		return
	}
	c.setFocus(ids[(i+step+len(ids))%len(ids)])
}

func (c *Controller) setFocus(id string) {
	c.focused = id
	c.host.Focus(id)
}

type nopHost struct{}

func (nopHost) ActiveElement() string { return "" }
func (nopHost) Focus(string)          {}
func (nopHost) SetInert(bool)         {}
func (nopHost) SetScrollLocked(bool)  {}
