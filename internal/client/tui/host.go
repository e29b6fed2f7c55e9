package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

const rowPrefix = "row:"

// focusHost is the modal's view of the screen. Outside a dialog the focused
// element is the list row under the cursor, so closing a dialog puts the
// cursor back where it was.
type focusHost struct {
	focus  string
	inert  bool
	locked bool
}

func (h *focusHost) ActiveElement() string      { return h.focus }
func (h *focusHost) Focus(id string)            { h.focus = id }
func (h *focusHost) SetInert(inert bool)        { h.inert = inert }
func (h *focusHost) SetScrollLocked(locked bool) { h.locked = locked }

// row returns the entity id under the main cursor, if any.
func (h *focusHost) row() (string, bool) {
	return strings.CutPrefix(h.focus, rowPrefix)
}

type redrawMsg struct{}

// programSurface asks the running program to redraw when a notification
// appears or expires. The text itself is read from the notification center.
type programSurface struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *programSurface) attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *programSurface) redraw() {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		// Display runs inside Update, where a blocking Send would deadlock
		go send(redrawMsg{})
	}
}

func (s *programSurface) Display(string) { s.redraw() }
func (s *programSurface) Dismiss()       { s.redraw() }
