// Package router switches between the named sections of the UI. Exactly one
// section is active at a time and its render callback runs every time it
// becomes active.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

// ErrRender wraps failures of a section's render callback. It is logged,
// never returned to the caller of Navigate.
var ErrRender = errors.New("render failed")

const (
	Home      = "home"
	Habits    = "habits"
	Meals     = "meals"
	Workouts  = "workouts"
	Hydration = "hydration"
	Reminders = "reminders"
	Account   = "account"
)

type Section struct {
	Name  string
	Title string
}

// DefaultSections in navigation order; the first one is the initial section.
var DefaultSections = []Section{
	{Home, "Home"},
	{Habits, "Habits"},
	{Meals, "Meals"},
	{Workouts, "Workouts"},
	{Hydration, "Hydration"},
	{Reminders, "Reminders"},
	{Account, "Account"},
}

type RenderFunc func(ctx context.Context) error

type Hook func(ctx context.Context, s Section)

type Router struct {
	sections  []Section
	renderers map[string]RenderFunc
	active    int
	logger    logging.Logger
	hooks     []Hook
}

// New builds a router over sections, or DefaultSections when none are given.
func New(logger logging.Logger, sections ...Section) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(sections) == 0 {
		sections = DefaultSections
	}
	s := make([]Section, len(sections))
	copy(s, sections)
	return &Router{
		sections:  s,
		renderers: make(map[string]RenderFunc),
		logger:    logger.With("component", "router"),
	}
}

// Register sets the render callback of name, adding the section when it is
// not known yet.
func (r *Router) Register(name string, fn RenderFunc) {
	if r.index(name) < 0 {
		r.sections = append(r.sections, Section{Name: name, Title: titleCase(name)})
	}
	r.renderers[name] = fn
}

func (r *Router) OnNavigate(h Hook) { r.hooks = append(r.hooks, h) }

func (r *Router) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

func (r *Router) Active() Section { return r.sections[r.active] }

// Title is the window title for the active section.
func (r *Router) Title() string {
	return common.AppName + " — " + r.Active().Title
}

// Start activates the initial section.
func (r *Router) Start(ctx context.Context) {
	r.activate(ctx, 0)
}

// Navigate activates name and renders it. Unknown names are logged and
// change nothing.
func (r *Router) Navigate(ctx context.Context, name string) bool {
	i := r.index(name)
	if i < 0 {
		r.logger.Warn(ctx, "unknown section", "section", name)
		return false
	}
	r.activate(ctx, i)
	return true
}

func (r *Router) Next(ctx context.Context) { r.activate(ctx, (r.active+1)%len(r.sections)) }

func (r *Router) Prev(ctx context.Context) {
	r.activate(ctx, (r.active-1+len(r.sections))%len(r.sections))
}

// Refresh re-renders the active section.
func (r *Router) Refresh(ctx context.Context) {
	r.render(ctx, r.Active())
}

func (r *Router) activate(ctx context.Context, i int) {
	r.active = i
	s := r.sections[i]
	r.logger.Debug(ctx, "navigate", "section", s.Name)
	for _, h := range r.hooks {
		h(ctx, s)
	}
	r.render(ctx, s)
}

func (r *Router) render(ctx context.Context, s Section) {
	fn := r.renderers[s.Name]
	if fn == nil {
		return
	}
	if err := safeRender(ctx, fn); err != nil {
		r.logger.Error(ctx, "section render failed", "section", s.Name, "err", fmt.Errorf("%w: %w", ErrRender, err))
	}
}

func safeRender(ctx context.Context, fn RenderFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

func (r *Router) index(name string) int {
	for i, s := range r.sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
