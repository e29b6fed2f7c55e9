package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
)

// Run starts the full-screen interface and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, opts ...app.Option) error {
	host := &focusHost{}
	surface := &programSurface{}

	a, err := app.New(ctx, cfg, append([]app.Option{app.WithModalHost(host), app.WithToastSurface(surface)}, opts...)...)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, a, host)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.attach(p.Send)
	a.OnModeChange(func(mode app.Mode) { p.Send(modeMsg(mode)) })

	go a.StartOnlineStatusWatcher(ctx, cfg.OnlineCheckInterval)
	go a.CheckOnline(ctx)

	_, err = p.Run()
	return err
}
