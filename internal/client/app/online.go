package app

import (
	"context"
	"time"
)

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// OnModeChange registers fn to run after every mode switch.
func (a *App) OnModeChange(fn func(Mode)) {
	a.mu.Lock()
	a.onMode = append(a.onMode, fn)
	a.mu.Unlock()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	if a.mode == mode {
		a.mu.Unlock()
		return
	}
	a.mode = mode
	hooks := append([]func(Mode){}, a.onMode...)
	a.mu.Unlock()

	a.Logger.Info(ctx, "switched mode", "mode", mode)
	for _, fn := range hooks {
		fn(mode)
	}
}

// CheckOnline pings the backend once and updates the mode.
func (a *App) CheckOnline(ctx context.Context) Mode {
	if a.Mode() == ModeDisabled {
		return ModeDisabled
	}
	pctx, cancel := context.WithTimeout(ctx, a.Config.RequestTimeout)
	err := a.Auth.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}
	return a.Mode()
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done. It returns at once when the backend is disabled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.Mode() == ModeDisabled {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.CheckOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
