package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

// consoleSurface prints notifications inline. Dismissal is a no-op: the
// message has already scrolled by.
type consoleSurface struct{}

func (consoleSurface) Display(msg string) { printlnFn("* " + msg) }
func (consoleSurface) Dismiss()           {}

// Run builds the application, starts the connectivity watcher and runs the
// REPL on in until the user exits.
func Run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, opts ...app.Option) error {
	a, err := app.New(ctx, cfg, append([]app.Option{app.WithToastSurface(consoleSurface{})}, opts...)...)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.OnModeChange(func(m app.Mode) { printlnFn("Switched to", string(m), "mode") })
	go a.StartOnlineStatusWatcher(ctx, cfg.OnlineCheckInterval)

	reader := bufio.NewReader(in)
	sh := NewShell(a, reader, out)

	printlnFn("Welcome to " + common.AppName + " (type 'help' for commands)")
	a.Router.Start(ctx)
	runREPL(ctx, sh, reader)
	return nil
}
