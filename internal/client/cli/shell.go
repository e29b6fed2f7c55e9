package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// Shell runs REPL commands against an App.
type Shell struct {
	app    *app.App
	reader *bufio.Reader
	out    io.Writer
	cmds   map[string]command
}

// NewShell binds the commands to a and registers a render callback for every
// router section that prints it to out.
func NewShell(a *app.App, reader *bufio.Reader, out io.Writer) *Shell {
	s := &Shell{app: a, reader: reader, out: out}
	s.cmds = map[string]command{
		"help":           {"help", "show available commands", s.help},
		"home":           {"home", "show the dashboard", s.goTo(router.Home)},
		"go":             {"go <section>", "open a section", s.navigate},
		"list":           {"list <collection>", "list a collection", s.list},
		"add":            {"add <collection>", "add an item", s.add},
		"edit":           {"edit <collection> <n|id>", "edit an item", s.edit},
		"done":           {"done <collection> <n|id>", "toggle completed", s.toggle},
		"rm":             {"rm <collection> <n|id>...", "remove items", s.remove},
		"markall":        {"markall <collection>", "mark every item completed", s.markAll},
		"water":          {"water [ml]", "log a drink (250 ml by default)", s.water},
		"undo":           {"undo", "remove the last drink", s.undo},
		"goal":           {"goal <ml>", "set the daily water goal", s.goal},
		"select":         {"select <collection> <n|id>...", "toggle items in the selection", s.sel},
		"marksel":        {"marksel", "mark selected items completed", s.markSelected},
		"delsel":         {"delsel", "delete selected items", s.deleteSelected},
		"profile":        {"profile [edit]", "show or edit the profile", s.profile},
		"password":       {"password", "change the account password", s.password},
		"2fa":            {"2fa", "toggle two-factor authentication", s.twoFA},
		"sessions":       {"sessions", "list active sessions", s.sessions},
		"revoke":         {"revoke", "revoke every session", s.revoke},
		"delete-account": {"delete-account", "delete the account and all data", s.deleteAccount},
		"login":          {"login [email]", "sign in to the remote backend", s.login},
		"register":       {"register", "create a remote account", s.register},
		"logout":         {"logout", "forget the remote session", s.logout},
		"pull":           {"pull", "import remote items", s.pull},
		"push":           {"push", "upload local items", s.push},
		"newsletter":     {"newsletter <email>", "subscribe to the newsletter", s.newsletter},
		"export":         {"export [collection]", "export one collection or everything", s.export},
		"diag":           {"diag", "show diagnostics", s.diag},
		"reset":          {"reset", "erase all local data", s.reset},
	}

	a.Router.Register(router.Home, func(context.Context) error {
		writeHome(s.out, a.Summary())
		return nil
	})
	for _, m := range a.Modules() {
		m := m
		a.Router.Register(sectionOf(m.Key()), func(context.Context) error {
			writeList(s.out, m, a.Selection)
			return nil
		})
	}
	a.Router.Register(router.Account, func(context.Context) error {
		writeAccount(s.out, a.Account.Profile(), a.Account.Sessions())
		return nil
	})
	return s
}

func (s *Shell) Status() string {
	st := string(s.app.Mode())
	if s.app.Auth.Authenticated() {
		st += " signed-in"
	}
	if n := s.app.Selection.Count(); n > 0 {
		st += fmt.Sprintf(" %d selected", n)
	}
	return fmt.Sprintf("(%s) %s", st, s.app.Router.Active().Name)
}

func (s *Shell) Exec(ctx context.Context, cmd string, args []string) error {
	c, ok := s.cmds[cmd]
	if !ok {
		return errUnknownCommand
	}
	return c.run(ctx, args)
}

func (s *Shell) help(context.Context, []string) error {
	names := make([]string, 0, len(s.cmds))
	for n := range s.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := s.cmds[n]
		fmt.Fprintf(s.out, "  %-32s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(s.out, "  %-32s %s\n", "exit", "leave the program")
	fmt.Fprintln(s.out, "  collections: habits, meals, workouts, water, reminders")
	return nil
}

func (s *Shell) goTo(section string) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error {
		s.app.Router.Navigate(ctx, section)
		return nil
	}
}

func (s *Shell) navigate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("go")
	}
	name := strings.ToLower(args[0])
	if key, ok := collectionKey(name); ok {
		name = sectionOf(key)
	}
	if !s.app.Router.Navigate(ctx, name) {
		printlnFn("Unknown section:", args[0])
	}
	return nil
}

// module resolves the collection named by args[0].
func (s *Shell) module(cmd string, args []string, min int) (services.Module, error) {
	if len(args) < min {
		return nil, s.usage(cmd)
	}
	key, ok := collectionKey(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", args[0])
	}
	m, ok := s.app.Module(key)
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", args[0])
	}
	return m, nil
}

// resolve maps list positions (1-based, as printed) or raw ids to ids.
// Unknown references pass through unchanged and are ignored downstream.
func resolve(m services.Module, refs []string) []string {
	views := m.Views()
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if n, err := strconv.Atoi(r); err == nil && n >= 1 && n <= len(views) {
			ids = append(ids, views[n-1].ID)
			continue
		}
		ids = append(ids, r)
	}
	return ids
}

func (s *Shell) usage(cmd string) error {
	return fmt.Errorf("usage: %s", s.cmds[cmd].usage)
}

// invalid reports a validation failure that no service has shown yet.
func (s *Shell) invalid(err error) error {
	if errors.Is(err, common.ErrValidation) {
		s.app.Notifier.Show(err.Error())
	}
	return err
}

var collectionNames = map[string]models.CollectionKey{
	"habits":    models.KeyHabits,
	"habit":     models.KeyHabits,
	"meals":     models.KeyMeals,
	"meal":      models.KeyMeals,
	"workouts":  models.KeyWorkouts,
	"workout":   models.KeyWorkouts,
	"water":     models.KeyHydrationLog,
	"hydration": models.KeyHydrationLog,
	"reminders": models.KeyReminders,
	"reminder":  models.KeyReminders,
}

func collectionKey(name string) (models.CollectionKey, bool) {
	k, ok := collectionNames[strings.ToLower(name)]
	return k, ok
}

func sectionOf(key models.CollectionKey) string {
	if key == models.KeyHydrationLog {
		return router.Hydration
	}
	return string(key)
}
