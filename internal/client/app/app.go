// Package app assembles the client: storage, state, services and the
// online status watcher, from one Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/dmitrijs2005/fittracker/internal/client/diag"
	"github.com/dmitrijs2005/fittracker/internal/client/home"
	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/modal"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/notify"
	"github.com/dmitrijs2005/fittracker/internal/client/persistence"
	"github.com/dmitrijs2005/fittracker/internal/client/router"
	"github.com/dmitrijs2005/fittracker/internal/client/services"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/filex"
	"github.com/dmitrijs2005/fittracker/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type options struct {
	host      modal.Host
	surface   notify.Surface
	logOutput io.Writer
	store     persistence.Store
	api       client.Client
	now       func() time.Time
}

type Option func(*options)

// WithModalHost sets the surface the modal controller drives.
func WithModalHost(h modal.Host) Option { return func(o *options) { o.host = h } }

// WithToastSurface sets where notifications are displayed.
func WithToastSurface(s notify.Surface) Option { return func(o *options) { o.surface = s } }

// WithLogOutput sends log output to w instead of the configured log file.
func WithLogOutput(w io.Writer) Option { return func(o *options) { o.logOutput = w } }

// WithStore replaces the configured storage backend.
func WithStore(s persistence.Store) Option { return func(o *options) { o.store = s } }

// WithAPIClient replaces the REST client.
func WithAPIClient(c client.Client) Option { return func(o *options) { o.api = c } }

func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

type App struct {
	Config   *config.Config
	Logger   logging.Logger
	State    *state.AppState
	Notifier *notify.Center
	Modal    *modal.Controller
	Router   *router.Router
	Diag     *diag.Recorder

	Habits    *services.Collection[models.Habit]
	Meals     *services.Collection[models.Meal]
	Workouts  *services.Collection[models.Workout]
	Reminders *services.Collection[models.Reminder]
	Hydration *services.HydrationService
	Selection *services.Selection
	Quick     *services.QuickActions

	Account services.AccountService
	Auth    services.AuthService
	Sync    services.SyncService
	Export  *services.ExportService

	modules []services.Module
	store   persistence.Store
	repos   *client.Repositories
	logFile *os.File
	now     func() time.Time

	mu     sync.Mutex
	mode   Mode
	onMode []func(Mode)
}

// New builds the application. A stored document that cannot be decoded is
// logged and replaced by defaults; any other setup failure is returned.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, f := range opts {
		f(&o)
	}

	a := &App{Config: cfg, now: o.now, mode: ModeOffline}
	if cfg.APIBaseURL == "" {
		a.mode = ModeDisabled
	}

	if err := a.openLogger(o.logOutput); err != nil {
		return nil, err
	}

	a.store = o.store
	if a.store == nil {
		if err := a.openStore(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Notifier = notify.New(o.surface, a.Logger, notify.WithDuration(cfg.ToastDuration))
	a.State = state.New(persistence.NewAdapter(a.store, cfg.StateKey), a.Notifier, a.Logger)
	if err := a.State.Load(ctx); err != nil && !state.IsDecodeError(err) {
		a.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	a.Modal = modal.NewController(o.host, a.Logger)
	a.Router = router.New(a.Logger)
	a.Diag = diag.NewRecorder(a.Logger, diag.DefaultCapacity)
	a.Diag.Attach(a.State, a.Modal, a.Router)

	a.Habits = services.NewCollection[models.Habit](a.State, kinds.Habits{}, a.Notifier)
	a.Meals = services.NewCollection[models.Meal](a.State, kinds.Meals{}, a.Notifier)
	a.Workouts = services.NewCollection[models.Workout](a.State, kinds.Workouts{}, a.Notifier)
	a.Reminders = services.NewCollection[models.Reminder](a.State, kinds.Reminders{}, a.Notifier)
	a.Hydration = services.NewHydrationService(a.State, a.Notifier)

	a.modules = []services.Module{
		services.NewModule[models.Habit](a.Habits, kinds.Habits{}, true),
		services.NewModule[models.Meal](a.Meals, kinds.Meals{}, true),
		services.NewModule[models.Workout](a.Workouts, kinds.Workouts{}, true),
		services.NewModule[models.HydrationEntry](a.Hydration.Log(), kinds.Hydration{}, false),
		services.NewModule[models.Reminder](a.Reminders, kinds.Reminders{}, true),
	}

	a.Selection = services.NewSelection()
	a.Quick = services.NewQuickActions(a.Selection, a.Notifier, a.Habits, a.Meals, a.Workouts, a.Reminders)

	api := o.api
	if api == nil {
		api = client.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout)
	}
	a.Account = services.NewAccountService(a.State, a.Notifier)
	a.Auth = services.NewAuthService(api, a.store)
	a.Sync = services.NewSyncService(api, a.Auth, a.State, a.Notifier, a.Logger)

	if _, err := a.Auth.Restore(ctx); err != nil {
		a.Logger.Warn(ctx, "token restore failed", "error", err)
	}

	sink, err := a.exportSink(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Export = services.NewExportService(a.State, sink, a.Notifier)

	a.Logger.Info(ctx, "client started", "storage", cfg.Storage, "mode", a.mode)
	return a, nil
}

func (a *App) openLogger(w io.Writer) error {
	if w == nil {
		path := a.Config.LogPath()
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}

	l, err := logging.New(logging.Options{
		Backend: a.Config.Log.Backend,
		Level:   a.Config.Log.Level,
		Format:  a.Config.Log.Format,
		Output:  w,
	})
	if err != nil {
		if a.logFile != nil {
			_ = a.logFile.Close()
		}
		return err
	}
	a.Logger = l
	return nil
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config
	switch cfg.Storage {
	case config.StorageMemory:
		a.store = persistence.NewMemoryStore()
	case config.StorageFile:
		s, err := persistence.NewFileStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("file store: %w", err)
		}
		a.store = s
	case config.StorageSQLite, config.StoragePostgres:
		if cfg.Storage == config.StorageSQLite {
			if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
				return fmt.Errorf("data dir: %w", err)
			}
		}
		repos, err := client.InitDatabase(ctx, a.driver(), cfg.StateDSN())
		if err != nil {
			return fmt.Errorf("error initializing database: %w", err)
		}
		a.repos = repos
		a.store = repos.State
	default:
		return fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	return nil
}

func (a *App) driver() string {
	if a.Config.Storage == config.StoragePostgres {
		return client.DriverPostgres
	}
	return client.DriverSQLite
}

func (a *App) exportSink(ctx context.Context) (services.Sink, error) {
	if a.Config.ExportTarget != config.ExportS3 {
		return services.NewFileSink(a.Config.ExportDir), nil
	}
	s3 := a.Config.S3
	return services.NewS3Sink(ctx, services.S3Config{
		Endpoint:  s3.Endpoint,
		Region:    s3.Region,
		Bucket:    s3.Bucket,
		Prefix:    s3.Prefix,
		AccessKey: s3.AccessKey,
		SecretKey: s3.SecretKey,
	})
}

// Modules returns the list surfaces in navigation order.
func (a *App) Modules() []services.Module {
	out := make([]services.Module, len(a.modules))
	copy(out, a.modules)
	return out
}

// Module finds the list surface for key.
func (a *App) Module(key models.CollectionKey) (services.Module, bool) {
	for _, m := range a.modules {
		if m.Key() == key {
			return m, true
		}
	}
	return nil, false
}

// Summary aggregates the home dashboard for the current moment.
func (a *App) Summary() home.Summary {
	return home.Summarize(a.State.Document(), a.now())
}

// Reset drops the session token and every stored record, then starts over
// from defaults.
func (a *App) Reset(ctx context.Context) error {
	var errs []error
	if err := a.Auth.Logout(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.repos != nil {
		if err := a.repos.Wipe(ctx, a.driver()); err != nil {
			errs = append(errs, fmt.Errorf("wipe: %w", err))
		}
	}
	a.Selection.Clear()
	if err := a.State.Reset(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) Close() {
	if a.Notifier != nil {
		a.Notifier.Close()
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil && a.Logger != nil {
			a.Logger.Error(context.Background(), "close database", "error", err)
		}
	}
	if z, ok := a.Logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
