package client

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fittracker/internal/client/migrations"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories/state"
	"github.com/dmitrijs2005/fittracker/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Repositories bundles the database handle with the repositories built on it.
type Repositories struct {
	DB    *sql.DB
	State state.Repository
}

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	var (
		fsys    embed.FS
		dir     string
		dialect string
	)
	switch driver {
	case DriverSQLite:
		fsys, dir, dialect = migrations.SQLite, "sqlite", "sqlite3"
	case DriverPostgres:
		fsys, dir, dialect = migrations.Postgres, "postgres", "postgres"
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dir)
}

// InitDatabase opens the database, migrates it and wires the repositories.
func InitDatabase(ctx context.Context, driver, dsn string) (*Repositories, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// one writer keeps sqlite from returning SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := &Repositories{DB: db}
	switch driver {
	case DriverPostgres:
		repos.State = state.NewPostgresRepository(db)
	default:
		repos.State = state.NewSQLiteRepository(db)
	}
	return repos, nil
}

// Wipe deletes every stored key, the document and the auth token alike, in
// one transaction.
func (r *Repositories) Wipe(ctx context.Context, driver string) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var repo state.Repository
		if driver == DriverPostgres {
			repo = state.NewPostgresRepository(tx)
		} else {
			repo = state.NewSQLiteRepository(tx)
		}
		keys, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for k := range keys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
