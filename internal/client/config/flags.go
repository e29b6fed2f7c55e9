package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagStorage        = "storage"
	FlagDSN            = "dsn"
	FlagDataDir        = "data-dir"
	FlagStateKey       = "state-key"
	FlagAPIBaseURL     = "api-url"
	FlagRequestTimeout = "timeout"
	FlagOnlineInterval = "online-interval"
	FlagToastDuration  = "toast-duration"
	FlagExportTarget   = "export-target"
	FlagExportDir      = "export-dir"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagLogBackend     = "log-backend"
	FlagLogFile        = "log-file"
)

// RegisterFlags defines the configuration flags on fs. The displayed
// defaults are the built-in ones; Load only applies flags that were set.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(FlagStorage, d.Storage, "state store: sqlite, postgres, file or memory")
	fs.String(FlagDSN, d.DSN, "database DSN for sqlite or postgres")
	fs.String(FlagDataDir, d.DataDir, "directory for the local database, state files and logs")
	fs.String(FlagStateKey, d.StateKey, "key the document is stored under")
	fs.StringP(FlagAPIBaseURL, "a", d.APIBaseURL, "base URL of the remote API")
	fs.Duration(FlagRequestTimeout, d.RequestTimeout, "remote request timeout")
	fs.DurationP(FlagOnlineInterval, "i", d.OnlineCheckInterval, "online status check interval")
	fs.Duration(FlagToastDuration, d.ToastDuration, "how long notifications stay visible")
	fs.String(FlagExportTarget, d.ExportTarget, "export target: file or s3")
	fs.String(FlagExportDir, d.ExportDir, "directory for file exports")
	fs.String(FlagLogLevel, d.Log.Level, "log level: debug, info, warn or error")
	fs.String(FlagLogFormat, d.Log.Format, "log format: text or json")
	fs.String(FlagLogBackend, d.Log.Backend, "log backend: slog or zap")
	fs.String(FlagLogFile, "", "log file (default fittracker.log in the data dir)")
}

// applyFlags copies the flags that were explicitly set on fs into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		FlagStorage:      &cfg.Storage,
		FlagDSN:          &cfg.DSN,
		FlagDataDir:      &cfg.DataDir,
		FlagStateKey:     &cfg.StateKey,
		FlagAPIBaseURL:   &cfg.APIBaseURL,
		FlagExportTarget: &cfg.ExportTarget,
		FlagExportDir:    &cfg.ExportDir,
		FlagLogLevel:     &cfg.Log.Level,
		FlagLogFormat:    &cfg.Log.Format,
		FlagLogBackend:   &cfg.Log.Backend,
		FlagLogFile:      &cfg.Log.File,
	}
	for name, dst := range strs {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		FlagRequestTimeout: &cfg.RequestTimeout,
		FlagOnlineInterval: &cfg.OnlineCheckInterval,
		FlagToastDuration:  &cfg.ToastDuration,
	}
	for name, dst := range durations {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetDuration(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
