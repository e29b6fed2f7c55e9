package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageFile     = "file"
	StorageMemory   = "memory"

	ExportFile = "file"
	ExportS3   = "s3"

	envPrefix = "fittracker"
)

type S3Config struct {
	Endpoint  string `split_words:"true"`
	Region    string `split_words:"true"`
	Bucket    string `split_words:"true"`
	Prefix    string `split_words:"true"`
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`
}

type LogConfig struct {
	Level   string `split_words:"true"`
	Format  string `split_words:"true"`
	Backend string `split_words:"true"`
	// File receives log output; empty means fittracker.log in DataDir.
	File string `split_words:"true"`
}

// Config holds runtime settings for the client.
type Config struct {
	// Storage selects the state store: sqlite, postgres, file or memory.
	Storage  string `split_words:"true"`
	DSN      string `split_words:"true"`
	DataDir  string `split_words:"true"`
	StateKey string `split_words:"true"`

	APIBaseURL          string        `split_words:"true"`
	RequestTimeout      time.Duration `split_words:"true"`
	OnlineCheckInterval time.Duration `split_words:"true"`
	ToastDuration       time.Duration `split_words:"true"`

	ExportTarget string   `split_words:"true"`
	ExportDir    string   `split_words:"true"`
	S3           S3Config `split_words:"true"`

	Log LogConfig `split_words:"true"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	dir := defaultDataDir()
	return &Config{
		Storage:             StorageSQLite,
		DataDir:             dir,
		StateKey:            common.DefaultStateKey,
		APIBaseURL:          "http://localhost:3006",
		RequestTimeout:      10 * time.Second,
		OnlineCheckInterval: 3 * time.Second,
		ToastDuration:       2400 * time.Millisecond,
		ExportTarget:        ExportFile,
		ExportDir:           ".",
		S3:                  S3Config{Region: "us-east-1"},
		Log: LogConfig{
			Level:   "info",
			Format:  "text",
			Backend: "slog",
		},
	}
}

func defaultDataDir() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "fittracker")
	}
	return ".fittracker"
}

// StateDSN is the data source for the configured SQL store. An empty DSN
// means a database file in DataDir for sqlite.
func (c *Config) StateDSN() string {
	if c.DSN != "" || c.Storage != StorageSQLite {
		return c.DSN
	}
	return filepath.Join(c.DataDir, "fittracker.db")
}

// LogPath is where log output goes. The terminal UI never logs to the
// screen.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "fittracker.log")
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile, StorageMemory:
	case StoragePostgres:
		if c.DSN == "" {
			return fmt.Errorf("storage %q requires a dsn", c.Storage)
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	switch c.ExportTarget {
	case ExportFile:
	case ExportS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("export target %q requires a bucket", c.ExportTarget)
		}
	default:
		return fmt.Errorf("unknown export target %q", c.ExportTarget)
	}

	if c.RequestTimeout <= 0 || c.OnlineCheckInterval <= 0 || c.ToastDuration <= 0 {
		return fmt.Errorf("durations must be positive")
	}
	return nil
}

// LoadOptions names the optional sources of Load.
type LoadOptions struct {
	File  string
	Flags *pflag.FlagSet
}

// Load builds a Config from defaults, the file, the environment and the
// changed flags, in that order, and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Defaults()

	if opts.File != "" {
		if err := parseFile(cfg, opts.File); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if opts.Flags != nil {
		if err := applyFlags(cfg, opts.Flags); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
