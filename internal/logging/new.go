package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"

	FormatText = "text"
	FormatJSON = "json"
)

// Options selects and configures a Logger backend.
type Options struct {
	Backend string
	Level   string
	Format  string
	Output  io.Writer
}

// New builds a Logger for the given options. Unknown backends and levels are
// reported as errors rather than silently defaulted.
func New(opts Options) (Logger, error) {
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(orDefault(opts.Level, "info"))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		ho := &slog.HandlerOptions{Level: lvl}
		var h slog.Handler
		if strings.EqualFold(opts.Format, FormatJSON) {
			h = slog.NewJSONHandler(opts.Output, ho)
		} else {
			h = slog.NewTextHandler(opts.Output, ho)
		}
		return NewSlogLogger(slog.New(h)), nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		var enc zapcore.Encoder
		if strings.EqualFold(opts.Format, FormatJSON) {
			enc = zapcore.NewJSONEncoder(encCfg)
		} else {
			enc = zapcore.NewConsoleEncoder(encCfg)
		}
		core := zapcore.NewCore(enc, zapcore.AddSync(opts.Output), lvl)
		return NewZapLogger(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
