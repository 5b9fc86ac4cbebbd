// Package ctxlog carries a structured logger in a context.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config selects the minimum level that is logged.
type Config struct {
	Level string `yaml:"level"`
}

var (
	setup = false
	level = &slog.LevelVar{}
)

// newHandler writes JSON records at the current level, with durations
// rendered the way time.Duration prints them.
func newHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindDuration {
				a.Value = slog.StringValue(a.Value.Duration().String())
			}
			return a
		},
	})
}

// Setup installs a logger writing to stderr and to log/<name>-<time>.log
// as the default logger and stores it in ctx.
// Later calls reuse the logger from the first one.
func Setup(ctx context.Context, name string) context.Context {
	if setup {
		return Store(ctx, slog.Default())
	}

	if err := os.MkdirAll("log", 0755); err != nil {
		panic(fmt.Errorf("ctxlog: create log dir: %w", err))
	}

	stamp := time.Now().Format("2006-01-02-15-04-05")
	logFile, err := os.Create(filepath.Join("log", name+"-"+stamp+".log"))
	if err != nil {
		panic(fmt.Errorf("ctxlog: create log file: %w", err))
	}

	logger := slog.New(newHandler(io.MultiWriter(os.Stderr, logFile))).With("app", name)
	slog.SetDefault(logger)
	setup = true

	return Store(ctx, logger)
}

// Apply sets the level of every logger built by Setup.
// An empty level leaves it at info.
func Apply(config Config) error {
	if config.Level == "" {
		level.Set(slog.LevelInfo)
		return nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(config.Level)); err != nil {
		return fmt.Errorf("ctxlog: level %q: %w", config.Level, err)
	}
	level.Set(l)
	return nil
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(key).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}

// Close closes closer, logging a failure under name.
func Close(ctx context.Context, name string, closer io.Closer) error {
	err := closer.Close()
	if err != nil {
		Get(ctx).Error("failed to close", "closer", name, "error", err)
	}
	return err
}
