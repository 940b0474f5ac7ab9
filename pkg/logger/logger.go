// Package logger builds the scorer's slog logger: everything to a log file,
// errors mirrored to the console.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const DefaultFile = "clef_evaluation.log"

type Config struct {
	// File is truncated on every run. Empty disables the file log.
	File         string
	Format       string // text or json
	FileLevel    slog.Level
	ConsoleLevel slog.Level
}

func DefaultConfig() Config {
	return Config{
		File:         DefaultFile,
		Format:       "text",
		FileLevel:    slog.LevelDebug,
		ConsoleLevel: slog.LevelError,
	}
}

// New returns a logger writing to cfg.File and to console. The returned
// closer releases the log file.
func New(cfg Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		h, err := handler(cfg.Format, f, cfg.FileLevel)
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		handlers = append(handlers, h)
		closer = f
	}

	if console != nil {
		h, err := handler(cfg.Format, console, cfg.ConsoleLevel)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		handlers = append(handlers, h)
	}

	return slog.New(Fanout(handlers...)), closer, nil
}

func handler(format string, w io.Writer, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Fanout passes every record to each handler that accepts its level.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanout(handlers)
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
