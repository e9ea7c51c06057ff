// Package log provides slog logger presets used by the codec and the CLI.
package log

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(fi fs.FileInfo) slog.Value {
		return slog.GroupValue(
			slog.String("name", fi.Name()),
			slog.Int64("size", fi.Size()),
			slog.Time("mod_time", fi.ModTime()),
		)
	}),
)

// Options configures loggers built by [New].
type Options struct {
	// Level is the minimum enabled level.
	Level slog.Leveler
	// Dev switches to the human-friendly development handler.
	Dev bool
	// AddSource adds the caller location to every record.
	AddSource bool
}

// New builds a logger writing to w.
// The console handler is used by default, the devslog handler when opts.Dev is set.
func New(w io.Writer, opts *Options) *slog.Logger {
	if opts == nil {
		opts = &Options{}
	}
	lvl := opts.Level
	if lvl == nil {
		lvl = slog.LevelInfo
	}
	if opts.Dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: opts.AddSource,
					Level:     lvl,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  opts.AddSource,
			Level:      lvl,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// ParseLevel converts a textual level (debug, info, warn, error) into [slog.Level].
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errtrace.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	cv := v.fn()
	switch cv := cv.(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using a fn only when the record is handled.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }
