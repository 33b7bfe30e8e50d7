// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the go-ethereum slog logger. Package level
// loggers are created with WithContext and resolve the root logger lazily, so
// SetDefault may be called after they are declared.
package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Legacy verbosity levels accepted on the command line (0-9).
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pairs.
type Logger interface {
	With(ctx ...any) Logger
	Enabled(level slog.Level) bool

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// FromLegacyLevel converts a 0-9 verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= LegacyLevelCrit:
		return LevelCrit
	case lvl == LegacyLevelError:
		return LevelError
	case lvl == LegacyLevelWarn:
		return LevelWarn
	case lvl == LegacyLevelInfo:
		return LevelInfo
	case lvl == LegacyLevelDebug:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// NewTerminalHandler returns a human readable handler filtered at lvl.
// Changes to lvl take effect on records logged afterwards.
func NewTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) slog.Handler {
	return &leveledHandler{ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor), lvl}
}

// JSONHandler returns a JSON handler filtered at lvl.
func JSONHandler(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &leveledHandler{ethlog.JSONHandlerWithLevel(wr, LevelTrace), lvl}
}

// leveledHandler filters records at a level read on every call.
type leveledHandler struct {
	inner slog.Handler
	level slog.Leveler
}

func (h *leveledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *leveledHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveledHandler{h.inner.WithAttrs(attrs), h.level}
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return &leveledHandler{h.inner.WithGroup(name), h.level}
}

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// Discard drops every record. Useful in tests.
func Discard() slog.Handler {
	return ethlog.DiscardHandler()
}

type logger struct {
	ctx []any
}

func (l *logger) inner() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

func (l *logger) Enabled(level slog.Level) bool {
	return ethlog.Root().Enabled(context.Background(), level)
}

func (l *logger) Trace(msg string, ctx ...any) { l.inner().Trace(msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.inner().Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner().Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner().Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner().Error(msg, ctx...) }

// Crit logs at the critical level without terminating the process.
func (l *logger) Crit(msg string, ctx ...any) {
	l.inner().Write(LevelCrit, msg, ctx...)
}
