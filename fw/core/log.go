/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package core holds process-wide facilities shared by the forwarding
// components: structured logging.
package core

import (
	"context"
	"log/slog"
	"os"

	"github.com/named-data/ndnd-pathsel/std/log"
)

// Loggable is implemented by anything that wants to identify itself in log
// output - generally a module or strategy instance.
type Loggable interface {
	String() string
}

// Logger is a thin, key-value structured logger keyed by a Loggable. Every
// forwarding component logs through the package-level Log instance rather
// than holding its own logger, matching the calling convention used
// throughout this codebase (core.Log.Trace(s, "msg", "k", v, ...)).
type Logger struct {
	inner *slog.Logger
	level log.Level
}

// Log is the process-wide logger instance.
var Log = NewLogger(log.LevelInfo, os.Stderr)

// NewLogger constructs a Logger at the given level writing to w.
func NewLogger(level log.Level, w *os.File) *Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}
	return &Logger{
		inner: slog.New(slog.NewTextHandler(w, opts)),
		level: level,
	}
}

// SetLevel adjusts the minimum level that will be emitted.
func (l *Logger) SetLevel(level log.Level) {
	l.level = level
	opts := &slog.HandlerOptions{Level: slog.Level(level)}
	l.inner = slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (l *Logger) log(level log.Level, who Loggable, msg string, kvs ...any) {
	args := make([]any, 0, len(kvs)+2)
	args = append(args, "module", who.String())
	args = append(args, kvs...)
	l.inner.Log(context.Background(), slog.Level(level), msg, args...)
}

// Trace logs at TRACE level.
func (l *Logger) Trace(who Loggable, msg string, kvs ...any) { l.log(log.LevelTrace, who, msg, kvs...) }

// Debug logs at DEBUG level.
func (l *Logger) Debug(who Loggable, msg string, kvs ...any) { l.log(log.LevelDebug, who, msg, kvs...) }

// Info logs at INFO level.
func (l *Logger) Info(who Loggable, msg string, kvs ...any) { l.log(log.LevelInfo, who, msg, kvs...) }

// Warn logs at WARN level.
func (l *Logger) Warn(who Loggable, msg string, kvs ...any) { l.log(log.LevelWarn, who, msg, kvs...) }

// Error logs at ERROR level.
func (l *Logger) Error(who Loggable, msg string, kvs ...any) { l.log(log.LevelError, who, msg, kvs...) }

// Fatal logs at FATAL level and terminates the process.
func (l *Logger) Fatal(who Loggable, msg string, kvs ...any) {
	l.log(log.LevelFatal, who, msg, kvs...)
	os.Exit(1)
}

// stringLoggable adapts a plain string to Loggable, for call sites with no
// natural receiver (e.g. package-level helpers).
type stringLoggable string

func (s stringLoggable) String() string { return string(s) }

// Component wraps a name as a Loggable.
func Component(name string) Loggable { return stringLoggable(name) }
