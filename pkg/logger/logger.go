// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cocowh/loghelper/pkg/errors"
)

// Logger is the single entry point callers use to emit a record. It is
// stateless per call beyond the lazily cached configuration held by its
// Store, and it never lets an internal failure escape to the caller.
type Logger struct {
	store  *Store
	diag   *diagnostics
	caller string
	out    io.Writer
}

// LoggerOption customizes a Logger.
type LoggerOption func(*Logger)

// WithStore supplies a pre-built configuration store, typically to share
// one store between the logger and configuration commands.
func WithStore(store *Store) LoggerOption {
	return func(l *Logger) {
		l.store = store
	}
}

// WithOutput redirects the console sink away from stdout.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.out = w
	}
}

// New creates a logger for the named caller. The caller identity is
// supplied explicitly by the host program, not divined from the call
// stack; an empty name falls back to the executable name. It is computed
// once and read-only afterward.
func New(caller string, opts ...LoggerOption) *Logger {
	if caller == "" {
		exe := filepath.Base(os.Args[0])
		caller = strings.TrimSuffix(exe, filepath.Ext(exe))
	}
	l := &Logger{
		caller: caller,
		diag:   newDiagnostics(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = NewStore(caller)
	}
	return l
}

// Store exposes the configuration store backing this logger.
func (l *Logger) Store() *Store {
	return l.store
}

// Caller returns the identity records are attributed to.
func (l *Logger) Caller() string {
	return l.caller
}

type callOptions struct {
	context   string
	directory string
	console   *bool
	file      *bool
}

// Option adjusts a single Log call.
type Option func(*callOptions)

// WithContext appends a context segment to the rendered line.
func WithContext(ctx string) Option {
	return func(o *callOptions) {
		o.context = ctx
	}
}

// WithDirectory writes this one record under dir instead of the
// configured default directory.
func WithDirectory(dir string) Option {
	return func(o *callOptions) {
		o.directory = dir
	}
}

// WithConsole forces the console sink on or off for this one call.
func WithConsole(enabled bool) Option {
	return func(o *callOptions) {
		o.console = &enabled
	}
}

// WithFile forces the file sink on or off for this one call.
func WithFile(enabled bool) Option {
	return func(o *callOptions) {
		o.file = &enabled
	}
}

// Log emits one record at the given level. Sink failures are downgraded
// to internal diagnostics; the call always returns normally.
func (l *Logger) Log(level Level, message string, opts ...Option) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	cfg := l.store.Resolve()

	dir := cfg.Directory
	if co.directory != "" {
		dir = co.directory
	}
	fileEnabled := cfg.FileEnabled
	if co.file != nil {
		fileEnabled = *co.file
	}
	consoleEnabled := cfg.ConsoleEnabled
	if co.console != nil {
		consoleEnabled = *co.console
	}

	now := time.Now()
	line := renderLine(cfg.TimestampFormat, record{
		Timestamp: now,
		Level:     level,
		Caller:    l.caller,
		Message:   message,
		Context:   co.context,
	})

	if fileEnabled {
		l.writeToFile(cfg, dir, line, now)
	}
	if consoleEnabled {
		if err := writeConsole(l.out, line, level); err != nil {
			l.diag.warn(err)
		}
	}
}

func (l *Logger) writeToFile(cfg Config, dir, line string, now time.Time) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		l.diag.warn(errors.Wrapf(err, errors.ErrCodeSinkDirectory,
			"cannot create log directory %s", dir))
		return
	}
	path := filepath.Join(dir, filenameFor(cfg, now))
	if err := rotateIfNeeded(path, cfg.MaxFileSizeBytes); err != nil {
		l.diag.warn(err)
	}
	PurgeExpired(dir, cfg.RetentionDays)
	if err := writeFile(path, line); err != nil {
		l.diag.warn(err)
	}
}

// filenameFor derives the active file name, one file per calendar day by
// default.
func filenameFor(cfg Config, t time.Time) string {
	return cfg.FilenamePrefix + t.Format(cfg.FilenameDateFormat) + ".log"
}

// Write emits one record at the configured default level.
func (l *Logger) Write(message string, opts ...Option) {
	l.Log(l.store.Resolve().Level, message, opts...)
}

// Debug emits one record at debug level.
func (l *Logger) Debug(message string, opts ...Option) {
	l.Log(DebugLevel, message, opts...)
}

// Info emits one record at info level.
func (l *Logger) Info(message string, opts ...Option) {
	l.Log(InfoLevel, message, opts...)
}

// Success emits one record at success level.
func (l *Logger) Success(message string, opts ...Option) {
	l.Log(SuccessLevel, message, opts...)
}

// Warning emits one record at warning level.
func (l *Logger) Warning(message string, opts ...Option) {
	l.Log(WarningLevel, message, opts...)
}

// Error emits one record at error level.
func (l *Logger) Error(message string, opts ...Option) {
	l.Log(ErrorLevel, message, opts...)
}

// Critical emits one record at critical level.
func (l *Logger) Critical(message string, opts ...Option) {
	l.Log(CriticalLevel, message, opts...)
}
