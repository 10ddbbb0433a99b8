// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cocowh/loghelper/pkg/errors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const appConfigDirName = "loghelper"

// Store resolves the single effective configuration for the process and
// optionally persists changes. The persisted file is read once per
// process and cached; in-process overrides applied through Apply stay
// effective for the remainder of the process.
type Store struct {
	mu        sync.Mutex
	caller    string
	scope     Scope
	configDir string
	loaded    bool
	current   Config
	diag      *diagnostics
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithConfigDir overrides the base directory holding persisted
// configuration files. Defaults to <user config dir>/loghelper.
func WithConfigDir(dir string) StoreOption {
	return func(s *Store) {
		s.configDir = dir
	}
}

// WithScope selects which persisted file backs the configuration before
// the first resolve.
func WithScope(scope Scope) StoreOption {
	return func(s *Store) {
		s.scope = scope
	}
}

// NewStore creates a configuration store for the named caller.
func NewStore(caller string, opts ...StoreOption) *Store {
	s := &Store{
		caller: caller,
		scope:  ScopeGlobal,
		diag:   newDiagnostics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		s.configDir = filepath.Join(base, appConfigDirName)
	}
	return s
}

// Resolve returns the effective configuration, loading the persisted
// file on first use. A missing or malformed file degrades to the
// built-in defaults and never fails the caller.
func (s *Store) Resolve() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked()
}

func (s *Store) resolveLocked() Config {
	if s.loaded {
		return s.current
	}
	s.current = s.load(s.ScopePath(s.scope, s.caller))
	s.loaded = true
	return s.current
}

// load reads one persisted configuration file, filling missing keys from
// the defaults. Read failures degrade to defaults with a diagnostic.
func (s *Store) load(path string) Config {
	def := DefaultConfig()
	def.Scope = s.scope

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("directory", def.Directory)
	v.SetDefault("level", strings.ToLower(def.Level.String()))
	v.SetDefault("console_enabled", def.ConsoleEnabled)
	v.SetDefault("file_enabled", def.FileEnabled)
	v.SetDefault("timestamp_format", def.TimestampFormat)
	v.SetDefault("filename_prefix", def.FilenamePrefix)
	v.SetDefault("filename_date_format", def.FilenameDateFormat)
	v.SetDefault("max_file_size_bytes", def.MaxFileSizeBytes)
	v.SetDefault("retention_days", def.RetentionDays)
	v.SetDefault("scope", string(def.Scope))

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			logErr := errors.Wrapf(err, errors.ErrCodeConfigParse,
				"unreadable config file %s, using defaults", path)
			s.diag.warn(logErr)
		}
		return def
	}

	cfg := Config{
		Directory:          v.GetString("directory"),
		ConsoleEnabled:     v.GetBool("console_enabled"),
		FileEnabled:        v.GetBool("file_enabled"),
		TimestampFormat:    v.GetString("timestamp_format"),
		FilenamePrefix:     v.GetString("filename_prefix"),
		FilenameDateFormat: v.GetString("filename_date_format"),
		MaxFileSizeBytes:   v.GetInt64("max_file_size_bytes"),
		RetentionDays:      v.GetInt("retention_days"),
		Scope:              Scope(v.GetString("scope")),
	}
	level, err := ParseLevel(v.GetString("level"))
	if err != nil {
		s.diag.warn(errors.Wrapf(err, errors.ErrCodeConfigParse,
			"bad level in %s, using default", path))
		level = def.Level
	}
	cfg.Level = level

	cfg, validationErrs := cfg.normalize()
	for _, verr := range validationErrs {
		s.diag.warn(verr.WithContext("path", path))
	}
	return cfg
}

// Apply merges the supplied overrides over the currently resolved
// configuration and makes the result effective for the remainder of the
// process. Fields not named in the overrides are left untouched.
func (s *Store) Apply(o Overrides) Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := o.mergeInto(s.resolveLocked())
	cfg, validationErrs := cfg.normalize()
	for _, verr := range validationErrs {
		s.diag.warn(verr)
	}
	s.current = cfg
	s.scope = cfg.Scope
	return cfg
}

// Persist serializes cfg to the scope-appropriate file, creating parent
// directories as needed. The document is written to a temp file and
// renamed over the target so concurrent savers can never leave a
// partially written file behind.
func (s *Store) Persist(cfg Config) error {
	path := s.ScopePath(cfg.Scope, s.caller)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logErr := errors.Wrapf(err, errors.ErrCodeConfigSave,
			"cannot create config directory for %s", path)
		s.diag.warn(logErr)
		return logErr
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		logErr := errors.Wrap(err, errors.ErrCodeConfigSave, "cannot serialize config")
		s.diag.warn(logErr)
		return logErr
	}
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		logErr := errors.Wrapf(err, errors.ErrCodeConfigSave,
			"cannot write config file %s", path)
		s.diag.warn(logErr)
		return logErr
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		logErr := errors.Wrapf(err, errors.ErrCodeConfigSave,
			"cannot replace config file %s", path)
		s.diag.warn(logErr)
		return logErr
	}
	return nil
}

// ScopePath maps a scope and caller name to the persisted file backing
// the configuration. Global scope resolves to one fixed path; caller
// scope resolves to a path keyed by a filesystem-safe slug of the caller
// name plus a short hash so distinct callers can never collide.
func (s *Store) ScopePath(scope Scope, caller string) string {
	if scope != ScopeCaller {
		return filepath.Join(s.configDir, "config.json")
	}
	return filepath.Join(s.configDir, fmt.Sprintf("config_%s_%s.json",
		slugify(caller), nameHash(caller)))
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

func nameHash(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%08x", h.Sum32())
}
