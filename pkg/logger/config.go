// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"github.com/cocowh/loghelper/pkg/errors"
)

// Scope selects which persisted file backs the configuration.
type Scope string

const (
	// ScopeGlobal shares one configuration file across all callers on the
	// machine/user context.
	ScopeGlobal Scope = "global"
	// ScopeCaller isolates the configuration per calling script.
	ScopeCaller Scope = "caller"
)

// Config is the durable record governing logging behavior. One instance
// is effective per process at a time; RotationPolicy and the sinks read
// it but never mutate it.
type Config struct {
	Directory          string `json:"directory"`
	Level              Level  `json:"level"`
	ConsoleEnabled     bool   `json:"console_enabled"`
	FileEnabled        bool   `json:"file_enabled"`
	TimestampFormat    string `json:"timestamp_format"`
	FilenamePrefix     string `json:"filename_prefix"`
	FilenameDateFormat string `json:"filename_date_format"`
	MaxFileSizeBytes   int64  `json:"max_file_size_bytes"`
	RetentionDays      int    `json:"retention_days"`
	Scope              Scope  `json:"scope"`
}

// DefaultConfig returns the built-in defaults that apply when no
// persisted file exists.
func DefaultConfig() Config {
	return Config{
		Directory:          "./logs",
		Level:              InfoLevel,
		ConsoleEnabled:     true,
		FileEnabled:        true,
		TimestampFormat:    "2006-01-02 15:04:05",
		FilenamePrefix:     "log_",
		FilenameDateFormat: "20060102",
		MaxFileSizeBytes:   10 * 1024 * 1024,
		RetentionDays:      30,
		Scope:              ScopeGlobal,
	}
}

// normalize clamps out-of-range values to the nearest valid value and
// returns one validation error per clamped field.
func (c Config) normalize() (Config, []*errors.LogError) {
	var errs []*errors.LogError
	if c.MaxFileSizeBytes < 1 {
		errs = append(errs, errors.Newf(errors.ErrCodeConfigValidation,
			"max_file_size_bytes %d out of range, clamped to 1", c.MaxFileSizeBytes))
		c.MaxFileSizeBytes = 1
	}
	if c.RetentionDays < 0 {
		errs = append(errs, errors.Newf(errors.ErrCodeConfigValidation,
			"retention_days %d out of range, clamped to 0", c.RetentionDays))
		c.RetentionDays = 0
	}
	if c.Scope != ScopeGlobal && c.Scope != ScopeCaller {
		errs = append(errs, errors.Newf(errors.ErrCodeConfigValidation,
			"scope %q invalid, reset to global", c.Scope))
		c.Scope = ScopeGlobal
	}
	return c, errs
}

// Overrides carries the subset of configuration fields a caller wants to
// change. Nil fields are left untouched by Apply.
type Overrides struct {
	Directory          *string
	Level              *Level
	ConsoleEnabled     *bool
	FileEnabled        *bool
	TimestampFormat    *string
	FilenamePrefix     *string
	FilenameDateFormat *string
	MaxFileSizeBytes   *int64
	RetentionDays      *int
	Scope              *Scope
}

func (o Overrides) mergeInto(c Config) Config {
	if o.Directory != nil {
		c.Directory = *o.Directory
	}
	if o.Level != nil {
		c.Level = *o.Level
	}
	if o.ConsoleEnabled != nil {
		c.ConsoleEnabled = *o.ConsoleEnabled
	}
	if o.FileEnabled != nil {
		c.FileEnabled = *o.FileEnabled
	}
	if o.TimestampFormat != nil {
		c.TimestampFormat = *o.TimestampFormat
	}
	if o.FilenamePrefix != nil {
		c.FilenamePrefix = *o.FilenamePrefix
	}
	if o.FilenameDateFormat != nil {
		c.FilenameDateFormat = *o.FilenameDateFormat
	}
	if o.MaxFileSizeBytes != nil {
		c.MaxFileSizeBytes = *o.MaxFileSizeBytes
	}
	if o.RetentionDays != nil {
		c.RetentionDays = *o.RetentionDays
	}
	if o.Scope != nil {
		c.Scope = *o.Scope
	}
	return c
}
