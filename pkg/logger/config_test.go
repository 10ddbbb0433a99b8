// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./logs", cfg.Directory)
	assert.Equal(t, InfoLevel, cfg.Level)
	assert.True(t, cfg.ConsoleEnabled)
	assert.True(t, cfg.FileEnabled)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimestampFormat)
	assert.Equal(t, "log_", cfg.FilenamePrefix)
	assert.Equal(t, "20060102", cfg.FilenameDateFormat)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, ScopeGlobal, cfg.Scope)
}

func TestOverridesMergeOnlySetFields(t *testing.T) {
	base := DefaultConfig()
	level := ErrorLevel
	size := int64(1024)

	merged := Overrides{Level: &level, MaxFileSizeBytes: &size}.mergeInto(base)

	assert.Equal(t, ErrorLevel, merged.Level)
	assert.Equal(t, int64(1024), merged.MaxFileSizeBytes)
	assert.Equal(t, base.Directory, merged.Directory)
	assert.Equal(t, base.RetentionDays, merged.RetentionDays)
	assert.Equal(t, base.ConsoleEnabled, merged.ConsoleEnabled)
}

func TestOverridesMergeEmptyIsIdentity(t *testing.T) {
	base := DefaultConfig()
	assert.Equal(t, base, Overrides{}.mergeInto(base))
}

func TestNormalizeClampsInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSizeBytes = -5
	cfg.RetentionDays = -2
	cfg.Scope = Scope("bogus")

	normalized, errs := cfg.normalize()

	assert.Equal(t, int64(1), normalized.MaxFileSizeBytes)
	assert.Equal(t, 0, normalized.RetentionDays)
	assert.Equal(t, ScopeGlobal, normalized.Scope)
	assert.Len(t, errs, 3)
}

func TestNormalizeValidConfigUntouched(t *testing.T) {
	cfg := DefaultConfig()

	normalized, errs := cfg.normalize()

	require.Empty(t, errs)
	assert.Equal(t, cfg, normalized)
}
