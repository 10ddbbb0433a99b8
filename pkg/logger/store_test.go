// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, caller string, opts ...StoreOption) *Store {
	t.Helper()
	opts = append([]StoreOption{WithConfigDir(t.TempDir())}, opts...)
	return NewStore(caller, opts...)
}

func TestResolveMissingFileYieldsDefaults(t *testing.T) {
	store := newTestStore(t, "scriptA")
	assert.Equal(t, DefaultConfig(), store.Resolve())
}

func TestResolveIsIdempotent(t *testing.T) {
	store := newTestStore(t, "scriptA")
	first := store.Resolve()
	assert.Equal(t, first, store.Resolve())
}

func TestResolveMalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("scriptA", WithConfigDir(dir))
	path := store.ScopePath(ScopeGlobal, "scriptA")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	assert.Equal(t, DefaultConfig(), store.Resolve())
}

func TestResolveToleratesMissingKeys(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("scriptA", WithConfigDir(dir))
	path := store.ScopePath(ScopeGlobal, "scriptA")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"level":"error"}`), 0644))

	cfg := store.Resolve()
	assert.Equal(t, ErrorLevel, cfg.Level)
	assert.Equal(t, DefaultConfig().Directory, cfg.Directory)
	assert.Equal(t, DefaultConfig().MaxFileSizeBytes, cfg.MaxFileSizeBytes)
}

func TestResolveClampsInvalidPersistedValues(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("scriptA", WithConfigDir(dir))
	path := store.ScopePath(ScopeGlobal, "scriptA")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"max_file_size_bytes":-5,"retention_days":-1}`), 0644))

	cfg := store.Resolve()
	assert.Equal(t, int64(1), cfg.MaxFileSizeBytes)
	assert.Equal(t, 0, cfg.RetentionDays)
}

func TestApplyPrecedenceLastWritePerFieldWins(t *testing.T) {
	store := newTestStore(t, "scriptA")

	warning := WarningLevel
	store.Apply(Overrides{Level: &warning})

	size := int64(2048)
	cfg := store.Apply(Overrides{MaxFileSizeBytes: &size})
	assert.Equal(t, WarningLevel, cfg.Level)
	assert.Equal(t, int64(2048), cfg.MaxFileSizeBytes)

	errLevel := ErrorLevel
	cfg = store.Apply(Overrides{Level: &errLevel})
	assert.Equal(t, ErrorLevel, cfg.Level)
	assert.Equal(t, int64(2048), cfg.MaxFileSizeBytes)

	// Untouched fields still hold defaults.
	assert.Equal(t, DefaultConfig().Directory, cfg.Directory)
}

func TestApplyStaysEffectiveForResolve(t *testing.T) {
	store := newTestStore(t, "scriptA")
	retention := 5
	store.Apply(Overrides{RetentionDays: &retention})
	assert.Equal(t, 5, store.Resolve().RetentionDays)
}

func TestPersistAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("scriptA", WithConfigDir(dir))

	warning := WarningLevel
	logDir := filepath.Join(dir, "logs")
	cfg := store.Apply(Overrides{Level: &warning, Directory: &logDir})
	require.NoError(t, store.Persist(cfg))

	reloaded := NewStore("scriptA", WithConfigDir(dir)).Resolve()
	assert.Equal(t, cfg, reloaded)
}

func TestPersistWritesWholeValidJSONAndNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("scriptA", WithConfigDir(dir))
	require.NoError(t, store.Persist(store.Resolve()))

	path := store.ScopePath(ScopeGlobal, "scriptA")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "max_file_size_bytes")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), entry.Name())
	}
}

func TestPersistFailureIsReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	// Occupy the config directory path with a plain file so MkdirAll fails.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	store := NewStore("scriptA", WithConfigDir(filepath.Join(blocked, "nested")))
	assert.Error(t, store.Persist(store.Resolve()))
}

func TestCallerScopeIsolation(t *testing.T) {
	dir := t.TempDir()
	storeA := NewStore("Update-Accounts", WithConfigDir(dir), WithScope(ScopeCaller))
	storeB := NewStore("Report-Shares", WithConfigDir(dir), WithScope(ScopeCaller))

	pathA := storeA.ScopePath(ScopeCaller, "Update-Accounts")
	pathB := storeB.ScopePath(ScopeCaller, "Report-Shares")
	require.NotEqual(t, pathA, pathB)

	scope := ScopeCaller
	critical := CriticalLevel
	cfgA := storeA.Apply(Overrides{Level: &critical, Scope: &scope})
	require.NoError(t, storeA.Persist(cfgA))

	// B never sees A's configuration.
	cfgB := storeB.Resolve()
	assert.Equal(t, DefaultConfig().Level, cfgB.Level)
}

func TestScopePathStableAndCollisionFree(t *testing.T) {
	store := newTestStore(t, "scriptA")

	assert.Equal(t,
		store.ScopePath(ScopeCaller, "My Script"),
		store.ScopePath(ScopeCaller, "My Script"))

	// Same slug, different raw names: the hash suffix keeps them apart.
	assert.NotEqual(t,
		store.ScopePath(ScopeCaller, "my script"),
		store.ScopePath(ScopeCaller, "my/script"))

	global := store.ScopePath(ScopeGlobal, "anything")
	assert.Equal(t, "config.json", filepath.Base(global))
}
