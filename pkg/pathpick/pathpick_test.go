// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pathpick

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectWith(t *testing.T, input string, req Request) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	selector := &TerminalSelector{In: strings.NewReader(input), Out: out}
	path, err := selector.Select(req)
	assert.NotEmpty(t, out.String(), "a prompt should have been written")
	return path, err
}

func TestSelectExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(file, []byte("a,b"), 0644))

	path, err := selectWith(t, file+"\n", Request{Mode: OpenFile, Title: "Pick input"})
	require.NoError(t, err)
	assert.Equal(t, file, path)
}

func TestSelectMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.csv")
	_, err := selectWith(t, missing+"\n", Request{Mode: OpenFile})
	assert.Error(t, err)
}

func TestSelectFolder(t *testing.T) {
	dir := t.TempDir()
	path, err := selectWith(t, dir+"\n", Request{Mode: Folder})
	require.NoError(t, err)
	assert.Equal(t, dir, path)

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = selectWith(t, file+"\n", Request{Mode: Folder})
	assert.Error(t, err, "a plain file is not a folder")
}

func TestSelectSaveFileAcceptsNewPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "export.json")
	path, err := selectWith(t, target+"\n", Request{Mode: SaveFile, Filter: "*.json"})
	require.NoError(t, err)
	assert.Equal(t, target, path)
}

func TestEmptyAnswerCancels(t *testing.T) {
	_, err := selectWith(t, "\n", Request{Mode: SaveFile})
	assert.ErrorIs(t, err, ErrCanceled)

	_, err = selectWith(t, "", Request{Mode: SaveFile})
	assert.ErrorIs(t, err, ErrCanceled)
}
