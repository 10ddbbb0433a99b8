// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pathpick is the path-selection boundary shared by the logging
// tooling and the operator scripts: one synchronous call that returns
// either a filesystem path or an explicit canceled result.
package pathpick

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode selects the kind of path being requested.
type Mode int

const (
	OpenFile Mode = iota
	SaveFile
	Folder
)

func (m Mode) String() string {
	switch m {
	case OpenFile:
		return "open file"
	case SaveFile:
		return "save file"
	case Folder:
		return "folder"
	default:
		return "unknown"
	}
}

// ErrCanceled is returned when the operator declines to pick a path.
var ErrCanceled = errors.New("path selection canceled")

// Request describes one selection.
type Request struct {
	Mode       Mode
	Title      string
	Filter     string // display hint only, e.g. "*.json"
	InitialDir string
}

// Selector picks a path. Implementations must return ErrCanceled for an
// explicit cancel rather than an empty path.
type Selector interface {
	Select(req Request) (string, error)
}

// TerminalSelector prompts for a path on a reader/writer pair,
// defaulting to stdin/stdout. An empty answer cancels.
type TerminalSelector struct {
	In  io.Reader
	Out io.Writer
}

func (t *TerminalSelector) Select(req Request) (string, error) {
	in := t.In
	if in == nil {
		in = os.Stdin
	}
	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	prompt := req.Title
	if prompt == "" {
		prompt = "Select " + req.Mode.String()
	}
	if req.Filter != "" {
		prompt += " (" + req.Filter + ")"
	}
	if req.InitialDir != "" {
		prompt += " [" + req.InitialDir + "]"
	}
	if _, err := fmt.Fprintf(out, "%s: ", prompt); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCanceled
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return "", ErrCanceled
	}

	switch req.Mode {
	case OpenFile:
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("not an existing file: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory, expected a file", path)
		}
	case Folder:
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("not an existing folder: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%s is not a directory", path)
		}
	}
	return path, nil
}
