// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/cocowh/loghelper/pkg/errors"
)

// Console emphasis per level, ordered by severity.
var levelStyles = map[Level]lipgloss.Style{
	DebugLevel:    lipgloss.NewStyle().Faint(true),
	InfoLevel:     lipgloss.NewStyle(),
	SuccessLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	WarningLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ErrorLevel:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	CriticalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

// writeConsole renders one line to w with the level's emphasis.
func writeConsole(w io.Writer, line string, level Level) error {
	style, ok := levelStyles[level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if _, err := fmt.Fprintln(w, style.Render(line)); err != nil {
		return errors.Wrap(err, errors.ErrCodeSinkConsole, "console write failed")
	}
	return nil
}

// writeFile appends one line to path, creating the file if absent.
// Append-only at the byte level; the log file is never read back or
// rewritten, so concurrent writers cannot corrupt each other's lines.
func writeFile(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeSinkFile, "cannot open %s", path)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.Wrapf(err, errors.ErrCodeSinkFile, "cannot append to %s", path)
	}
	return nil
}
