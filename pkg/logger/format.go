// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"strings"
	"time"
)

const contextSeparator = " | Context: "

// record is one log entry before rendering. It is never persisted as an
// object, only its rendered line is.
type record struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	Message   string
	Context   string
}

// renderLine formats a record as
// [timestamp] [LEVEL] [caller] message | Context: context
// with the context segment omitted when absent.
func renderLine(tsFormat string, rec record) string {
	line := fmt.Sprintf("[%s] [%s] [%s] %s",
		rec.Timestamp.Format(tsFormat), rec.Level, rec.Caller, rec.Message)
	if rec.Context != "" {
		line += contextSeparator + rec.Context
	}
	return line
}

// ParsedLine is the result of inverting the line format.
type ParsedLine struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	Message   string
	Context   string
}

// ParseLine inverts renderLine for lines produced with the given
// timestamp layout.
func ParseLine(line, tsFormat string) (ParsedLine, error) {
	var parsed ParsedLine

	ts, rest, err := bracketField(line)
	if err != nil {
		return parsed, fmt.Errorf("bad timestamp segment: %w", err)
	}
	parsed.Timestamp, err = time.Parse(tsFormat, ts)
	if err != nil {
		return parsed, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}

	levelName, rest, err := bracketField(rest)
	if err != nil {
		return parsed, fmt.Errorf("bad level segment: %w", err)
	}
	parsed.Level, err = ParseLevel(levelName)
	if err != nil {
		return parsed, err
	}

	parsed.Caller, rest, err = bracketField(rest)
	if err != nil {
		return parsed, fmt.Errorf("bad caller segment: %w", err)
	}

	parsed.Message = rest
	if idx := strings.LastIndex(rest, contextSeparator); idx >= 0 {
		parsed.Message = rest[:idx]
		parsed.Context = rest[idx+len(contextSeparator):]
	}
	return parsed, nil
}

// bracketField consumes one leading "[...]" segment and returns its
// content plus the remainder with the separating space stripped.
func bracketField(s string) (string, string, error) {
	if !strings.HasPrefix(s, "[") {
		return "", "", fmt.Errorf("missing opening bracket in %q", s)
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return "", "", fmt.Errorf("missing closing bracket in %q", s)
	}
	return s[1:end], strings.TrimPrefix(s[end+1:], " "), nil
}
