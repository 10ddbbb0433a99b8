// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"strings"
)

// Level identifies the severity of a log record. Levels are ordered by
// severity; the ordering only matters for console emphasis, records are
// never filtered by level.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	SuccessLevel
	WarningLevel
	ErrorLevel
	CriticalLevel
)

func (level Level) String() string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case SuccessLevel:
		return "SUCCESS"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "SUCCESS":
		return SuccessLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL":
		return CriticalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
}

// MarshalJSON serializes the level as its lower-case name.
func (level Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ToLower(level.String()) + `"`), nil
}

// UnmarshalJSON accepts any casing of the level name.
func (level *Level) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*level = parsed
	return nil
}
