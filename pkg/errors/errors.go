// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode error code
type ErrorCode int

// ErrorCategory error category
type ErrorCategory string

const (
	CategoryConfig   ErrorCategory = "config"   // configuration load/save errors
	CategorySink     ErrorCategory = "sink"     // console/file delivery errors
	CategoryRotation ErrorCategory = "rotation" // rotation and retention errors
	CategorySystem   ErrorCategory = "system"   // everything else
)

// config error code (1000-1999)
const (
	ErrCodeConfigUnknown    ErrorCode = 1000
	ErrCodeConfigLoad       ErrorCode = 1001
	ErrCodeConfigParse      ErrorCode = 1002
	ErrCodeConfigValidation ErrorCode = 1003
	ErrCodeConfigSave       ErrorCode = 1004
)

// sink error code (2000-2999)
const (
	ErrCodeSinkUnknown   ErrorCode = 2000
	ErrCodeSinkConsole   ErrorCode = 2001
	ErrCodeSinkFile      ErrorCode = 2002
	ErrCodeSinkDirectory ErrorCode = 2003
)

// rotation error code (3000-3999)
const (
	ErrCodeRotationUnknown ErrorCode = 3000
	ErrCodeRotationRename  ErrorCode = 3001
	ErrCodeRotationStat    ErrorCode = 3002
	ErrCodeRetentionDelete ErrorCode = 3003
)

type LogError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Category  ErrorCategory          `json:"category"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"cause,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error implements error interface
func (e *LogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%d] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%d] %s", e.Category, e.Code, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *LogError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is
func (e *LogError) Is(target error) bool {
	var t *LogError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithContext with context
func (e *LogError) WithContext(key string, value interface{}) *LogError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause with cause
func (e *LogError) WithCause(cause error) *LogError {
	e.Cause = cause
	return e
}

// New create error
func New(code ErrorCode, message string) *LogError {
	return &LogError{
		Code:      code,
		Message:   message,
		Category:  GetErrorCategory(code),
		Timestamp: time.Now(),
	}
}

// Newf create error with format message
func Newf(code ErrorCode, format string, args ...interface{}) *LogError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap existing error with code and message
func Wrap(err error, code ErrorCode, message string) *LogError {
	return New(code, message).WithCause(err)
}

// Wrapf wrap existing error with code and format message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LogError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// ConfigError create a config category error
func ConfigError(code ErrorCode, message string) *LogError {
	return New(code, message)
}

// SinkError create a sink category error
func SinkError(code ErrorCode, message string) *LogError {
	return New(code, message)
}

// RotationError create a rotation category error
func RotationError(code ErrorCode, message string) *LogError {
	return New(code, message)
}

// GetErrorCategory returns the error category for the given error code.
func GetErrorCategory(code ErrorCode) ErrorCategory {
	switch {
	case code >= 1000 && code < 2000:
		return CategoryConfig
	case code >= 2000 && code < 3000:
		return CategorySink
	case code >= 3000 && code < 4000:
		return CategoryRotation
	default:
		return CategorySystem
	}
}
