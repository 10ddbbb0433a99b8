// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logger is a local file-and-console logging facility with
// durable configuration. It resolves an effective configuration from
// layered precedence (built-in defaults, a persisted JSON file,
// in-process overrides), keeps the active log file bounded through
// size-based rotation and age-based retention, and renders one line per
// record to whichever sinks are enabled.
//
// The facility is designed to be safe to sprinkle through unrelated,
// concurrently running scripts on the same machine: configuration saves
// are whole-file replacements, log writes are byte-level appends, and no
// internal failure ever propagates to the caller.
package logger
