// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cocowh/loghelper/pkg/errors"
)

const rotateTimeFormat = "20060102_150405"

// rotateIfNeeded renames path to a timestamped archive when its size
// exceeds maxBytes, leaving the original name free for the next write.
// Rotation is lazy: it only runs at write time, so an oversized file can
// persist briefly between writes.
func rotateIfNeeded(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrCodeRotationStat, "cannot stat %s", path)
	}
	if info.Size() <= maxBytes {
		return nil
	}
	archive := archiveName(path, time.Now())
	// Same-second rotations would collide on the timestamp suffix.
	for n := 1; ; n++ {
		if _, err := os.Stat(archive); os.IsNotExist(err) {
			break
		}
		archive = fmt.Sprintf("%s_%d%s",
			strings.TrimSuffix(archiveName(path, time.Now()), filepath.Ext(path)),
			n, filepath.Ext(path))
	}
	if err := os.Rename(path, archive); err != nil {
		return errors.Wrapf(err, errors.ErrCodeRotationRename,
			"cannot rotate %s to %s", path, archive)
	}
	return nil
}

// archiveName inserts a timestamp suffix before the extension.
func archiveName(path string, t time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + t.Format(rotateTimeFormat) + ext
}

// PurgeExpired deletes every log file in dir whose last-modified time is
// older than now minus retentionDays. A retention of 0 disables purging.
// Per-file failures are skipped so one locked file cannot abort the
// sweep. Returns the number of files removed.
func PurgeExpired(dir string, retentionDays int) int {
	if retentionDays <= 0 {
		return 0
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed
}
