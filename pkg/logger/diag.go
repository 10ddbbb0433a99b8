// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// diagnostics is the channel for the facility's own failures. Internal
// errors are reported here and never escape to the caller; if stderr is
// unusable the report is dropped.
type diagnostics struct {
	log *zap.SugaredLogger
}

func newDiagnostics() *diagnostics {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zap.WarnLevel)
	return &diagnostics{
		log: zap.New(core).Named("loghelper").Sugar(),
	}
}

func (d *diagnostics) warn(err error) {
	if d == nil || d.log == nil || err == nil {
		return
	}
	d.log.Warn(err.Error())
}
