/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger adapts a zap SugaredLogger to Logger
type zapLogger struct {
	level   zap.AtomicLevel
	dynamic bool
	sugar   *zap.SugaredLogger
	closer  func() error
}

// NewZapLogger creates a Logger backed by zap with a console encoder.
// The level can be changed at runtime through SetLevel.
func NewZapLogger(level Level, output io.Writer) Logger {
	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(output),
		atomic,
	)
	base := zap.New(core)
	return &zapLogger{
		level:   atomic,
		dynamic: true,
		sugar:   base.Sugar(),
		closer:  base.Sync,
	}
}

// NewZapLoggerFrom wraps an existing zap logger. Its core decides the level;
// SetLevel on the returned Logger is a no-op.
func NewZapLoggerFrom(l *zap.Logger) Logger {
	return &zapLogger{sugar: l.Sugar(), closer: l.Sync}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		// above fatal, nothing is enabled
		return zapcore.FatalLevel + 1
	}
}

func (z *zapLogger) Debug(format string, args ...interface{}) {
	z.sugar.Debugf(format, args...)
}

func (z *zapLogger) Info(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}

func (z *zapLogger) Warn(format string, args ...interface{}) {
	z.sugar.Warnf(format, args...)
}

func (z *zapLogger) Error(format string, args ...interface{}) {
	z.sugar.Errorf(format, args...)
}

func (z *zapLogger) SetLevel(level Level) {
	if !z.dynamic {
		return
	}
	z.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered entries of a zap backed logger. Other loggers are ignored.
func Sync(l Logger) error {
	if z, ok := l.(*zapLogger); ok && z.closer != nil {
		return z.closer()
	}
	return nil
}
