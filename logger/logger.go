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

// Package logger provides leveled logging for the query engine.
// Two backends are available: a plain line logger and a zap backed logger.
// Non-fatal pipeline conditions (skipped measures, dropped aggregations,
// unknown sort columns) are reported through this package.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level defines log levels
type Level int

const (
	// DEBUG detailed pipeline tracing
	DEBUG Level = iota
	// INFO per query summaries
	INFO
	// WARN recoverable conditions such as skipped measures
	WARN
	// ERROR failures
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name into a Level, case-insensitively
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF", "NONE":
		return OFF, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", name)
	}
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// SetLevel sets the log level
	SetLevel(level Level)
}

// defaultLogger writes one formatted line per entry
type defaultLogger struct {
	mu     sync.RWMutex
	level  Level
	logger *log.Logger
}

// NewLogger creates a line logger writing to output.
//
// Example:
//
//	l := NewLogger(INFO, os.Stderr)
//	l.Info("loaded %d rows", n)
func NewLogger(level Level, output io.Writer) Logger {
	return &defaultLogger{
		level:  level,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// SetLevel 设置日志级别
func (l *defaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *defaultLogger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level != OFF && level >= l.level
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] %s", timestamp, level.String(), fmt.Sprintf(format, args...))
}

// discardLogger drops every entry
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}

// prefixLogger tags every entry of a wrapped logger
type prefixLogger struct {
	prefix string
	next   Logger
}

// WithPrefix returns a logger that prepends prefix to every message of l.
// The engine uses it to tag entries with the query id.
func WithPrefix(l Logger, prefix string) Logger {
	if l == nil {
		l = GetDefault()
	}
	return &prefixLogger{prefix: prefix, next: l}
}

func (p *prefixLogger) Debug(format string, args ...interface{}) {
	p.next.Debug(p.prefix+format, args...)
}

func (p *prefixLogger) Info(format string, args ...interface{}) {
	p.next.Info(p.prefix+format, args...)
}

func (p *prefixLogger) Warn(format string, args ...interface{}) {
	p.next.Warn(p.prefix+format, args...)
}

func (p *prefixLogger) Error(format string, args ...interface{}) {
	p.next.Error(p.prefix+format, args...)
}

func (p *prefixLogger) SetLevel(level Level) {
	p.next.SetLevel(level)
}

var (
	defaultMu       sync.RWMutex
	defaultInstance Logger = NewLogger(WARN, os.Stderr)
)

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	defaultMu.Lock()
	defaultInstance = logger
	defaultMu.Unlock()
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultInstance
}

// 便捷的全局日志方法

func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
