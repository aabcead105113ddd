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
	"bytes"
	"strings"
	"sync"
	"testing"
)

// TestLevel_String 测试日志级别的字符串表示
func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("Level(%d).String() = %q, want %q", test.level, got, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{" Info ", INFO, false},
		{"warning", WARN, false},
		{"ERROR", ERROR, false},
		{"none", OFF, false},
		{"verbose", INFO, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestLevelFiltering 测试各级别的过滤
func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   Level
		visible []string
		hidden  []string
	}{
		{DEBUG, []string{"d-msg", "i-msg", "w-msg", "e-msg"}, nil},
		{INFO, []string{"i-msg", "w-msg", "e-msg"}, []string{"d-msg"}},
		{WARN, []string{"w-msg", "e-msg"}, []string{"d-msg", "i-msg"}},
		{ERROR, []string{"e-msg"}, []string{"d-msg", "i-msg", "w-msg"}},
		{OFF, nil, []string{"d-msg", "i-msg", "w-msg", "e-msg"}},
	}

	for _, backend := range []struct {
		name string
		new  func(Level, *bytes.Buffer) Logger
	}{
		{"line", func(l Level, b *bytes.Buffer) Logger { return NewLogger(l, b) }},
		{"zap", func(l Level, b *bytes.Buffer) Logger { return NewZapLogger(l, b) }},
	} {
		for _, tt := range tests {
			t.Run(backend.name+"_"+tt.level.String(), func(t *testing.T) {
				var buf bytes.Buffer
				l := backend.new(tt.level, &buf)
				l.Debug("d-msg")
				l.Info("i-msg")
				l.Warn("w-msg")
				l.Error("e-msg")
				_ = Sync(l)
				out := buf.String()
				for _, s := range tt.visible {
					if !strings.Contains(out, s) {
						t.Errorf("expected %q in output, got: %s", s, out)
					}
				}
				for _, s := range tt.hidden {
					if strings.Contains(out, s) {
						t.Errorf("did not expect %q in output, got: %s", s, out)
					}
				}
			})
		}
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf)
	l.Info("loaded %d rows from %s", 3, "sales.csv")
	out := buf.String()
	if !strings.Contains(out, "[INFO] loaded 3 rows from sales.csv") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(ERROR, &buf)
	l.Warn("first")
	l.SetLevel(DEBUG)
	l.Warn("second")
	_ = Sync(l)
	out := buf.String()
	if strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("SetLevel not applied, output: %s", out)
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := WithPrefix(NewLogger(DEBUG, &buf), "[query 42] ")
	l.Warn("skipping measure %s", "Margin")
	if !strings.Contains(buf.String(), "[query 42] skipping measure Margin") {
		t.Errorf("prefix missing: %s", buf.String())
	}
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.Debug("x")
	l.Error("y")
	l.SetLevel(DEBUG)
}

// TestDefaultLogger 测试全局默认日志器
func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))
	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")

	for _, s := range []string{"global debug", "global info", "global warn", "global error"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected %q in output", s)
		}
	}

	SetDefault(nil)
	if GetDefault() == nil {
		t.Error("SetDefault(nil) should install a discard logger")
	}
}

// TestConcurrentLogging 测试并发写日志
func TestConcurrentLogging(t *testing.T) {
	var buf safeBuffer
	l := NewLogger(INFO, &buf)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("worker %d", i)
			if i == 5 {
				l.SetLevel(DEBUG)
			}
		}(i)
	}
	wg.Wait()
	if got := strings.Count(buf.String(), "worker"); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
