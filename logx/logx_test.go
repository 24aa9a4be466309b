/*
 * MIT License
 *
 * Copyright (c) 2026 subench contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Info("should not appear", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged below the level filter, got %q", buf.String())
	}

	l.Error("should appear", nil)
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected error message in output, got %q", buf.String())
	}
}

func TestLoggerNilLevelSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, NilLevel)
	l.Error("never printed", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected NilLevel to silence all output, got %q", buf.String())
	}
}

func TestLoggerDefaultFieldsAttachToEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)
	l.SetFields(NewFields().Add("component", "test"))

	l.Info("hello", nil)
	if !strings.Contains(buf.String(), "component=test") {
		t.Fatalf("expected default field in output, got %q", buf.String())
	}
}

func TestFieldsAddDoesNotMutateReceiver(t *testing.T) {
	base := NewFields().Add("a", 1)
	extended := base.Add("b", 2)

	if _, ok := base["b"]; ok {
		t.Fatal("Add must not mutate the receiver")
	}
	if len(extended) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(extended))
	}
}

func TestEntryWithErrorAttachesErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)

	e := l.Entry(ErrorLevel, "operation failed", nil).WithError(errBoom)
	e.Log()

	if !strings.Contains(buf.String(), "error=\"boom\"") && !strings.Contains(buf.String(), "error=boom") {
		t.Fatalf("expected error field in output, got %q", buf.String())
	}
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if ParseLevel("does-not-exist") != InfoLevel {
		t.Fatal("expected unrecognized level name to default to InfoLevel")
	}
	if ParseLevel("DEBUG") != DebugLevel {
		t.Fatal("expected ParseLevel to be case-insensitive")
	}
}

func TestAsHCLogBridgesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, InfoLevel)
	hc := AsHCLog(l)

	if !hc.IsInfo() {
		t.Fatal("expected IsInfo true at InfoLevel")
	}
	if hc.IsDebug() {
		t.Fatal("expected IsDebug false at InfoLevel")
	}

	hc.Info("via hclog", "key", "value")
	if !strings.Contains(buf.String(), "via hclog") {
		t.Fatalf("expected hclog bridge to reach the underlying logger, got %q", buf.String())
	}
}
