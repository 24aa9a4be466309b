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
	"io"
	"log"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is a structured logger wrapping a *logrus.Logger, carrying a
// set of default Fields applied to every entry it emits.
type Logger struct {
	mu     sync.RWMutex
	base   *logrus.Logger
	level  Level
	fields Fields
}

// New returns a Logger writing to out at the given default level.
func New(out io.Writer, level Level) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l := &Logger{base: base, fields: NewFields()}
	l.SetLevel(level)
	return l
}

// SetLevel changes the minimum level this Logger emits. NilLevel
// silences it completely (logrus has no direct equivalent, so this is
// tracked separately and checked before every call reaches logrus).
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	if level != NilLevel {
		l.base.SetLevel(level.logrusLevel())
	}
}

// GetLevel returns the Logger's current minimum level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetFields replaces the Logger's default fields, attached to every
// entry from this point on.
func (l *Logger) SetFields(f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields = f
}

// GetFields returns the Logger's current default fields.
func (l *Logger) GetFields() Fields {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fields
}

func (l *Logger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level != NilLevel && level <= l.level
}

// Entry starts a structured log entry at level, merging extra into the
// Logger's default fields.
func (l *Logger) Entry(level Level, msg string, extra Fields) *Entry {
	return &Entry{logger: l, level: level, message: msg, fields: l.GetFields().Merge(extra)}
}

func (l *Logger) log(level Level, msg string, extra Fields) {
	if !l.enabled(level) {
		return
	}
	fields := l.GetFields().Merge(extra)
	l.base.WithFields(fields.toLogrus()).Log(level.logrusLevel(), msg)
}

func (l *Logger) Debug(msg string, extra Fields)   { l.log(DebugLevel, msg, extra) }
func (l *Logger) Info(msg string, extra Fields)    { l.log(InfoLevel, msg, extra) }
func (l *Logger) Warning(msg string, extra Fields) { l.log(WarnLevel, msg, extra) }
func (l *Logger) Error(msg string, extra Fields)   { l.log(ErrorLevel, msg, extra) }
func (l *Logger) Fatal(msg string, extra Fields)   { l.log(FatalLevel, msg, extra) }

// StdLogger returns a *log.Logger that writes through this Logger at
// the given level, for dependencies that only accept the standard
// library logger type.
func (l *Logger) StdLogger(level Level) *log.Logger {
	return log.New(&stdWriter{logger: l, level: level}, "", 0)
}

type stdWriter struct {
	logger *Logger
	level  Level
}

func (w *stdWriter) Write(p []byte) (int, error) {
	msg := string(p)
	for len(msg) > 0 && (msg[len(msg)-1] == '\n' || msg[len(msg)-1] == '\r') {
		msg = msg[:len(msg)-1]
	}
	w.logger.log(w.level, msg, nil)
	return len(p), nil
}

// Write implements io.Writer at InfoLevel, so a Logger can itself be
// used as an io.Writer (e.g. as http.Server.ErrorLog's backing writer).
func (l *Logger) Write(p []byte) (int, error) {
	return (&stdWriter{logger: l, level: InfoLevel}).Write(p)
}
