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

	"github.com/hashicorp/go-hclog"
)

const (
	hclogArgs = "hclog.args"
	hclogName = "hclog.name"
)

// hcAdapter makes a Logger satisfy hclog.Logger, for dependencies in
// the hashicorp ecosystem (go-plugin subprocess frameworks, in
// particular) that take one directly instead of an io.Writer.
type hcAdapter struct {
	l *Logger
}

// AsHCLog wraps l as an hclog.Logger.
func AsHCLog(l *Logger) hclog.Logger {
	return &hcAdapter{l: l}
}

func (a *hcAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		return
	case hclog.Trace, hclog.Debug:
		a.l.Debug(msg, argsToFields(args))
	case hclog.Info:
		a.l.Info(msg, argsToFields(args))
	case hclog.Warn:
		a.l.Warning(msg, argsToFields(args))
	case hclog.Error:
		a.l.Error(msg, argsToFields(args))
	}
}

func argsToFields(args []interface{}) Fields {
	f := NewFields()
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		f[key] = args[i+1]
	}
	return f
}

func (a *hcAdapter) Trace(msg string, args ...interface{}) { a.l.Debug(msg, argsToFields(args)) }
func (a *hcAdapter) Debug(msg string, args ...interface{}) { a.l.Debug(msg, argsToFields(args)) }
func (a *hcAdapter) Info(msg string, args ...interface{})  { a.l.Info(msg, argsToFields(args)) }
func (a *hcAdapter) Warn(msg string, args ...interface{})  { a.l.Warning(msg, argsToFields(args)) }
func (a *hcAdapter) Error(msg string, args ...interface{}) { a.l.Error(msg, argsToFields(args)) }

func (a *hcAdapter) IsTrace() bool { return a.l.GetLevel() >= DebugLevel }
func (a *hcAdapter) IsDebug() bool { return a.l.GetLevel() >= DebugLevel }
func (a *hcAdapter) IsInfo() bool  { return a.l.GetLevel() >= InfoLevel }
func (a *hcAdapter) IsWarn() bool  { return a.l.GetLevel() >= WarnLevel }
func (a *hcAdapter) IsError() bool { return a.l.GetLevel() >= ErrorLevel }

func (a *hcAdapter) ImpliedArgs() []interface{} {
	if v, ok := a.l.GetFields()[hclogArgs]; ok {
		if s, ok := v.([]interface{}); ok {
			return s
		}
	}
	return nil
}

func (a *hcAdapter) With(args ...interface{}) hclog.Logger {
	a.l.SetFields(a.l.GetFields().Add(hclogArgs, args))
	return a
}

func (a *hcAdapter) Name() string {
	if v, ok := a.l.GetFields()[hclogName]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (a *hcAdapter) Named(name string) hclog.Logger {
	a.l.SetFields(a.l.GetFields().Add(hclogName, name))
	return a
}

func (a *hcAdapter) ResetNamed(name string) hclog.Logger {
	a.l.SetFields(a.l.GetFields().Add(hclogName, name))
	return a
}

func (a *hcAdapter) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		a.l.SetLevel(NilLevel)
	case hclog.Trace, hclog.Debug:
		a.l.SetLevel(DebugLevel)
	case hclog.Info:
		a.l.SetLevel(InfoLevel)
	case hclog.Warn:
		a.l.SetLevel(WarnLevel)
	case hclog.Error:
		a.l.SetLevel(ErrorLevel)
	}
}

func (a *hcAdapter) GetLevel() hclog.Level {
	switch a.l.GetLevel() {
	case NilLevel:
		return hclog.Off
	case DebugLevel:
		return hclog.Debug
	case InfoLevel:
		return hclog.Info
	case WarnLevel:
		return hclog.Warn
	case ErrorLevel, FatalLevel, PanicLevel:
		return hclog.Error
	default:
		return hclog.Info
	}
}

func (a *hcAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	if opts == nil {
		return a.l.StdLogger(a.l.GetLevel())
	}
	var lvl Level
	switch opts.ForceLevel {
	case hclog.Off, hclog.NoLevel:
		lvl = NilLevel
	case hclog.Trace, hclog.Debug:
		lvl = DebugLevel
	case hclog.Warn:
		lvl = WarnLevel
	case hclog.Error:
		lvl = ErrorLevel
	default:
		lvl = InfoLevel
	}
	return a.l.StdLogger(lvl)
}

func (a *hcAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return a.l
}
