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

// Entry is a single log record under construction: a message plus
// fields that can be extended with WithField/WithError before being
// emitted with Log.
type Entry struct {
	logger  *Logger
	level   Level
	message string
	fields  Fields
	err     error
}

// WithField returns a copy of e with key bound to val.
func (e *Entry) WithField(key string, val interface{}) *Entry {
	cp := *e
	cp.fields = e.fields.Add(key, val)
	return &cp
}

// WithError attaches err to the entry under the conventional "error"
// field key.
func (e *Entry) WithError(err error) *Entry {
	cp := *e
	cp.err = err
	cp.fields = e.fields.Add("error", err.Error())
	return &cp
}

// Log emits the entry through its originating Logger.
func (e *Entry) Log() {
	e.logger.log(e.level, e.message, e.fields)
}
