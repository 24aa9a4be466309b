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

// Fields is a set of structured key/value pairs attached to a log
// entry. Every mutating method returns a new Fields rather than
// modifying the receiver, so a Logger's default Fields can be handed
// out to callers without aliasing surprises.
type Fields map[string]interface{}

// NewFields returns an empty Fields.
func NewFields() Fields {
	return make(Fields)
}

func (f Fields) clone() Fields {
	res := make(Fields, len(f))
	for k, v := range f {
		res[k] = v
	}
	return res
}

// Add returns a copy of f with key bound to val.
func (f Fields) Add(key string, val interface{}) Fields {
	res := f.clone()
	res[key] = val
	return res
}

// Merge returns a copy of f with every entry of other added, other's
// values winning on key collision.
func (f Fields) Merge(other Fields) Fields {
	res := f.clone()
	for k, v := range other {
		res[k] = v
	}
	return res
}

func (f Fields) toLogrus() map[string]interface{} {
	return map[string]interface{}(f.clone())
}
