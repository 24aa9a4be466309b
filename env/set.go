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

package env

import "strings"

// Set is an ordered collection of "NAME=VALUE" strings, unique by NAME.
// The zero value is an empty, usable Set.
type Set struct {
	names []string
	index map[string]int
}

// New returns a Set seeded from "NAME=VALUE" strings. Malformed entries
// (no '=') are ignored.
func New(entries ...string) *Set {
	s := &Set{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if name, value, ok := split(e); ok {
			s.Set(name, value)
		}
	}
	return s
}

func split(entry string) (name, value string, ok bool) {
	i := strings.IndexByte(entry, '=')
	if i < 0 {
		return "", "", false
	}
	return entry[:i], entry[i+1:], true
}

func (s *Set) ensure() {
	if s.index == nil {
		s.index = make(map[string]int)
	}
}

// Get returns the value bound to name and whether it was present.
func (s *Set) Get(name string) (string, bool) {
	s.ensure()
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	_, v, _ := split(s.names[i])
	return v, true
}

// Set binds name to value, overwriting any prior binding in place (the
// original position is kept so callers see stable ordering across edits).
func (s *Set) Set(name, value string) {
	s.ensure()
	entry := name + "=" + value
	if i, ok := s.index[name]; ok {
		s.names[i] = entry
		return
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, entry)
}

// Unset removes name, if present.
func (s *Set) Unset(name string) {
	s.ensure()
	i, ok := s.index[name]
	if !ok {
		return
	}
	delete(s.index, name)
	s.names = append(s.names[:i], s.names[i+1:]...)
	for n, idx := range s.index {
		if idx > i {
			s.index[n] = idx - 1
		}
	}
}

// Len returns the number of bindings.
func (s *Set) Len() int {
	return len(s.names)
}

// Strings returns the "NAME=VALUE" entries in insertion order. The
// returned slice is a copy and safe to mutate.
func (s *Set) Strings() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return New(s.Strings()...)
}

// MergeInferior adds every binding from def whose name is not already
// defined in s; names already present in s are left unchanged. This is
// the "per-target default environment" merge used by the command
// descriptor: a command's own env always wins over the target's default.
func (s *Set) MergeInferior(def *Set) {
	if def == nil {
		return
	}
	s.ensure()
	for _, entry := range def.names {
		name, value, ok := split(entry)
		if !ok {
			continue
		}
		if _, present := s.index[name]; present {
			continue
		}
		s.Set(name, value)
	}
}
