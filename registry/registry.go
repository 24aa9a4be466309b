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

package registry

import (
	"errors"
	"sync"
)

// ErrFull is returned by Next when every id in the 16-bit space is
// already in use.
var ErrFull = errors.New("registry: id space exhausted")

// Registry is a concurrency-safe map from uint16 id to value of type T.
type Registry[T any] struct {
	mu     sync.RWMutex
	values map[uint16]T
	cursor uint16
}

// New returns an empty Registry whose Next allocates ordinary ids
// starting at 1; id 0 is never handed out (connection.Loop reserves it
// for connection-level control packets).
func New[T any]() *Registry[T] {
	return &Registry[T]{values: make(map[uint16]T), cursor: 1}
}

// Next allocates and reserves the next unused id, storing v under it and
// returning the id. It wraps around the 16-bit space, skipping id 0 and
// any id already in use, and returns ErrFull only once every other id is
// taken.
func (r *Registry[T]) Next(v T) (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i <= 0xFFFF; i++ {
		id := r.cursor
		r.cursor++
		if r.cursor == 0 {
			r.cursor = 1
		}
		if id == 0 {
			continue
		}
		if _, taken := r.values[id]; !taken {
			r.values[id] = v
			return id, nil
		}
	}
	var zero T
	_ = zero
	return 0, ErrFull
}

// Store sets the value for id explicitly, overwriting any existing entry.
func (r *Registry[T]) Store(id uint16, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[id] = v
}

// Load returns the value stored under id, if any.
func (r *Registry[T]) Load(id uint16) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[id]
	return v, ok
}

// Delete removes id from the registry, freeing it for reuse by Next.
func (r *Registry[T]) Delete(id uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, id)
}

// Len reports how many ids are currently in use.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Walk calls fn once for every (id, value) pair currently stored. fn must
// not call back into the Registry; Walk holds a read lock for its
// duration.
func (r *Registry[T]) Walk(fn func(id uint16, v T) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, v := range r.values {
		if !fn(id, v) {
			return
		}
	}
}

// Ids returns a snapshot slice of every id currently in use.
func (r *Registry[T]) Ids() []uint16 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint16, 0, len(r.values))
	for id := range r.values {
		out = append(out, id)
	}
	return out
}
