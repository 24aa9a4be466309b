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

package registry_test

import (
	"testing"

	"github.com/sabouaram/subench/registry"
)

func TestNextAllocatesDistinctIds(t *testing.T) {
	r := registry.New[string]()
	a, err := r.Next("a")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	b, err := r.Next("b")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if a == b {
		t.Fatalf("Next returned duplicate id %d", a)
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}

func TestNextNeverAllocatesIdZero(t *testing.T) {
	r := registry.New[string]()
	for i := 0; i < 10; i++ {
		id, err := r.Next("v")
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if id == 0 {
			t.Fatalf("Next allocated reserved id 0")
		}
	}
}

func TestDeleteFreesIdForReuse(t *testing.T) {
	r := registry.New[int]()
	id, _ := r.Next(1)
	r.Delete(id)
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after delete", r.Len())
	}
	if _, ok := r.Load(id); ok {
		t.Fatalf("Load after Delete should miss")
	}
}

func TestWalkVisitsEveryEntry(t *testing.T) {
	r := registry.New[int]()
	ids := map[uint16]bool{}
	for i := 0; i < 5; i++ {
		id, err := r.Next(i)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		ids[id] = true
	}

	seen := map[uint16]bool{}
	r.Walk(func(id uint16, v int) bool {
		seen[id] = true
		return true
	})

	if len(seen) != len(ids) {
		t.Fatalf("Walk visited %d, want %d", len(seen), len(ids))
	}
}

func TestStoreOverwritesExisting(t *testing.T) {
	r := registry.New[string]()
	r.Store(5, "first")
	r.Store(5, "second")
	v, ok := r.Load(5)
	if !ok || v != "second" {
		t.Fatalf("v=%q ok=%v, want second/true", v, ok)
	}
}
