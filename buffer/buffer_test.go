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

package buffer_test

import (
	"bytes"
	"testing"

	"github.com/sabouaram/subench/buffer"
)

func TestAppendPullRoundTrip(t *testing.T) {
	b := buffer.New(16)
	b.Append([]byte("hello"))
	if b.Count() != 5 {
		t.Fatalf("count = %d, want 5", b.Count())
	}
	got := b.Pull(5)
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("pull = %q", got)
	}
	if b.Count() != 0 {
		t.Fatalf("count after pull = %d, want 0", b.Count())
	}
}

func TestReserveHeadThenPrepend(t *testing.T) {
	b := buffer.New(32)
	if err := b.ReserveHead(8); err != nil {
		t.Fatalf("ReserveHead: %v", err)
	}
	b.Append([]byte("payload"))
	if err := b.PrependHead([]byte("HEADER!!")); err != nil {
		t.Fatalf("PrependHead: %v", err)
	}
	if got := string(b.Bytes()); got != "HEADER!!payload" {
		t.Fatalf("bytes = %q", got)
	}
}

func TestReserveHeadFailsWithLiveData(t *testing.T) {
	b := buffer.New(32)
	b.Append([]byte("x"))
	if err := b.ReserveHead(8); err != buffer.ErrNoHeadRoom {
		t.Fatalf("err = %v, want ErrNoHeadRoom", err)
	}
}

func TestIndex(t *testing.T) {
	b := buffer.New(32)
	b.Append([]byte("READY> "))
	if off := b.Index([]byte("READY>")); off != 0 {
		t.Fatalf("Index = %d, want 0", off)
	}
	if off := b.Index([]byte("nope")); off != -1 {
		t.Fatalf("Index = %d, want -1", off)
	}
}

func TestGrowBeyondCapacity(t *testing.T) {
	b := buffer.New(2)
	b.Append([]byte("this is longer than two bytes"))
	if b.Count() != len("this is longer than two bytes") {
		t.Fatalf("count = %d", b.Count())
	}
}
