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

package buffer

import (
	"bytes"
	"errors"
)

// ErrNoHeadRoom is returned by ReserveHead when the buffer already holds
// bytes and cannot shift them to make room without a copy the caller did
// not ask for.
var ErrNoHeadRoom = errors.New("buffer: no head room available")

// Buffer is a contiguous byte region addressed by three cursors:
// 0 <= head <= tail <= end. Count is tail-head, HeadRoom is head,
// TailRoom is end-tail.
type Buffer struct {
	data []byte
	head int
	tail int
}

// New allocates a Buffer with the given total capacity and no reserved
// head room.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Count returns the number of live bytes between head and tail.
func (b *Buffer) Count() int {
	return b.tail - b.head
}

// HeadRoom returns the number of bytes available in front of head.
func (b *Buffer) HeadRoom() int {
	return b.head
}

// TailRoom returns the number of bytes available after tail.
func (b *Buffer) TailRoom() int {
	return len(b.data) - b.tail
}

// Bytes returns the live region [head:tail]. The slice aliases the
// buffer's storage and is invalidated by any mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data[b.head:b.tail]
}

// ReserveHead makes at least n bytes of head room exist in front of the
// live region. If the head room is already n or more it does nothing;
// otherwise it fails with ErrNoHeadRoom whenever the buffer holds data
// (live bytes are never shifted), so callers reserve head room before
// appending the payload, never after.
func (b *Buffer) ReserveHead(n int) error {
	if n <= b.head {
		return nil
	}
	if b.Count() > 0 {
		return ErrNoHeadRoom
	}
	b.ensureCapacity(n + b.TailRoom())
	b.head = n
	b.tail = n
	return nil
}

// PrependHead writes p into the reserved head room, immediately in front
// of the live region, and extends head backward over it. It is an error to
// prepend more bytes than HeadRoom() currently holds.
func (b *Buffer) PrependHead(p []byte) error {
	if len(p) > b.HeadRoom() {
		return ErrNoHeadRoom
	}
	b.head -= len(p)
	copy(b.data[b.head:], p)
	return nil
}

// EnsureTailRoom grows the backing array, if needed, so TailRoom() >= n.
func (b *Buffer) EnsureTailRoom(n int) {
	b.ensureCapacity(b.tail + n)
}

func (b *Buffer) ensureCapacity(total int) {
	if total <= len(b.data) {
		return
	}
	grown := make([]byte, total)
	copy(grown, b.data)
	b.data = grown
}

// Append copies p onto the tail, growing the backing array if necessary.
func (b *Buffer) Append(p []byte) {
	b.EnsureTailRoom(len(p))
	b.tail += copy(b.data[b.tail:], p)
}

// TailSlice returns a slice into the unused tail room of at least n bytes,
// growing if necessary, so callers can read() directly into the buffer.
func (b *Buffer) TailSlice(n int) []byte {
	b.EnsureTailRoom(n)
	return b.data[b.tail : b.tail+n]
}

// Grow records that n bytes were just written into the slice returned by
// TailSlice, advancing tail.
func (b *Buffer) Grow(n int) {
	b.tail += n
}

// Pull removes and returns up to n bytes from the head of the live region,
// advancing head. It returns fewer than n bytes at the end of the data.
func (b *Buffer) Pull(n int) []byte {
	if n > b.Count() {
		n = b.Count()
	}
	out := make([]byte, n)
	copy(out, b.data[b.head:b.head+n])
	b.head += n
	return out
}

// AdvanceHead drops n bytes from the front of the live region without
// copying them out, for callers that already consumed the bytes in place.
func (b *Buffer) AdvanceHead(n int) {
	if n > b.Count() {
		n = b.Count()
	}
	b.head += n
}

// Index returns the offset of the first occurrence of sub within the live
// region, or -1 if absent. A naive search is sufficient: candidate strings
// in chat_expect are short and the buffer rarely exceeds a few kilobytes.
func (b *Buffer) Index(sub []byte) int {
	return bytes.Index(b.Bytes(), sub)
}

// Reset discards all live bytes and head room, returning the buffer to its
// just-allocated state while keeping its backing array.
func (b *Buffer) Reset() {
	b.head = 0
	b.tail = 0
}
