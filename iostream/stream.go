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

package iostream

import (
	"bytes"
	"io"
	"os"
)

// Substream is one link of a Stream's chain: a file descriptor or an
// in-memory buffer, read or written uniformly through io.Reader/io.Writer.
type Substream interface {
	io.Reader
	io.Writer
	io.Closer

	// Fd reports the underlying file descriptor, if this substream is
	// fd-backed, so a poller can register interest on it directly.
	Fd() (uintptr, bool)
}

// fdSubstream wraps an *os.File.
type fdSubstream struct {
	f *os.File
}

// NewFDSubstream wraps an open file (or pipe end, or socket-derived file)
// as a Substream.
func NewFDSubstream(f *os.File) Substream { return &fdSubstream{f: f} }

func (s *fdSubstream) Read(p []byte) (int, error)  { return s.f.Read(p) }
func (s *fdSubstream) Write(p []byte) (int, error) { return s.f.Write(p) }
func (s *fdSubstream) Close() error                { return s.f.Close() }
func (s *fdSubstream) Fd() (uintptr, bool)          { return s.f.Fd(), true }

// memSubstream wraps an in-memory buffer, used for chat input segments
// appended as the controller calls ChatGets, and for small inject/extract
// payloads that never touch disk.
type memSubstream struct {
	buf    *bytes.Reader
	closed bool
}

// NewMemSubstream wraps p (copied) as a read-only Substream.
func NewMemSubstream(p []byte) Substream {
	cp := make([]byte, len(p))
	copy(cp, p)
	return &memSubstream{buf: bytes.NewReader(cp)}
}

func (s *memSubstream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	return s.buf.Read(p)
}

func (s *memSubstream) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func (s *memSubstream) Close() error {
	s.closed = true
	return nil
}

func (s *memSubstream) Fd() (uintptr, bool) { return 0, false }

// writerSubstream wraps a plain io.Writer (a bytes.Buffer, an os.File
// opened for writing without needing its fd registered for polling,
// etc.) as a write-only Substream.
type writerSubstream struct {
	w      io.Writer
	closed bool
}

// NewWriterSubstream wraps w as a write-only Substream.
func NewWriterSubstream(w io.Writer) Substream {
	return &writerSubstream{w: w}
}

func (s *writerSubstream) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (s *writerSubstream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	return s.w.Write(p)
}

func (s *writerSubstream) Close() error {
	s.closed = true
	return nil
}

func (s *writerSubstream) Fd() (uintptr, bool) { return 0, false }

// readerSubstream wraps a plain io.Reader as a read-only Substream, for
// callers whose input is already an open stream rather than bytes known
// up front.
type readerSubstream struct {
	r io.Reader
}

// NewReaderSubstream wraps r as a read-only Substream.
func NewReaderSubstream(r io.Reader) Substream {
	return &readerSubstream{r: r}
}

func (s *readerSubstream) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *readerSubstream) Write([]byte) (int, error)   { return 0, io.ErrClosedPipe }
func (s *readerSubstream) Close() error                { return nil }
func (s *readerSubstream) Fd() (uintptr, bool)         { return 0, false }

// Stream is an ordered concatenation of substreams. Reading exhausts the
// current substream before advancing to the next; writing always targets
// the first substream, since write streams (inject destinations, command
// stdin) never chain more than one link at a time in practice but may
// gain further links via Append as chat segments arrive.
type Stream struct {
	links []Substream
}

// New returns an empty Stream.
func New() *Stream { return &Stream{} }

// Append adds a substream to the end of the chain.
func (s *Stream) Append(sub Substream) {
	s.links = append(s.links, sub)
}

// Read implements io.Reader, draining substreams in order and skipping
// ones that are already exhausted.
func (s *Stream) Read(p []byte) (int, error) {
	for len(s.links) > 0 {
		n, err := s.links[0].Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			_ = s.links[0].Close()
			s.links = s.links[1:]
			continue
		}
		return n, err
	}
	return 0, io.EOF
}

// Write writes to the first substream in the chain.
func (s *Stream) Write(p []byte) (int, error) {
	if len(s.links) == 0 {
		return 0, io.ErrClosedPipe
	}
	return s.links[0].Write(p)
}

// GetFD returns the file descriptor of the current (first) substream, if
// it is fd-backed, for registration with a poller.
func (s *Stream) GetFD() (uintptr, bool) {
	if len(s.links) == 0 {
		return 0, false
	}
	return s.links[0].Fd()
}

// Empty reports whether the chain has no more substreams to read from.
func (s *Stream) Empty() bool {
	return len(s.links) == 0
}

// Close closes every remaining substream in the chain.
func (s *Stream) Close() error {
	var first error
	for _, l := range s.links {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.links = nil
	return first
}
