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

package socket

import (
	"errors"
	"io"
	"net"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/subench/buffer"
)

// DefaultWatermark is the default transmit queue byte count above which
// Backpressured reports true.
const DefaultWatermark = 256 * 1024

// ErrDead is returned by Fill/Drain once the endpoint has observed a
// fatal error or peer close and Close has not yet been called.
var ErrDead = errors.New("socket: endpoint is dead")

// rawIO is the subset of net.Conn this package drives directly through
// its raw fd rather than through Go's blocking Read/Write, so a single
// poll set external to the runtime netpoller governs readiness.
type rawIO interface {
	syscall.Conn
	Close() error
}

// Endpoint is a non-blocking duplex byte-pipe endpoint: one posted
// receive buffer, and an ordered transmit queue, both drained by the
// owning event loop in response to poll readiness.
type Endpoint struct {
	mu sync.Mutex

	conn rawIO
	fd   uintptr

	recv      *buffer.Buffer
	recvWant  int
	xmit      []*buffer.Buffer
	xmitBytes int
	watermark int

	dead bool
}

// New wraps conn (a net.Conn, or anything exposing SyscallConn, such as
// *net.TCPConn, *net.UnixConn, or an *os.File-backed pipe via
// os.NewFile-derived net.Conn shims) as a non-blocking Endpoint.
func New(conn rawIO) (*Endpoint, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}
	var fd uintptr
	ctlErr := raw.Control(func(fdv uintptr) {
		fd = fdv
		_ = unix.SetNonblock(int(fdv), true)
	})
	if ctlErr != nil {
		return nil, ctlErr
	}
	return &Endpoint{
		conn:      conn,
		fd:        fd,
		watermark: DefaultWatermark,
	}, nil
}

// Fd returns the raw file descriptor, for registration with a poller.
func (e *Endpoint) Fd() uintptr { return e.fd }

// SetWatermark overrides the transmit-queue backpressure watermark.
func (e *Endpoint) SetWatermark(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watermark = n
}

// PostRecv arms the endpoint to read up to n bytes into buf the next time
// Fill is called. Only one recv may be posted at a time.
func (e *Endpoint) PostRecv(buf *buffer.Buffer, n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recv = buf
	e.recvWant = n
}

// RecvPosted reports whether a receive buffer is currently posted.
func (e *Endpoint) RecvPosted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recv != nil
}

// Enqueue appends buf to the transmit queue.
func (e *Endpoint) Enqueue(buf *buffer.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.xmit = append(e.xmit, buf)
	e.xmitBytes += buf.Count()
}

// Backpressured reports whether the transmit queue exceeds the watermark.
func (e *Endpoint) Backpressured() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.xmitBytes > e.watermark
}

// HasPendingWrites reports whether the transmit queue is non-empty.
func (e *Endpoint) HasPendingWrites() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.xmit) > 0
}

// QueueDepth reports the number of bytes currently queued for transmit.
func (e *Endpoint) QueueDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.xmitBytes
}

// Dead reports whether the endpoint observed EOF or a fatal I/O error.
func (e *Endpoint) Dead() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dead
}

// Fill performs one non-blocking read attempt into the posted recv
// buffer's tail room. It returns the number of bytes read, whether a
// full read of recvWant bytes has now accumulated, and an error. A nil
// error with n==0 and ready==false means EAGAIN: the caller should wait
// for the next readability notification. io.EOF means the peer closed
// its write side; the endpoint is marked dead at that point, so later
// Fill and Drain calls return ErrDead.
func (e *Endpoint) Fill() (n int, ready bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dead {
		return 0, false, ErrDead
	}
	if e.recv == nil {
		return 0, false, nil
	}

	slice := e.recv.TailSlice(e.recvWant)
	raw, err := e.conn.SyscallConn()
	if err != nil {
		return 0, false, err
	}

	var readN int
	var readErr error
	ctlErr := raw.Read(func(fd uintptr) bool {
		readN, readErr = unix.Read(int(fd), slice)
		if readErr == unix.EAGAIN {
			readErr = nil
			return false
		}
		return true
	})
	if ctlErr != nil {
		return 0, false, ctlErr
	}
	if readErr != nil {
		return 0, false, readErr
	}
	if readN == 0 {
		e.dead = true
		return 0, false, io.EOF
	}

	e.recv.Grow(readN)
	e.recvWant -= readN
	if e.recvWant <= 0 {
		e.recv = nil
		return readN, true, nil
	}
	return readN, false, nil
}

// Drain performs non-blocking write attempts across the transmit queue
// until it would block or the queue empties. It returns the total bytes
// written.
func (e *Endpoint) Drain() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dead {
		return 0, ErrDead
	}

	total := 0
	for len(e.xmit) > 0 {
		front := e.xmit[0]
		raw, err := e.conn.SyscallConn()
		if err != nil {
			return total, err
		}

		var writeN int
		var writeErr error
		ctlErr := raw.Write(func(fd uintptr) bool {
			writeN, writeErr = unix.Write(int(fd), front.Bytes())
			if writeErr == unix.EAGAIN {
				writeErr = nil
				return false
			}
			return true
		})
		if ctlErr != nil {
			return total, ctlErr
		}
		if writeErr != nil {
			e.dead = true
			return total, writeErr
		}
		if writeN == 0 {
			break
		}

		front.AdvanceHead(writeN)
		e.xmitBytes -= writeN
		total += writeN
		if front.Count() == 0 {
			e.xmit = e.xmit[1:]
		} else {
			break
		}
	}
	return total, nil
}

// ShutdownWrite half-closes the write side, telling the peer no more
// data is coming while still permitting reads (used when a transaction's
// local input side hits EOF but the remote may still be producing
// output).
func (e *Endpoint) ShutdownWrite() error {
	if cw, ok := e.conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return unix.Shutdown(int(e.fd), unix.SHUT_WR)
}

// Close tears down the endpoint.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	e.dead = true
	e.mu.Unlock()
	return e.conn.Close()
}

// asNetConn is a convenience constructor for the common case of wrapping
// a plain net.Conn.
func asNetConn(conn net.Conn) (rawIO, error) {
	rc, ok := conn.(rawIO)
	if !ok {
		return nil, errors.New("socket: connection does not expose a raw fd")
	}
	return rc, nil
}

// NewFromConn wraps a net.Conn as an Endpoint, the common entry point
// used by the tcp and virtio plugins.
func NewFromConn(conn net.Conn) (*Endpoint, error) {
	rc, err := asNetConn(conn)
	if err != nil {
		return nil, err
	}
	return New(rc)
}
