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

package channel

import (
	"github.com/sabouaram/subench/iostream"
)

// Direction distinguishes the two ways a Channel can move bytes between
// the wire and the local stream.
type Direction uint8

const (
	// Sink carries CHAN_DATA arriving from the wire into the local stream
	// (e.g. command stdin, inject destination file).
	Sink Direction = iota
	// Source carries bytes read from the local stream out as CHAN_DATA
	// (e.g. command stdout/stderr, extract source file, chat output).
	Source
)

// EOFFunc is invoked the first time a Channel observes end of file in its
// direction. It is never invoked a second time for the same Channel.
type EOFFunc func(c *Channel)

// Channel plugs one direction of a transaction's local I/O into one wire
// channel id. It starts unplugged (no local stream attached) and is
// plugged once the transaction's handler has a stream ready.
type Channel struct {
	ID        uint16
	Direction Direction

	stream *iostream.Stream

	readEOFFired  bool
	writeEOFFired bool
	onReadEOF     EOFFunc
	onWriteEOF    EOFFunc
}

// New constructs an unplugged Channel with the given wire id and direction.
func New(id uint16, dir Direction) *Channel {
	return &Channel{ID: id, Direction: dir}
}

// OnReadEOF registers the callback fired the first time FireReadEOF is
// called (Source exhausted, or Sink's local write side closed).
func (c *Channel) OnReadEOF(fn EOFFunc) { c.onReadEOF = fn }

// OnWriteEOF registers the callback fired the first time the channel's
// write direction is closed (peer sent CHAN_EOF, or local stream can take
// no more writes).
func (c *Channel) OnWriteEOF(fn EOFFunc) { c.onWriteEOF = fn }

// Plug attaches a local stream, making the Channel active.
func (c *Channel) Plug(s *iostream.Stream) {
	c.stream = s
}

// Unplug detaches the local stream without resetting EOF latches or the
// wire id, so a transaction can swap in a fresh stream (chat_gets between
// reads) while keeping the same Channel identity.
func (c *Channel) Unplug() *iostream.Stream {
	s := c.stream
	c.stream = nil
	return s
}

// Plugged reports whether a local stream is currently attached.
func (c *Channel) Plugged() bool {
	return c.stream != nil
}

// Stream returns the currently attached local stream, or nil if unplugged.
func (c *Channel) Stream() *iostream.Stream {
	return c.stream
}

// FireReadEOF invokes the read-EOF callback, if one is set and it has not
// already fired for this Channel.
func (c *Channel) FireReadEOF() {
	if c.readEOFFired {
		return
	}
	c.readEOFFired = true
	if c.onReadEOF != nil {
		c.onReadEOF(c)
	}
}

// FireWriteEOF invokes the write-EOF callback, if one is set and it has
// not already fired for this Channel.
func (c *Channel) FireWriteEOF() {
	if c.writeEOFFired {
		return
	}
	c.writeEOFFired = true
	if c.onWriteEOF != nil {
		c.onWriteEOF(c)
	}
}

// ReadEOFFired reports whether FireReadEOF has already run once.
func (c *Channel) ReadEOFFired() bool { return c.readEOFFired }

// WriteEOFFired reports whether FireWriteEOF has already run once.
func (c *Channel) WriteEOFFired() bool { return c.writeEOFFired }
