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

package transaction

import (
	"fmt"
	"sync"
	"time"

	"github.com/sabouaram/subench/buffer"
	"github.com/sabouaram/subench/channel"
	"github.com/sabouaram/subench/errcode"
	"github.com/sabouaram/subench/protocol"
)

// Sender queues a built frame for transmission on the connection a
// Transaction belongs to. It is supplied by the connection at
// construction time so this package does not need to know about
// socket.Endpoint directly.
type Sender func(buf *buffer.Buffer)

// Transaction is one in-flight command/inject/extract/chat/control
// operation, identified on the wire by ID.
type Transaction struct {
	ID      uint16
	Kind    Kind
	Handler Handler

	send Sender

	mu       sync.Mutex
	channels map[uint16]*channel.Channel

	majorSent bool
	minorSent bool
	done      bool

	outcome    int32
	outcomeSet bool

	deadline time.Time
}

// New constructs a Transaction. send is used to push every frame this
// transaction originates (MAJOR/MINOR/CHAN_DATA/CHAN_EOF) onto the
// owning connection's transmit path.
func New(id uint16, kind Kind, handler Handler, send Sender) *Transaction {
	return &Transaction{
		ID:       id,
		Kind:     kind,
		Handler:  handler,
		send:     send,
		channels: make(map[uint16]*channel.Channel),
	}
}

// SetDeadline arms (or clears, with the zero Time) the transaction's
// timeout.
func (t *Transaction) SetDeadline(d time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadline = d
}

// Deadline returns the currently armed deadline, and whether one is set.
func (t *Transaction) Deadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline, !t.deadline.IsZero()
}

// Done reports whether MAJOR (and, if applicable, MINOR) has already
// been sent and the transaction should be reaped by the connection.
func (t *Transaction) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// AddChannel registers a channel under this transaction, keyed by its
// wire id.
func (t *Transaction) AddChannel(c *channel.Channel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channels[c.ID] = c
}

// Channel looks up a previously registered channel by id.
func (t *Transaction) Channel(id uint16) (*channel.Channel, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.channels[id]
	return c, ok
}

// Channels returns a snapshot slice of every channel registered on this
// transaction.
func (t *Transaction) Channels() []*channel.Channel {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*channel.Channel, 0, len(t.channels))
	for _, c := range t.channels {
		out = append(out, c)
	}
	return out
}

// RecvPacket dispatches one packet addressed to this transaction: wire
// CHAN_DATA/CHAN_EOF are routed to the matching channel directly (mirrors
// how the source transaction handling separates channel traffic from
// everything else before it ever reaches the per-kind handler), anything
// else goes to Handler.Recv.
func (t *Transaction) RecvPacket(typ protocol.Type, payload []byte) {
	if t.Done() {
		return
	}

	switch typ {
	case protocol.TypeChanData:
		id, rest, err := protocol.PeelChannelID(payload)
		if err != nil {
			return
		}
		c, ok := t.Channel(id)
		if !ok || !c.Plugged() {
			return
		}
		if _, err := c.Stream().Write(rest); err != nil {
			t.Fail(errcode.Transport)
		}
		return

	case protocol.TypeChanEOF:
		id, _, err := protocol.PeelChannelID(payload)
		if err != nil {
			return
		}
		c, ok := t.Channel(id)
		if !ok {
			return
		}
		c.FireWriteEOF()
		return
	}

	if t.Handler == nil {
		t.Fail(errcode.Protocol)
		return
	}
	if err := t.Handler.Recv(t, typ, payload); err != nil {
		t.Fail(errcode.Protocol)
	}
}

// DoIO pumps the transaction's channels (firing ReadEOF once a source
// channel's local stream is exhausted, forwarding CHAN_DATA as it
// produces bytes) and then delegates to Handler.DoIO for anything
// kind-specific. backpressured, when true, skips the source pump for
// this pass (the transport's transmit queue is already over its
// watermark, so reading more source bytes would only grow it further)
// while still running the kind-specific handler.
func (t *Transaction) DoIO(backpressured bool) {
	if t.Done() {
		return
	}
	if !backpressured {
		for _, c := range t.Channels() {
			if c.Direction != channel.Source || !c.Plugged() {
				continue
			}
			t.pumpSource(c)
		}
	}
	if t.Handler != nil {
		if err := t.Handler.DoIO(t); err != nil {
			t.Fail(errcode.Internal)
		}
	}
}

func (t *Transaction) pumpSource(c *channel.Channel) {
	buf := buffer.New(protocol.ChanDataHeadRoom + buffer.MaxPacket)
	if err := buf.ReserveHead(protocol.ChanDataHeadRoom); err != nil {
		t.Fail(errcode.Internal)
		return
	}
	slice := buf.TailSlice(buffer.MaxPacket)
	n, err := c.Stream().Read(slice)
	if n > 0 {
		buf.Grow(n)
		if buildErr := protocol.BuildChanData(buf, t.ID, c.ID); buildErr != nil {
			t.Fail(errcode.Internal)
			return
		}
		t.send(buf)
	}
	if err != nil {
		c.FireReadEOF()
		t.send(protocol.BuildChanEOF(t.ID, c.ID))
	}
}

// SendMajor sends the MAJOR status for this transaction. It is a
// programmer error to call it twice; the second call is a no-op beyond
// surfacing the ordering violation through done/major/minor bookkeeping
// it already enforces.
func (t *Transaction) SendMajor(code int32) {
	t.mu.Lock()
	if t.majorSent {
		t.mu.Unlock()
		return
	}
	t.majorSent = true
	t.mu.Unlock()
	t.send(protocol.BuildMajor(t.ID, code))
}

// SendMinor sends the MINOR status for this transaction and marks it
// done. SendMajor must already have been sent.
func (t *Transaction) SendMinor(code int32) {
	t.mu.Lock()
	if !t.majorSent || t.minorSent {
		t.mu.Unlock()
		return
	}
	t.minorSent = true
	t.done = true
	if !t.outcomeSet {
		t.outcome = code
		t.outcomeSet = true
	}
	t.mu.Unlock()
	t.send(protocol.BuildMinor(t.ID, code))
}

// Fail is the shortcut used throughout this package and its handlers:
// send whichever of MAJOR/MINOR has not gone out yet, carrying code, and
// mark the transaction done unconditionally, even though a failure
// reported only through MAJOR leaves no MINOR on the wire. Calling Fail
// on a transaction that is already done (both statuses sent, or an
// earlier Fail) is a logic error and panics; a second Fail never sends
// the missing MINOR. This mirrors the abort() in the dispatch this package's failure path is
// modeled on.
func (t *Transaction) Fail(code errcode.Code) {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		panic(fmt.Sprintf("transaction %d: Fail called after major and minor already sent", t.ID))
	}
	if !t.outcomeSet {
		t.outcome = code.Int32()
		t.outcomeSet = true
	}
	switch {
	case !t.majorSent:
		t.majorSent = true
		t.done = true
		t.mu.Unlock()
		t.send(protocol.BuildMajor(t.ID, code.Int32()))
	case !t.minorSent:
		t.minorSent = true
		t.done = true
		t.mu.Unlock()
		t.send(protocol.BuildMinor(t.ID, code.Int32()))
	default:
		t.mu.Unlock()
	}
}

// Outcome reports the status code this transaction finished with, once
// Done is true: the code of the first status that set it, i.e. the
// errcode.Code passed to Fail, or the MINOR exit status. The
// second return is false until the transaction has completed.
func (t *Transaction) Outcome() (int32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome, t.outcomeSet
}

// Complete sends MAJOR(0) followed by MINOR(exitStatus), the normal
// success path for a command transaction once the inferior has exited.
func (t *Transaction) Complete(exitStatus int32) {
	t.SendMajor(0)
	t.SendMinor(exitStatus)
}
