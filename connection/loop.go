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

package connection

import (
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/subench/buffer"
	"github.com/sabouaram/subench/channel"
	"github.com/sabouaram/subench/errcode"
	"github.com/sabouaram/subench/metrics"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/registry"
	"github.com/sabouaram/subench/socket"
	"github.com/sabouaram/subench/transaction"
)

// ErrStopped is returned by calls made after Stop.
var ErrStopped = errors.New("connection: stopped")

// maxPollTimeout bounds how long a single Poll call may block when no
// transaction deadline is nearer, so Stop() is always noticed promptly.
const maxPollTimeout = 1 * time.Second

// Loop drives one transport Endpoint and the transactions multiplexed
// over it. It implements the same Start/Stop/uptime lifecycle contract
// this ecosystem's background-task packages expose.
type Loop struct {
	ep           *socket.Endpoint
	transactions *registry.Registry[*transaction.Transaction]
	version      uint8

	recvBuf *buffer.Buffer

	mu        sync.Mutex
	running   bool
	startedAt time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}

	onFatal func(error)

	metrics         *metrics.Collector
	metricsTportTag string
}

// New constructs a Loop over an already-connected transport endpoint.
func New(ep *socket.Endpoint, version uint8) *Loop {
	return &Loop{
		ep:           ep,
		transactions: registry.New[*transaction.Transaction](),
		version:      version,
		recvBuf:      buffer.New(4 * buffer.MaxPacket),
	}
}

// OnFatal registers a callback invoked once if the transport endpoint
// dies (EOF or I/O error) while the loop is running.
func (l *Loop) OnFatal(fn func(error)) { l.onFatal = fn }

// SetMetrics attaches a metrics.Collector to this loop, labeling every
// sample with transportTag (e.g. "tcp:192.168.1.50:4999"). Passing a nil
// Collector (the zero value of *Loop already has one) disables
// instrumentation; every Collector method tolerates a nil receiver, so
// this never needs to be called at all.
func (l *Loop) SetMetrics(c *metrics.Collector, transportTag string) {
	l.metrics = c
	l.metricsTportTag = transportTag
}

// NewTransaction allocates a wire id and registers a transaction on this
// loop's transport, wiring its Sender to the loop's transmit path.
func (l *Loop) NewTransaction(kind transaction.Kind, handler transaction.Handler) (*transaction.Transaction, error) {
	var tr *transaction.Transaction
	id, err := l.transactions.Next(nil)
	if err != nil {
		return nil, err
	}
	tr = transaction.New(id, kind, handler, l.Send)
	l.transactions.Store(id, tr)
	return tr, nil
}

// Transaction looks up a live transaction by wire id.
func (l *Loop) Transaction(id uint16) (*transaction.Transaction, bool) {
	return l.transactions.Load(id)
}

// Forget removes a transaction from the registry directly, for callers
// that manage a transaction's lifecycle themselves (the wire-protocol
// client side, which never calls SendMajor/SendMinor and so never makes
// Transaction.Done true on its own).
func (l *Loop) Forget(id uint16) {
	l.transactions.Delete(id)
}

// Send queues a built frame on the transport's transmit path.
func (l *Loop) Send(buf *buffer.Buffer) {
	l.ep.Enqueue(buf)
}

// Uptime reports how long the loop has been running, or zero if it has
// never been started.
func (l *Loop) Uptime() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.startedAt.IsZero() {
		return 0
	}
	return time.Since(l.startedAt)
}

// Start begins driving the event loop in a new goroutine and returns
// immediately. Calling Start twice without an intervening Stop is a
// no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.startedAt = time.Now()
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	l.mu.Unlock()

	go l.run()
}

// Stop signals the loop to exit and blocks until it has.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	stopCh := l.stopCh
	doneCh := l.doneCh
	l.mu.Unlock()

	close(stopCh)
	<-doneCh

	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
}

// Running reports whether the loop is currently active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run() {
	defer close(l.doneCh)
	for {
		select {
		case <-l.stopCh:
			return
		default:
		}
		if err := l.pass(); err != nil {
			if l.onFatal != nil {
				l.onFatal(err)
			}
			return
		}
	}
}

// pass runs exactly one iteration of build-poll-set / Poll / dispatch.
//
// The poll set only ever registers fd-backed source channels, so Poll
// can wake promptly when one of those has data ready instead of sitting
// out the full maxPollTimeout; it is not used to decide which
// transactions get serviced below; see the doIO walk.
func (l *Loop) pass() error {
	fds := []unix.PollFd{{Fd: int32(l.ep.Fd()), Events: unix.POLLIN}}
	if l.ep.HasPendingWrites() {
		fds[0].Events |= unix.POLLOUT
	}

	l.transactions.Walk(func(_ uint16, tr *transaction.Transaction) bool {
		if tr == nil {
			return true
		}
		for _, c := range tr.Channels() {
			if c.Direction != channel.Source || !c.Plugged() {
				continue
			}
			fd, ok := c.Stream().GetFD()
			if !ok {
				continue
			}
			fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		}
		return true
	})

	timeout := l.nextTimeout()
	_, err := unix.Poll(fds, timeout)
	if err != nil && err != unix.EINTR {
		return err
	}

	if fds[0].Revents&unix.POLLIN != 0 {
		if err := l.handleTransportRead(); err != nil && err != io.EOF {
			return err
		} else if err == io.EOF {
			return io.EOF
		}
	}
	backpressured := l.ep.Backpressured()
	if backpressured {
		l.metrics.ObserveBackpressurePause(l.metricsTportTag)
	}
	l.metrics.SetQueueDepth(l.metricsTportTag, l.ep.QueueDepth())

	if fds[0].Revents&unix.POLLOUT != 0 {
		n, err := l.ep.Drain()
		l.metrics.AddBytes("out", n)
		if err != nil {
			return err
		}
	}

	// Every non-done transaction is pumped on every pass, not only the
	// ones whose source channel happens to be a poll-ready fd: a
	// stream-backed source (in-memory buffer, a plain io.Reader) never
	// registers an fd at all and would otherwise never be serviced.
	// Source reads are skipped while the transmit queue is backpressured
	// so a slow peer doesn't grow the queue further.
	l.transactions.Walk(func(_ uint16, tr *transaction.Transaction) bool {
		if tr != nil && !tr.Done() {
			tr.DoIO(backpressured)
		}
		return true
	})

	l.expireDeadlines()
	l.reap()
	return nil
}

func (l *Loop) handleTransportRead() error {
	n, ready, err := l.ep.Fill()
	l.metrics.AddBytes("in", n)
	if err != nil {
		return err
	}
	if !ready {
		l.ep.PostRecv(l.recvBuf, buffer.MaxPacket)
	}

	for {
		frame, ok, perr := protocol.TryParseFrame(l.recvBuf, l.version)
		if perr != nil {
			return perr
		}
		if !ok {
			if !l.ep.RecvPosted() {
				l.ep.PostRecv(l.recvBuf, buffer.MaxPacket)
			}
			return nil
		}
		l.dispatch(frame)
	}
}

func (l *Loop) dispatch(frame protocol.Frame) {
	if frame.Header.TransactionID == protocol.ChannelControl {
		switch frame.Header.Type {
		case protocol.TypeCancel:
			l.CancelAll()
		}
		return
	}

	tr, ok := l.transactions.Load(frame.Header.TransactionID)
	if !ok || tr == nil {
		return
	}
	tr.RecvPacket(frame.Header.Type, frame.Payload)
}

func (l *Loop) nextTimeout() int {
	var nearest time.Time
	l.transactions.Walk(func(_ uint16, tr *transaction.Transaction) bool {
		if tr == nil {
			return true
		}
		d, set := tr.Deadline()
		if !set {
			return true
		}
		if nearest.IsZero() || d.Before(nearest) {
			nearest = d
		}
		return true
	})
	if nearest.IsZero() {
		return int(maxPollTimeout / time.Millisecond)
	}
	remain := time.Until(nearest)
	if remain <= 0 {
		return 0
	}
	if remain > maxPollTimeout {
		remain = maxPollTimeout
	}
	return int(remain / time.Millisecond)
}

func (l *Loop) expireDeadlines() {
	now := time.Now()
	var expired []*transaction.Transaction
	l.transactions.Walk(func(_ uint16, tr *transaction.Transaction) bool {
		if tr == nil || tr.Done() {
			return true
		}
		d, set := tr.Deadline()
		if set && !now.Before(d) {
			expired = append(expired, tr)
		}
		return true
	})
	for _, tr := range expired {
		tr.Fail(errcode.CommandTimeout)
	}
}

func (l *Loop) reap() {
	var done []uint16
	l.transactions.Walk(func(id uint16, tr *transaction.Transaction) bool {
		if tr != nil && tr.Done() {
			done = append(done, id)
			if code, ok := tr.Outcome(); ok {
				l.metrics.ObserveTransaction(tr.Kind.String(), code)
			}
		}
		return true
	})
	for _, id := range done {
		l.transactions.Delete(id)
	}
}

// CancelAll fails every live transaction with errcode.CommandCanceled,
// the connection-level response to a CANCEL control packet or a local
// CancelTransactions call.
func (l *Loop) CancelAll() {
	var live []*transaction.Transaction
	l.transactions.Walk(func(_ uint16, tr *transaction.Transaction) bool {
		if tr != nil && !tr.Done() {
			live = append(live, tr)
		}
		return true
	})
	for _, tr := range live {
		tr.Fail(errcode.CommandCanceled)
	}
}

// Disconnect cancels every live transaction and tears down the
// transport.
func (l *Loop) Disconnect() error {
	l.CancelAll()
	l.Stop()
	return l.ep.Close()
}
