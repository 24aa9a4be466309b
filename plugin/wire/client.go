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

package wire

import (
	"context"
	"errors"
	"io"

	"github.com/sabouaram/subench/channel"
	"github.com/sabouaram/subench/connection"
	"github.com/sabouaram/subench/errcode"
	"github.com/sabouaram/subench/iostream"
	"github.com/sabouaram/subench/metrics"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/socket"
	"github.com/sabouaram/subench/transaction"
)

const (
	chanStdin  uint16 = 0
	chanStdout uint16 = 1
	chanStderr uint16 = 2
)

// Client drives a connected socket.Endpoint that speaks the framed wire
// protocol, implementing plugin.CommandRunner, plugin.FileInjector,
// plugin.FileExtractor, plugin.Interrupter, and plugin.Canceler on top
// of connection.Loop. It does not implement plugin.ChatRunner.
type Client struct {
	name string
	loop *connection.Loop
}

// NewClient starts a connection.Loop over ep and returns a Client
// driving it. name is used purely for diagnostics (plugin.Transport.Name).
func NewClient(name string, ep *socket.Endpoint, version uint8) *Client {
	loop := connection.New(ep, version)
	loop.Start()
	return &Client{name: name, loop: loop}
}

func (c *Client) Name() string { return c.name }

// SetMetrics attaches a metrics.Collector to this client's underlying
// connection.Loop, labeled with this client's name. Passing a nil
// Collector disables instrumentation.
func (c *Client) SetMetrics(m *metrics.Collector) {
	c.loop.SetMetrics(m, c.name)
}

func (c *Client) Close() error {
	return c.loop.Disconnect()
}

// statusHandler captures the MAJOR/MINOR frames the server sends for a
// client-owned transaction; the client itself never calls
// Transaction.SendMajor/SendMinor.
type statusHandler struct {
	major chan int32
	minor chan int32
}

func newStatusHandler() *statusHandler {
	return &statusHandler{major: make(chan int32, 1), minor: make(chan int32, 1)}
}

func (h *statusHandler) Recv(t *transaction.Transaction, typ protocol.Type, payload []byte) error {
	switch typ {
	case protocol.TypeMajor:
		h.major <- protocol.DecodeStatus(payload)
	case protocol.TypeMinor:
		h.minor <- protocol.DecodeStatus(payload)
	}
	return nil
}

func (h *statusHandler) DoIO(*transaction.Transaction) error { return nil }

func waitStatus(ctx context.Context, ch chan int32) (int32, error) {
	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// RunTest sends a COMMAND descriptor, streams in to the server over the
// stdin channel (if non-nil), copies CHAN_DATA for stdout/stderr to the
// given writers, and returns the inferior's exit status once MINOR
// arrives.
func (c *Client) RunTest(ctx context.Context, desc protocol.CommandDescriptor, in io.Reader, stdout, stderr io.Writer) (int32, error) {
	h := newStatusHandler()
	tr, err := c.loop.NewTransaction(transaction.Command, h)
	if err != nil {
		return 0, err
	}
	defer c.loop.Forget(tr.ID)

	if in != nil {
		stdinCh := channel.New(chanStdin, channel.Source)
		s := iostream.New()
		s.Append(iostream.NewReaderSubstream(in))
		stdinCh.Plug(s)
		tr.AddChannel(stdinCh)
	}
	if desc.WantStdout && stdout != nil {
		outCh := channel.New(chanStdout, channel.Sink)
		s := iostream.New()
		s.Append(iostream.NewWriterSubstream(stdout))
		outCh.Plug(s)
		tr.AddChannel(outCh)
	}
	if desc.WantStderr && stderr != nil {
		errCh := channel.New(chanStderr, channel.Sink)
		s := iostream.New()
		s.Append(iostream.NewWriterSubstream(stderr))
		errCh.Plug(s)
		tr.AddChannel(errCh)
	}

	frame, err := protocol.BuildCommand(tr.ID, desc)
	if err != nil {
		return 0, err
	}
	c.loop.Send(frame)

	if major, err := waitStatus(ctx, h.major); err != nil {
		return 0, err
	} else if major != 0 {
		return 0, errcode.FromMajorMinor(major, 0)
	}

	minor, err := waitStatus(ctx, h.minor)
	if err != nil {
		return 0, err
	}
	return minor, nil
}

// InjectFile sends a TransferDescriptor and then streams src as CHAN_DATA
// on the stdin channel, finishing with CHAN_EOF.
func (c *Client) InjectFile(ctx context.Context, desc protocol.TransferDescriptor, src io.Reader) error {
	h := newStatusHandler()
	tr, err := c.loop.NewTransaction(transaction.Inject, h)
	if err != nil {
		return err
	}
	defer c.loop.Forget(tr.ID)

	ch := channel.New(chanStdin, channel.Source)
	s := iostream.New()
	s.Append(iostream.NewReaderSubstream(src))
	ch.Plug(s)
	tr.AddChannel(ch)

	frame, err := protocol.BuildInject(tr.ID, desc)
	if err != nil {
		return err
	}
	c.loop.Send(frame)

	major, err := waitStatus(ctx, h.major)
	if err != nil {
		return err
	}
	if major != 0 {
		return errcode.FromMajorMinor(major, 0)
	}
	minor, err := waitStatus(ctx, h.minor)
	if err != nil {
		return err
	}
	if minor != 0 {
		return errcode.FromMajorMinor(0, minor)
	}
	return nil
}

// ExtractFile sends a TransferDescriptor and copies the CHAN_DATA the
// server streams back on the stdout channel into dst.
func (c *Client) ExtractFile(ctx context.Context, desc protocol.TransferDescriptor, dst io.Writer) error {
	h := newStatusHandler()
	tr, err := c.loop.NewTransaction(transaction.Extract, h)
	if err != nil {
		return err
	}
	defer c.loop.Forget(tr.ID)

	ch := channel.New(chanStdout, channel.Sink)
	s := iostream.New()
	s.Append(iostream.NewWriterSubstream(dst))
	ch.Plug(s)
	tr.AddChannel(ch)

	frame, err := protocol.BuildExtract(tr.ID, desc)
	if err != nil {
		return err
	}
	c.loop.Send(frame)

	major, err := waitStatus(ctx, h.major)
	if err != nil {
		return err
	}
	if major != 0 {
		return errcode.FromMajorMinor(major, 0)
	}
	minor, err := waitStatus(ctx, h.minor)
	if err != nil {
		return err
	}
	if minor != 0 {
		return errcode.FromMajorMinor(0, minor)
	}
	return nil
}

// InterruptCommand sends an INTR control packet, asking the server to
// interrupt whatever command transaction is currently running.
func (c *Client) InterruptCommand() error {
	c.loop.Send(protocol.BuildIntr())
	return nil
}

// CancelTransactions sends a CANCEL control packet and fails every
// locally tracked transaction.
func (c *Client) CancelTransactions() {
	c.loop.Send(protocol.BuildCancel())
	c.loop.CancelAll()
}

var errChatUnsupported = errors.New("wire: interactive chat is not implemented over the generic wire client")

// ChatBegin is intentionally not implemented at this layer: chat needs a
// persistent bidirectional channel pair kept open across multiple Gets/
// Expect calls, which is plugin-specific enough (ssh keeps a live
// session, tcp/virtio would need a dedicated chat sub-protocol) that it
// is implemented per plugin rather than shared here.
func (c *Client) chatUnsupported() error { return errChatUnsupported }
