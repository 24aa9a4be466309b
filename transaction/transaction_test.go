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

package transaction_test

import (
	"testing"

	"github.com/sabouaram/subench/buffer"
	"github.com/sabouaram/subench/errcode"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/transaction"
)

type nopHandler struct {
	recvCalls int
	doIOCalls int
}

func (h *nopHandler) Recv(t *transaction.Transaction, typ protocol.Type, payload []byte) error {
	h.recvCalls++
	return nil
}

func (h *nopHandler) DoIO(t *transaction.Transaction) error {
	h.doIOCalls++
	return nil
}

func TestMajorMustPrecedeMinor(t *testing.T) {
	var sent []*buffer.Buffer
	send := func(b *buffer.Buffer) { sent = append(sent, b) }

	tr := transaction.New(1, transaction.Command, &nopHandler{}, send)
	tr.SendMinor(5) // must be ignored: major not sent yet
	if len(sent) != 0 {
		t.Fatalf("SendMinor before SendMajor must be a no-op, got %d sends", len(sent))
	}

	tr.SendMajor(0)
	tr.SendMinor(5)
	if len(sent) != 2 {
		t.Fatalf("want 2 frames sent, got %d", len(sent))
	}
	if !tr.Done() {
		t.Fatalf("want Done() true after major+minor")
	}
}

func TestSendMajorOnlyOnce(t *testing.T) {
	var count int
	send := func(*buffer.Buffer) { count++ }
	tr := transaction.New(2, transaction.Command, &nopHandler{}, send)

	tr.SendMajor(0)
	tr.SendMajor(0)
	if count != 1 {
		t.Fatalf("SendMajor fired %d times, want 1", count)
	}
}

func TestFailSendsWhicheverIsMissing(t *testing.T) {
	var types []protocol.Type
	send := func(b *buffer.Buffer) {
		buf := buffer.New(32)
		buf.Append(b.Bytes())
		frame, ok, err := protocol.TryParseFrame(buf, protocol.Version())
		if err != nil || !ok {
			t.Fatalf("parse: ok=%v err=%v", ok, err)
		}
		types = append(types, frame.Header.Type)
	}
	tr := transaction.New(3, transaction.Command, &nopHandler{}, send)

	tr.Fail(errcode.CommandTimeout)
	if len(types) != 1 || types[0] != protocol.TypeMajor {
		t.Fatalf("types = %v, want [MAJOR]", types)
	}
}

func TestRecvPacketDelegatesToHandler(t *testing.T) {
	h := &nopHandler{}
	tr := transaction.New(4, transaction.Command, h, func(*buffer.Buffer) {})
	tr.RecvPacket(protocol.TypeCommand, []byte{})
	if h.recvCalls != 1 {
		t.Fatalf("recvCalls = %d, want 1", h.recvCalls)
	}
}

func TestRecvPacketIgnoredAfterDone(t *testing.T) {
	h := &nopHandler{}
	tr := transaction.New(5, transaction.Command, h, func(*buffer.Buffer) {})
	tr.SendMajor(0)
	tr.SendMinor(0)

	tr.RecvPacket(protocol.TypeCommand, []byte{})
	if h.recvCalls != 0 {
		t.Fatalf("handler invoked after Done(), recvCalls = %d", h.recvCalls)
	}
}
