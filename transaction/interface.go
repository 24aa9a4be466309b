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

import "github.com/sabouaram/subench/protocol"

// Kind names the five shapes of transaction this package dispatches.
type Kind uint8

const (
	Command Kind = iota
	Inject
	Extract
	Chat
	Control
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "command"
	case Inject:
		return "inject"
	case Extract:
		return "extract"
	case Chat:
		return "chat"
	case Control:
		return "control"
	default:
		return "unknown"
	}
}

// Handler implements the behavior specific to one transaction Kind. It is
// the typed replacement for the recv/send function-pointer pair: Recv is
// called once per non-channel packet addressed to the transaction (e.g.
// a COMMAND descriptor on the server side, or a MAJOR/MINOR on the
// client side), and DoIO is called once per event-loop pass to let the
// handler pump whatever local I/O it owns (write queued chat input,
// check inferior exit status, and so on).
type Handler interface {
	// Recv handles a non-channel-data packet. Implementations that do not
	// expect a given packet type should call t.Fail with errcode.Protocol.
	Recv(t *Transaction, typ protocol.Type, payload []byte) error

	// DoIO is invoked every pass of the owning connection's event loop.
	DoIO(t *Transaction) error
}
