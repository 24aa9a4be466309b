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

package protocol

// Capabilities is the HELLO payload built by BuildHello and read by
// DecodeHello. Neither connection.Loop nor wire.Client sends or waits for
// a HELLO when a transport connects. The payload describes what a side
// supports without guessing from plugin names, and is CBOR-encoded rather than given fixed fields so new
// capabilities can be added without breaking the frame header contract.
type Capabilities struct {
	// ProtocolVersion is the sender's protocol version (redundant with the
	// frame header's magic/version word, carried here too so it survives
	// independent of transport framing in logs and diagnostics).
	ProtocolVersion uint8 `cbor:"version"`

	// Plugin is the name of the transport plugin in use (virtio, serial,
	// ssh, tcp, chroot, local), informational only.
	Plugin string `cbor:"plugin"`

	// Operations lists the transaction kinds the sender will accept:
	// any subset of "command", "inject", "extract", "chat", "control".
	Operations []string `cbor:"operations"`

	// MaxPacket is the largest payload the sender is willing to receive
	// in a single CHAN_DATA frame.
	MaxPacket uint32 `cbor:"max_packet"`
}

// Supports reports whether op is present in the Operations list.
func (c Capabilities) Supports(op string) bool {
	for _, o := range c.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// CommandDescriptor is the CBOR-encoded COMMAND payload: the inferior
// command line plus the context it runs under.
type CommandDescriptor struct {
	Command    string   `cbor:"command"`
	User       string   `cbor:"user"`
	Env        []string `cbor:"env,omitempty"`
	TimeoutSec uint32   `cbor:"timeout"`
	WantStdout bool     `cbor:"stdout"`
	WantStderr bool     `cbor:"stderr"`
}

// TransferDescriptor is the CBOR-encoded INJECT/EXTRACT payload: the local
// and remote file names plus the remote file's permission mode.
type TransferDescriptor struct {
	LocalName  string `cbor:"local_name"`
	RemoteName string `cbor:"remote_name"`
	User       string `cbor:"user"`
	Mode       uint32 `cbor:"mode"`
	Size       int64  `cbor:"size,omitempty"`
}
