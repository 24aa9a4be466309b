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

import (
	libcbr "github.com/fxamacker/cbor/v2"

	"github.com/sabouaram/subench/buffer"
)

// Frame is a fully decoded packet: its header plus the payload bytes that
// follow it (header not included).
type Frame struct {
	Header  Header
	Payload []byte
}

// TryParseFrame looks at the live bytes of buf and, if they hold a
// complete frame, consumes it (advancing buf's head) and returns it with
// ok=true. If buf does not yet hold enough bytes for a full frame it
// returns ok=false with no error and no bytes consumed, so the caller can
// read more and retry. ErrBadMagic is returned, and nothing is consumed,
// if the header's magic/version word does not match expectedVersion; the
// caller should treat the connection as dead.
func TryParseFrame(buf *buffer.Buffer, expectedVersion uint8) (Frame, bool, error) {
	if buf.Count() < HeaderSize {
		return Frame{}, false, nil
	}
	raw := buf.Bytes()
	hdr := decodeHeader(raw[:HeaderSize])
	if !IsCompatible(hdr.MagicVersion, expectedVersion) {
		return Frame{}, false, ErrBadMagic
	}
	if int(hdr.Length) < HeaderSize {
		return Frame{}, false, ErrBadMagic
	}
	if buf.Count() < int(hdr.Length) {
		return Frame{}, false, nil
	}

	payload := make([]byte, int(hdr.Length)-HeaderSize)
	copy(payload, raw[HeaderSize:hdr.Length])
	buf.AdvanceHead(int(hdr.Length))

	return Frame{Header: hdr, Payload: payload}, true, nil
}

// PeelChannelID splits a CHAN_DATA/CHAN_EOF payload into its leading
// channel id and the remaining bytes.
func PeelChannelID(payload []byte) (uint16, []byte, error) {
	if len(payload) < 2 {
		return 0, nil, ErrTruncated
	}
	return decodeChannelID(payload[:2]), payload[2:], nil
}

// DecodeHello decodes a HELLO frame's payload.
func DecodeHello(payload []byte) (Capabilities, error) {
	var c Capabilities
	err := libcbr.Unmarshal(payload, &c)
	return c, err
}

// DecodeCommand decodes a COMMAND frame's payload.
func DecodeCommand(payload []byte) (CommandDescriptor, error) {
	var d CommandDescriptor
	err := libcbr.Unmarshal(payload, &d)
	return d, err
}

// DecodeTransfer decodes an INJECT/EXTRACT frame's payload.
func DecodeTransfer(payload []byte) (TransferDescriptor, error) {
	var d TransferDescriptor
	err := libcbr.Unmarshal(payload, &d)
	return d, err
}
