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
	"encoding/binary"

	libcbr "github.com/fxamacker/cbor/v2"

	"github.com/sabouaram/subench/buffer"
)

// version is the protocol version this build of subench speaks.
const version uint8 = 1

// Version returns the protocol version byte.
func Version() uint8 { return version }

// buildWithPayload reserves the header room in front of a freshly written
// payload and writes the header in place, returning the finished frame.
func buildWithPayload(ptype Type, xid uint16, payload []byte) *buffer.Buffer {
	b := buffer.New(HeaderSize + len(payload))
	_ = b.ReserveHead(HeaderSize)
	b.Append(payload)

	hdr := make([]byte, HeaderSize)
	encodeHeader(hdr, Header{
		MagicVersion:  MagicVersionFor(version),
		Type:          ptype,
		Length:        uint16(HeaderSize + len(payload)),
		TransactionID: xid,
	})
	_ = b.PrependHead(hdr)
	return b
}

// BuildHello builds the connection-level capability negotiation packet.
func BuildHello(caps Capabilities) (*buffer.Buffer, error) {
	payload, err := libcbr.Marshal(caps)
	if err != nil {
		return nil, err
	}
	return buildWithPayload(TypeHello, ChannelControl, payload), nil
}

// BuildCommand builds a COMMAND request packet for the given transaction.
func BuildCommand(xid uint16, desc any) (*buffer.Buffer, error) {
	payload, err := libcbr.Marshal(desc)
	if err != nil {
		return nil, err
	}
	return buildWithPayload(TypeCommand, xid, payload), nil
}

// BuildInject builds an INJECT request packet.
func BuildInject(xid uint16, desc any) (*buffer.Buffer, error) {
	payload, err := libcbr.Marshal(desc)
	if err != nil {
		return nil, err
	}
	return buildWithPayload(TypeInject, xid, payload), nil
}

// BuildExtract builds an EXTRACT request packet.
func BuildExtract(xid uint16, desc any) (*buffer.Buffer, error) {
	payload, err := libcbr.Marshal(desc)
	if err != nil {
		return nil, err
	}
	return buildWithPayload(TypeExtract, xid, payload), nil
}

// BuildMajor builds a MAJOR status packet carrying a 32-bit status code.
func BuildMajor(xid uint16, code int32) *buffer.Buffer {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, uint32(code))
	return buildWithPayload(TypeMajor, xid, payload)
}

// BuildMinor builds a MINOR status packet carrying a 32-bit status code.
func BuildMinor(xid uint16, code int32) *buffer.Buffer {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, uint32(code))
	return buildWithPayload(TypeMinor, xid, payload)
}

// DecodeStatus reads the 32-bit code from a MAJOR/MINOR payload.
func DecodeStatus(payload []byte) int32 {
	if len(payload) < 4 {
		return 0
	}
	return int32(binary.BigEndian.Uint32(payload))
}

// BuildIntr builds an interrupt packet. Interrupts are always addressed to
// the connection-level transaction id.
func BuildIntr() *buffer.Buffer {
	return buildWithPayload(TypeIntr, ChannelControl, nil)
}

// BuildTimeout builds the packet emitted when a transaction's deadline
// fires with no MAJOR/MINOR yet sent.
func BuildTimeout(xid uint16) *buffer.Buffer {
	return buildWithPayload(TypeTimeout, xid, nil)
}

// BuildCancel builds the packet that tells the peer every in-flight
// transaction on this transport is being abandoned.
func BuildCancel() *buffer.Buffer {
	return buildWithPayload(TypeCancel, ChannelControl, nil)
}

// BuildExit builds the packet requesting the remote end tear down.
func BuildExit() *buffer.Buffer {
	return buildWithPayload(TypeExit, ChannelControl, nil)
}

// BuildChanData wraps a channel payload already sitting in buf (with
// ChanDataHeadRoom reserved in front of it, as Transaction.pumpSource does) with its
// channel-id prefix and frame header, in place. This is the head-room
// trick from §9: the payload bytes were read directly into buf's tail
// room, and the header is written into buf's front without copying the
// payload a second time.
func BuildChanData(buf *buffer.Buffer, xid uint16, channelID uint16) error {
	chanHdr := make([]byte, 2)
	encodeChannelID(chanHdr, channelID)
	if err := buf.PrependHead(chanHdr); err != nil {
		return err
	}
	hdr := make([]byte, HeaderSize)
	encodeHeader(hdr, Header{
		MagicVersion:  MagicVersionFor(version),
		Type:          TypeChanData,
		Length:        uint16(HeaderSize + buf.Count()),
		TransactionID: xid,
	})
	return buf.PrependHead(hdr)
}

// ChanDataHeadRoom is the head room a source channel must reserve on its
// posted recv buffer so BuildChanData can prepend in place.
const ChanDataHeadRoom = HeaderSize + 2

// BuildChanEOF builds a CHAN_EOF packet for the given channel.
func BuildChanEOF(xid uint16, channelID uint16) *buffer.Buffer {
	payload := make([]byte, 2)
	encodeChannelID(payload, channelID)
	return buildWithPayload(TypeChanEOF, xid, payload)
}
