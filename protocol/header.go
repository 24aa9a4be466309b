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

import "encoding/binary"

// Type identifies the kind of packet a frame carries.
type Type uint8

const (
	TypeHello    Type = 1
	TypeCommand  Type = 2
	TypeInject   Type = 3
	TypeExtract  Type = 4
	TypeChanData Type = 5
	TypeChanEOF  Type = 6
	TypeMajor    Type = 7
	TypeMinor    Type = 8
	TypeIntr     Type = 9
	TypeTimeout  Type = 10
	TypeCancel   Type = 11
	TypeExit     Type = 12
)

func (t Type) String() string {
	switch t {
	case TypeHello:
		return "HELLO"
	case TypeCommand:
		return "COMMAND"
	case TypeInject:
		return "INJECT"
	case TypeExtract:
		return "EXTRACT"
	case TypeChanData:
		return "CHAN_DATA"
	case TypeChanEOF:
		return "CHAN_EOF"
	case TypeMajor:
		return "MAJOR"
	case TypeMinor:
		return "MINOR"
	case TypeIntr:
		return "INTR"
	case TypeTimeout:
		return "TIMEOUT"
	case TypeCancel:
		return "CANCEL"
	case TypeExit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// HeaderSize is the fixed, wire-stable size of a frame header in bytes.
const HeaderSize = 8

// magicBase is the fixed half of the magic+version word; the low byte
// carries the protocol version so an incompatible peer fails fast on the
// very first frame instead of misparsing a payload.
const magicBase uint16 = 0x7400

// ChannelControl is the reserved transaction id for connection-level
// control packets (HELLO, CANCEL, EXIT) that are not scoped to any one
// transaction.
const ChannelControl uint16 = 0

// ChannelAll is the sentinel channel id meaning "close every channel of
// this transaction", used by cancellation bookkeeping.
const ChannelAll uint16 = 0xFFFF

// Header is the 8-byte frame header, decoded into host fields.
type Header struct {
	MagicVersion  uint16
	Type          Type
	Length        uint16 // total frame length, header included
	TransactionID uint16
}

// MagicVersionFor returns the magic+version word for the given protocol
// version byte.
func MagicVersionFor(version uint8) uint16 {
	return magicBase | uint16(version)
}

// VersionOf extracts the version byte carried in a magic+version word.
func VersionOf(magicVersion uint16) uint8 {
	return uint8(magicVersion & 0x00FF)
}

// IsCompatible reports whether magicVersion matches the base magic for the
// given expected version.
func IsCompatible(magicVersion uint16, expectedVersion uint8) bool {
	return magicVersion == MagicVersionFor(expectedVersion)
}

// encodeHeader writes h into dst (which must be HeaderSize bytes).
func encodeHeader(dst []byte, h Header) {
	binary.BigEndian.PutUint16(dst[0:2], h.MagicVersion)
	dst[2] = byte(h.Type)
	dst[3] = 0 // padding
	binary.BigEndian.PutUint16(dst[4:6], h.Length)
	binary.BigEndian.PutUint16(dst[6:8], h.TransactionID)
}

// decodeHeader reads a Header from src (which must be at least HeaderSize
// bytes).
func decodeHeader(src []byte) Header {
	return Header{
		MagicVersion:  binary.BigEndian.Uint16(src[0:2]),
		Type:          Type(src[2]),
		Length:        binary.BigEndian.Uint16(src[4:6]),
		TransactionID: binary.BigEndian.Uint16(src[6:8]),
	}
}

func encodeChannelID(dst []byte, id uint16) {
	binary.BigEndian.PutUint16(dst, id)
}

func decodeChannelID(src []byte) uint16 {
	return binary.BigEndian.Uint16(src)
}
