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

// Package protocol builds and parses the framed binary packets exchanged
// over a transport socket: a fixed 8-byte header (magic+version, type,
// length, transaction id) followed by a type-specific payload. CHAN_DATA
// and CHAN_EOF payloads are themselves prefixed with a big-endian channel
// id.
//
// The 8-byte header is written with encoding/binary rather than a generic
// codec: its byte layout is the interop contract between client and
// server, and a serialization library would only add indirection over
// five fixed-width integers. Richer, open-ended payloads (HELLO's
// capability map, and the command/transfer descriptors) are CBOR-encoded
// instead, the same codec the channel-multiplexing packages in this
// ecosystem use for their message envelopes.
package protocol

import "errors"

// ErrIncompleteFrame names the incomplete-frame condition. TryParseFrame
// does not return it: a buffer that does not yet hold a full frame is
// reported as ok == false with a nil error.
var ErrIncompleteFrame = errors.New("protocol: incomplete frame")

// ErrBadMagic is returned when a frame's magic/version word does not match
// the version negotiated for the connection; it is fatal to the connection.
var ErrBadMagic = errors.New("protocol: bad magic or incompatible version")

// ErrTruncated is returned when a CHAN_DATA/CHAN_EOF payload is too short
// to hold its channel-id prefix.
var ErrTruncated = errors.New("protocol: truncated channel payload")
