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

// Package channel plugs a transaction's local I/O stream into the wire.
// A Channel is a Sink (wire to local: CHAN_DATA arrives and is written
// locally) or a Source (local to wire: local bytes are read and sent as
// CHAN_DATA). Each direction of a transaction's traffic gets its own
// Channel and its own id, so e.g. a chat transaction has one sink for
// input typed by the controller and one source for output produced by
// the inferior.
//
// A Channel starts unplugged: constructed, but not yet wired to a local
// iostream.Stream. Plug attaches the stream; Unplug detaches it without
// destroying the Channel, so a transaction can swap in a fresh stream
// (chat_gets between chat_begin and chat_end) without losing its wire
// identity. FireReadEOF and FireWriteEOF each invoke their callback at
// most once, the first time they are called for that direction.
package channel
