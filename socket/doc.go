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

// Package socket wraps a duplex byte-pipe (UNIX socket, TCP conn, pty, or
// any net.Conn/os.File-like descriptor) as a non-blocking endpoint driven
// by an external poller rather than by blocking reads and writes. An
// Endpoint holds a single posted receive buffer at a time (one Fill call
// in flight) and an ordered transmit queue of buffers still waiting to
// drain; the owning connection event loop decides when to call Fill and
// Drain based on readiness reported by its poll set.
//
// A watermark on the transmit queue's total buffered bytes is exposed so
// callers can apply backpressure: once the queue holds more than the
// watermark, further local reads feeding that endpoint should pause until
// Drain has caught up.
package socket
