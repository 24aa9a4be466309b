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

// Package connection is the single-threaded, cooperative event loop that
// drives one transport endpoint and every transaction multiplexed over
// it. Each pass builds an aggregate poll set — the transport's fd, the
// fds of every plugged, fd-backed source channel across all live
// transactions, and a timeout derived from the nearest transaction
// deadline — calls golang.org/x/sys/unix.Poll once, then fans readiness
// out: transport input is parsed into frames and dispatched to the
// matching transaction by id, transport output drains the endpoint's
// transmit queue, every live transaction's local I/O is pumped (the
// channel fds in the poll set only wake the loop early), and any
// transaction whose deadline has passed is timed out.
// Finished transactions are reaped from the registry at the end of the
// pass.
package connection
