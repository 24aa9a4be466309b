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

// Package transaction is the correlation context for one in-flight
// operation (command, inject, extract, chat, or control) multiplexed
// over a connection. It owns the channels feeding it, a deadline, and
// the major/minor status latch: MAJOR must be sent before MINOR, and
// each at most once, mirroring the send discipline of the wire protocol
// itself.
//
// Where the packet this codebase is descended from dispatched recv/send
// through a pair of function pointers set at transaction-creation time,
// a Transaction here carries a Kind value — one of the fixed constants
// Command, Inject, Extract, Chat, Control — and a Handler interface
// implementation selected by that Kind. This keeps the same "one
// transaction, one behavior" shape while giving each behavior a
// statically checked, named Go type instead of an untyped function
// pointer pair.
package transaction
