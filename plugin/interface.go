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

package plugin

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sabouaram/subench/protocol"
)

// Transport is the baseline every plugin must satisfy: a name for
// diagnostics and a way to tear the connection down. Everything else is
// optional and expressed as a capability interface below.
type Transport interface {
	Name() string
	Close() error
}

// CommandRunner runs an inferior command to completion, streaming stdin
// from in (if non-nil) and copying stdout/stderr to the given writers.
// It returns the inferior's exit status, or a negative errcode.Code on
// transport/protocol failure.
type CommandRunner interface {
	RunTest(ctx context.Context, desc protocol.CommandDescriptor, in io.Reader, stdout, stderr io.Writer) (int32, error)
}

// FileInjector copies src to a file on the target side named by desc.
type FileInjector interface {
	InjectFile(ctx context.Context, desc protocol.TransferDescriptor, src io.Reader) error
}

// FileExtractor copies a file named by desc from the target side to dst.
type FileExtractor interface {
	ExtractFile(ctx context.Context, desc protocol.TransferDescriptor, dst io.Writer) error
}

// ExpectResult is the outcome of one Chat.Expect call: the full
// accumulated output, the candidate that matched (nil if none), the
// number of bytes consumed up to and including the match, and whether a
// match was found at all before timeout or EOF.
type ExpectResult struct {
	Output   []byte
	Matched  []byte
	Consumed int
	Found    bool
}

// Chat is an interactive session: Gets feeds input, Expect blocks (up to
// timeout) until one of a list of candidate strings appears in
// accumulated output, or the timeout elapses, returning everything read
// so far either way.
type Chat interface {
	Gets(input []byte) error
	Expect(candidates [][]byte, timeout time.Duration) (ExpectResult, error)
	Close() error
}

// MatchExpect applies chat_expect's tie-break to output: the earliest
// occurrence of any non-empty candidate wins; an equal offset is won by
// the longer candidate (so "READY>" beats "READY" at the same
// position). A candidate list whose first entry is empty matches
// immediately at offset 0 with nothing consumed, regardless of output,
// per the boundary where an empty candidate string at position 0
// matches immediately with length 0. The bool return reports whether
// any match (including the empty-candidate boundary) was found.
func MatchExpect(output []byte, candidates [][]byte) (ExpectResult, bool) {
	if len(candidates) > 0 && len(candidates[0]) == 0 {
		return ExpectResult{Output: output, Found: true}, true
	}

	bestIdx := -1
	var best []byte
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		i := bytes.Index(output, c)
		if i < 0 {
			continue
		}
		if bestIdx == -1 || i < bestIdx || (i == bestIdx && len(c) > len(best)) {
			bestIdx = i
			best = c
		}
	}
	if bestIdx == -1 {
		return ExpectResult{Output: output}, false
	}
	return ExpectResult{Output: output, Matched: best, Consumed: bestIdx + len(best), Found: true}, true
}

// ChatRunner begins an interactive session running cmd.
type ChatRunner interface {
	ChatBegin(ctx context.Context, cmd string) (Chat, error)
}

// Interrupter sends an interrupt to whatever command is currently
// running.
type Interrupter interface {
	InterruptCommand() error
}

// Canceler abandons every transaction currently in flight on this
// transport without tearing the transport itself down.
type Canceler interface {
	CancelTransactions()
}

// Supports reports whether t implements the capability interface named
// by op ("command", "inject", "extract", "chat", "interrupt", "cancel").
func Supports(t Transport, op string) bool {
	switch op {
	case "command":
		_, ok := t.(CommandRunner)
		return ok
	case "inject":
		_, ok := t.(FileInjector)
		return ok
	case "extract":
		_, ok := t.(FileExtractor)
		return ok
	case "chat":
		_, ok := t.(ChatRunner)
		return ok
	case "interrupt":
		_, ok := t.(Interrupter)
		return ok
	case "cancel":
		_, ok := t.(Canceler)
		return ok
	default:
		return false
	}
}
