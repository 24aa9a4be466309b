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

package errcode

import "strconv"

// Code is a stable, negative error code returned across the façade boundary
// and carried as a transaction's major or minor status. Zero is never a
// valid Code value; the zero value of this type is never returned by any
// function in this package.
type Code int32

const (
	// Parameter marks a local, pre-transaction argument error.
	Parameter Code = -1
	// OpenSession marks a failure to establish the transport connection.
	OpenSession Code = -2
	// SendCommand marks a failure to queue the COMMAND/INJECT/EXTRACT packet.
	SendCommand Code = -3
	// ForwardInput marks a failure forwarding local stdin to a source channel.
	ForwardInput Code = -4
	// ReceiveResults marks a failure demultiplexing the remote's reply stream.
	ReceiveResults Code = -5
	// CommandTimeout marks a transaction whose deadline fired before MAJOR/MINOR.
	CommandTimeout Code = -6
	// LocalFile marks a failure opening or writing the local side of a transfer.
	LocalFile Code = -7
	// SendFile marks a failure streaming an injected file to the remote.
	SendFile Code = -8
	// RemoteFile marks a remote-side failure opening the destination file.
	RemoteFile Code = -9
	// ReceiveFile marks a failure receiving an extracted file's bytes.
	ReceiveFile Code = -10
	// InterruptCommand marks a failure delivering an interrupt.
	InterruptCommand Code = -11
	// InvalidTarget marks a malformed "<plugin>:<spec>" target string.
	InvalidTarget Code = -12
	// UnknownPlugin marks a target naming a plugin absent from the registry.
	UnknownPlugin Code = -13
	// IncompatiblePlugin marks a plugin that does not support the requested operation.
	IncompatiblePlugin Code = -14
	// UnsupportedFunction marks a capability a plugin declined to implement.
	UnsupportedFunction Code = -15
	// Protocol marks a framing violation: bad magic, truncated frame, unexpected type.
	Protocol Code = -16
	// Internal marks a programming-error invariant violation.
	Internal Code = -17
	// Transport marks a fatal read/write failure on the transport socket.
	Transport Code = -18
	// IncompatibleProtocol marks a HELLO version mismatch.
	IncompatibleProtocol Code = -19
	// InvalidTransaction marks a packet referencing an unknown transaction id.
	InvalidTransaction Code = -20
	// CommandCanceled marks a transaction torn down by CancelTransactions.
	CommandCanceled Code = -21
)

var strTable = map[Code]string{
	Parameter:             "invalid parameter",
	OpenSession:           "cannot open session",
	SendCommand:           "cannot send command",
	ForwardInput:          "cannot forward input",
	ReceiveResults:        "cannot receive results",
	CommandTimeout:        "command timed out",
	LocalFile:             "local file error",
	SendFile:              "cannot send file",
	RemoteFile:            "remote file error",
	ReceiveFile:           "cannot receive file",
	InterruptCommand:      "cannot interrupt command",
	InvalidTarget:         "invalid target specification",
	UnknownPlugin:         "unknown plugin",
	IncompatiblePlugin:    "incompatible plugin",
	UnsupportedFunction:   "unsupported function",
	Protocol:              "protocol error",
	Internal:              "internal error",
	Transport:             "transport error",
	IncompatibleProtocol:  "incompatible protocol version",
	InvalidTransaction:    "invalid transaction",
	CommandCanceled:       "command canceled",
}

// Error implements the error interface so a Code can be returned, wrapped,
// and compared with errors.Is/errors.As like any other error value.
func (c Code) Error() string {
	if s, ok := strTable[c]; ok {
		return s
	}
	return "unknown error (" + strconv.FormatInt(int64(c), 10) + ")"
}

// Int32 returns the raw wire value of c, as sent in a MAJOR or MINOR packet.
func (c Code) Int32() int32 {
	return int32(c)
}

// FromMajorMinor turns a transaction's observed (major, minor) status pair
// into an error, or nil if both are zero (success). A non-zero major wins
// over a non-zero minor: major is the transport-level outcome, minor is
// typically the remote process exit code and is only meaningful once major
// is zero.
func FromMajorMinor(major, minor int32) error {
	if major != 0 {
		if c, ok := knownWire[major]; ok {
			return c
		}
		return Internal
	}
	if minor != 0 {
		return &RemoteExit{Code: minor}
	}
	return nil
}

var knownWire = func() map[int32]Code {
	m := make(map[int32]Code, len(strTable))
	for c := range strTable {
		m[c.Int32()] = c
	}
	return m
}()

// RemoteExit reports a nonzero remote process exit code observed as a
// transaction's minor status once major is zero.
type RemoteExit struct {
	Code int32
}

func (e *RemoteExit) Error() string {
	return "remote command exited with status " + strconv.FormatInt(int64(e.Code), 10)
}
