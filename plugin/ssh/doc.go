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

// Package ssh dials a remote host over golang.org/x/crypto/ssh and runs
// commands, file transfers, and chat directly on SSH sessions rather
// than tunneling the framed wire protocol: an ssh.Session's stdin/stdout
// are plain pipes with no underlying file descriptor, so they cannot be
// registered in connection.Loop's raw-fd unix.Poll set the way
// plugin/wire expects (see plugin/tcp's TLS note for the same
// constraint on a different transport). Target spec is
// "[user@]host[:port]", e.g. "ssh:root@192.168.1.50:22". Authentication
// tries, in order: an explicit private key file named by the
// SUBENCH_SSH_KEY environment variable, then the agent listening on
// SSH_AUTH_SOCK, then SUBENCH_SSH_PASSWORD. Host keys are not verified;
// this plugin drives disposable test systems, not production fleets.
package ssh
