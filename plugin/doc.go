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

// Package plugin defines the pluggable-transport contract and the
// registry that resolves a "<name>:<spec>" target string (e.g.
// "ssh:root@host", "virtio:/var/run/subench.sock", "local:") to a
// concrete Transport. A Transport need only implement the capabilities
// it actually has: RunTest, InjectFile, ExtractFile, chat, interrupt,
// and cancel are each their own interface, checked with a type
// assertion (disconnect is Transport's own Close), so a plugin that cannot support one (chat over a bare
// file-transfer channel, say) simply does not implement that interface
// and callers see it reported as unsupported rather than panicking on a
// nil function pointer.
package plugin
