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

package socket_test

import (
	"net"
	"testing"
	"time"

	"github.com/sabouaram/subench/buffer"
	"github.com/sabouaram/subench/socket"
)

func tcpPair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := ln.Accept()
		ch <- result{c, err}
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	r := <-ch
	if r.err != nil {
		t.Fatalf("Accept: %v", r.err)
	}
	return client, r.conn
}

func TestEndpointFillDrainRoundTrip(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	clientEP, err := socket.NewFromConn(client)
	if err != nil {
		t.Fatalf("NewFromConn client: %v", err)
	}
	serverEP, err := socket.NewFromConn(server)
	if err != nil {
		t.Fatalf("NewFromConn server: %v", err)
	}

	out := buffer.New(16)
	out.Append([]byte("hi there"))
	clientEP.Enqueue(out)

	for i := 0; i < 50; i++ {
		if _, err := clientEP.Drain(); err != nil {
			t.Fatalf("Drain: %v", err)
		}
		if !clientEP.HasPendingWrites() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if clientEP.HasPendingWrites() {
		t.Fatalf("client still has pending writes after drain loop")
	}

	in := buffer.New(16)
	serverEP.PostRecv(in, len("hi there"))

	var filled bool
	for i := 0; i < 50 && !filled; i++ {
		_, ready, err := serverEP.Fill()
		if err != nil {
			t.Fatalf("Fill: %v", err)
		}
		filled = ready
		if !filled {
			time.Sleep(5 * time.Millisecond)
		}
	}
	if !filled {
		t.Fatalf("server never filled the posted recv")
	}
	if got := string(in.Bytes()); got != "hi there" {
		t.Fatalf("got %q", got)
	}
}

func TestEndpointBackpressureWatermark(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	clientEP, err := socket.NewFromConn(client)
	if err != nil {
		t.Fatalf("NewFromConn: %v", err)
	}
	clientEP.SetWatermark(4)

	buf := buffer.New(16)
	buf.Append([]byte("0123456789"))
	clientEP.Enqueue(buf)

	if !clientEP.Backpressured() {
		t.Fatalf("want Backpressured() true with a 10-byte queue and watermark 4")
	}
}
