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

package tcp

import (
	"context"
	"net"
	"testing"
	"time"

	sockcfg "github.com/sabouaram/subench/socket/config"
)

func TestDialRejectsTLS(t *testing.T) {
	_, err := Dial(context.Background(), sockcfg.Client{
		Network: sockcfg.NetworkTCP,
		Address: "127.0.0.1:0",
		TLS:     sockcfg.TLS{Enable: true, CAFile: "ca.pem"},
	})
	if err != errTLSNotPollable {
		t.Fatalf("expected errTLSNotPollable, got %v", err)
	}
}

func TestDialRejectsWrongNetwork(t *testing.T) {
	_, err := Dial(context.Background(), sockcfg.Client{
		Network: sockcfg.NetworkUnix,
		Address: "/tmp/x",
	})
	if err == nil {
		t.Fatal("expected an error for non-tcp network")
	}
}

func TestDialConnectsOverLoopback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tr, err := Dial(ctx, sockcfg.Client{Network: sockcfg.NetworkTCP, Address: ln.Addr().String()})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer tr.Close()

	select {
	case conn := <-accepted:
		defer conn.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("server never observed an accepted connection")
	}

	if tr.Name() == "" {
		t.Fatal("expected a non-empty transport name")
	}
}
