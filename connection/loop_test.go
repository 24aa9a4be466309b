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

package connection_test

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sabouaram/subench/connection"
	"github.com/sabouaram/subench/errcode"
	"github.com/sabouaram/subench/metrics"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/socket"
	"github.com/sabouaram/subench/transaction"
)

type controlHandler struct {
	recvCount int
}

func (h *controlHandler) Recv(t *transaction.Transaction, typ protocol.Type, payload []byte) error {
	h.recvCount++
	return nil
}

func (h *controlHandler) DoIO(t *transaction.Transaction) error { return nil }

func tcpPair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	ch := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		ch <- c
	}()
	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client, <-ch
}

func newLoop(t *testing.T, conn net.Conn) *connection.Loop {
	t.Helper()
	ep, err := socket.NewFromConn(conn)
	if err != nil {
		t.Fatalf("NewFromConn: %v", err)
	}
	return connection.New(ep, protocol.Version())
}

func TestTransactionTimesOutAndReaps(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	loop := newLoop(t, server)
	tr, err := loop.NewTransaction(transaction.Control, &controlHandler{})
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tr.SetDeadline(time.Now().Add(10 * time.Millisecond))

	loop.Start()
	defer loop.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := loop.Transaction(tr.ID); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("transaction was never reaped after its deadline passed")
}

func TestCancelAllFailsLiveTransactions(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	loop := newLoop(t, server)
	tr, err := loop.NewTransaction(transaction.Control, &controlHandler{})
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	loop.CancelAll()
	if !tr.Done() {
		t.Fatalf("want transaction Done() after CancelAll")
	}
}

func TestMetricsObserveCanceledTransactionOnReap(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)

	loop := newLoop(t, server)
	loop.SetMetrics(col, "test-transport")

	tr, err := loop.NewTransaction(transaction.Control, &controlHandler{})
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	loop.Start()
	defer loop.Stop()

	loop.CancelAll()
	if !tr.Done() {
		t.Fatalf("want transaction Done() after CancelAll")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := loop.Transaction(tr.ID); !ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	const want = `
# HELP subench_transactions_total Completed transactions, by kind and outcome.
# TYPE subench_transactions_total counter
subench_transactions_total{kind="control",outcome="-21"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "subench_transactions_total"); err != nil {
		t.Fatalf("unexpected transactions_total: %v", err)
	}
}

func TestNewTransactionAssignsDistinctIds(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	loop := newLoop(t, server)
	a, err := loop.NewTransaction(transaction.Command, &controlHandler{})
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	b, err := loop.NewTransaction(transaction.Command, &controlHandler{})
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("duplicate transaction ids: %d", a.ID)
	}
	_ = errcode.Internal
}
