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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTransactionIncrementsByKindAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveTransaction("command", 0)
	c.ObserveTransaction("command", -6)

	if got := testutil.ToFloat64(c.transactionsTotal.WithLabelValues("command", "ok")); got != 1 {
		t.Fatalf("expected 1 ok command, got %v", got)
	}
	if got := testutil.ToFloat64(c.transactionsTotal.WithLabelValues("command", "-6")); got != 1 {
		t.Fatalf("expected 1 failed command, got %v", got)
	}
}

func TestAddBytesAccumulatesPerDirection(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.AddBytes("in", 100)
	c.AddBytes("in", 50)
	c.AddBytes("out", 10)

	if got := testutil.ToFloat64(c.channelBytesTotal.WithLabelValues("in")); got != 150 {
		t.Fatalf("expected 150 bytes in, got %v", got)
	}
	if got := testutil.ToFloat64(c.channelBytesTotal.WithLabelValues("out")); got != 10 {
		t.Fatalf("expected 10 bytes out, got %v", got)
	}
}

func TestSetQueueDepthReportsLatestValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SetQueueDepth("tcp:host", 4096)
	c.SetQueueDepth("tcp:host", 1024)

	if got := testutil.ToFloat64(c.xmitQueueDepth.WithLabelValues("tcp:host")); got != 1024 {
		t.Fatalf("expected gauge to reflect latest set value, got %v", got)
	}
}

func TestNilCollectorMethodsAreNoOps(t *testing.T) {
	var c *Collector
	c.ObserveTransaction("command", 0)
	c.AddBytes("in", 10)
	c.SetQueueDepth("tcp:host", 10)
	c.ObserveBackpressurePause("tcp:host")
}
