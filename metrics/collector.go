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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector groups every metric this harness exports, registered under
// one transport label so a single prometheus.Registerer can serve
// several simultaneous connections (e.g. a driver talking to more than
// one agent at once).
type Collector struct {
	transactionsTotal  *prometheus.CounterVec
	channelBytesTotal  *prometheus.CounterVec
	xmitQueueDepth     *prometheus.GaugeVec
	backpressurePauses *prometheus.CounterVec
}

// NewCollector builds a Collector and registers it against reg. reg may
// be any prometheus.Registerer, including prometheus.NewRegistry() for
// a test-local registry; passing nil panics, as it does for any direct
// client_golang MustRegister call — use a *Collector of nil instead to
// opt out of instrumentation entirely.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subench",
			Name:      "transactions_total",
			Help:      "Completed transactions, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		channelBytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subench",
			Name:      "channel_bytes_total",
			Help:      "Bytes moved over the transport, by direction.",
		}, []string{"direction"}),
		xmitQueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "subench",
			Name:      "xmit_queue_depth",
			Help:      "Bytes currently queued for transmit, per transport.",
		}, []string{"transport"}),
		backpressurePauses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subench",
			Name:      "backpressure_pauses_total",
			Help:      "Times a transport's transmit queue crossed its watermark.",
		}, []string{"transport"}),
	}
	reg.MustRegister(c.transactionsTotal, c.channelBytesTotal, c.xmitQueueDepth, c.backpressurePauses)
	return c
}

// outcomeLabel turns a transaction's final status code into a low
// cardinality label: "ok" for success, "remote_exit" for a positive
// remote exit code, or the negative errcode.Code's decimal value
// otherwise (e.g. "-21").
func outcomeLabel(code int32) string {
	switch {
	case code == 0:
		return "ok"
	case code > 0:
		return "remote_exit"
	default:
		return strconv.FormatInt(int64(code), 10)
	}
}

// ObserveTransaction records one completed transaction's kind and
// final status code. A nil Collector is a no-op, so callers never need
// to guard this with their own nil check.
func (c *Collector) ObserveTransaction(kind string, statusCode int32) {
	if c == nil {
		return
	}
	c.transactionsTotal.WithLabelValues(kind, outcomeLabel(statusCode)).Inc()
}

// AddBytes records n bytes moved in the given direction ("in" or "out").
func (c *Collector) AddBytes(direction string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.channelBytesTotal.WithLabelValues(direction).Add(float64(n))
}

// SetQueueDepth reports the current transmit queue depth for transport.
func (c *Collector) SetQueueDepth(transport string, bytes int) {
	if c == nil {
		return
	}
	c.xmitQueueDepth.WithLabelValues(transport).Set(float64(bytes))
}

// ObserveBackpressurePause records one watermark-crossing pause on transport.
func (c *Collector) ObserveBackpressurePause(transport string) {
	if c == nil {
		return
	}
	c.backpressurePauses.WithLabelValues(transport).Inc()
}
