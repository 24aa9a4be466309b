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
	"errors"
	"net"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/plugin/wire"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/socket"
	sockcfg "github.com/sabouaram/subench/socket/config"
)

func init() {
	plugin.Register("tcp", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return Dial(ctx, sockcfg.Client{Network: sockcfg.NetworkTCP, Address: spec})
	})
}

// errTLSNotPollable explains why Dial refuses a TLS-enabled config: the
// event loop's poll set is built from raw file descriptors read and
// written directly with golang.org/x/sys/unix, bypassing Go's runtime
// netpoller entirely; a *tls.Conn has no fd of its own to hand that
// loop; it record-frames over whatever fd it wraps, so driving it from
// outside via raw reads would desync the TLS record layer.
var errTLSNotPollable = errors.New("tcp: TLS is not supported on the raw-fd poll transport; see DESIGN.md")

// Dial connects to cfg.Address over plain TCP and returns a Client
// driving the wire protocol over it.
func Dial(ctx context.Context, cfg sockcfg.Client) (plugin.Transport, error) {
	if cfg.Network != sockcfg.NetworkTCP {
		return nil, errors.New("tcp: config network must be tcp")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TLS.Enable {
		return nil, errTLSNotPollable
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, err
	}

	ep, err := socket.NewFromConn(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return wire.NewClient("tcp:"+cfg.Address, ep, protocol.Version()), nil
}
