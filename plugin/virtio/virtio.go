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

package virtio

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/plugin/wire"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/socket"
)

func init() {
	plugin.Register("virtio", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return Dial(ctx, spec)
	})
}

// Dial connects to the UNIX-domain socket at path and returns a Client
// driving the wire protocol over it. A *net.UnixConn is fd-backed and
// satisfies syscall.Conn directly, so it plugs into socket.NewFromConn
// exactly like plugin/tcp's plain net.Conn.
func Dial(ctx context.Context, path string) (plugin.Transport, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("virtio: empty socket path")
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, err
	}

	ep, err := socket.NewFromConn(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return wire.NewClient("virtio:"+path, ep, protocol.Version()), nil
}
