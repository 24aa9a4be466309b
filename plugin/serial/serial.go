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

package serial

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/plugin/wire"
	"github.com/sabouaram/subench/protocol"
	"github.com/sabouaram/subench/socket"
)

func init() {
	plugin.Register("serial", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return Open(spec)
	})
}

// Open opens the character device at path read-write and returns a
// Client driving the wire protocol over it. *os.File implements
// SyscallConn (since Go 1.12) and Close, so it satisfies the same
// rawIO contract socket.New uses for plain sockets.
func Open(path string) (plugin.Transport, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("serial: empty device path")
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	ep, err := socket.New(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return wire.NewClient("serial:"+path, ep, protocol.Version()), nil
}
