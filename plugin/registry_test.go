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

package plugin_test

import (
	"context"
	"testing"

	"github.com/sabouaram/subench/plugin"
)

type fakeTransport struct{}

func (fakeTransport) Name() string { return "fake" }
func (fakeTransport) Close() error { return nil }

func init() {
	plugin.Register("fakeplugin", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return fakeTransport{}, nil
	})
}

func TestParseSpecSplitsOnFirstColon(t *testing.T) {
	name, spec, err := plugin.ParseSpec("ssh:root@host:22")
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if name != "ssh" || spec != "root@host:22" {
		t.Fatalf("name=%q spec=%q", name, spec)
	}
}

func TestParseSpecRejectsMissingSeparator(t *testing.T) {
	if _, _, err := plugin.ParseSpec("noseparator"); err == nil {
		t.Fatalf("want error for missing separator")
	}
}

func TestOpenResolvesRegisteredPlugin(t *testing.T) {
	tr, err := plugin.Open(context.Background(), "fakeplugin:whatever")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr.Name() != "fake" {
		t.Fatalf("Name() = %q", tr.Name())
	}
}

func TestOpenRejectsUnknownPlugin(t *testing.T) {
	if _, err := plugin.Open(context.Background(), "nope:whatever"); err == nil {
		t.Fatalf("want error for unknown plugin")
	}
}

func TestSupportsReflectsImplementedInterfaces(t *testing.T) {
	if plugin.Supports(fakeTransport{}, "command") {
		t.Fatalf("fakeTransport must not support command")
	}
}
