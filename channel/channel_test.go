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

package channel_test

import (
	"testing"

	"github.com/sabouaram/subench/channel"
	"github.com/sabouaram/subench/iostream"
)

func TestPlugUnplugPreservesIdentity(t *testing.T) {
	c := channel.New(7, channel.Source)
	if c.Plugged() {
		t.Fatalf("new channel must start unplugged")
	}

	s := iostream.New()
	c.Plug(s)
	if !c.Plugged() {
		t.Fatalf("want Plugged() after Plug")
	}

	got := c.Unplug()
	if got != s {
		t.Fatalf("Unplug must return the stream that was plugged")
	}
	if c.Plugged() {
		t.Fatalf("want not Plugged() after Unplug")
	}
	if c.ID != 7 {
		t.Fatalf("ID changed across unplug: %d", c.ID)
	}
}

func TestEOFFiresOnlyOnce(t *testing.T) {
	c := channel.New(1, channel.Sink)
	count := 0
	c.OnReadEOF(func(*channel.Channel) { count++ })

	c.FireReadEOF()
	c.FireReadEOF()
	c.FireReadEOF()

	if count != 1 {
		t.Fatalf("read EOF fired %d times, want 1", count)
	}
	if !c.ReadEOFFired() {
		t.Fatalf("want ReadEOFFired() true")
	}
}

func TestWriteEOFIndependentOfReadEOF(t *testing.T) {
	c := channel.New(2, channel.Sink)
	var readFired, writeFired bool
	c.OnReadEOF(func(*channel.Channel) { readFired = true })
	c.OnWriteEOF(func(*channel.Channel) { writeFired = true })

	c.FireWriteEOF()
	if writeFired != true || readFired {
		t.Fatalf("writeFired=%v readFired=%v, want true/false", writeFired, readFired)
	}
}
