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

package chroot_test

import (
	"context"
	"testing"

	"github.com/sabouaram/subench/plugin"
)

func TestOpenRejectsMissingRoot(t *testing.T) {
	_, err := plugin.Open(context.Background(), "chroot:/no/such/directory/subench-test")
	if err == nil {
		t.Fatalf("want error opening a missing chroot root")
	}
}

func TestOpenRejectsEmptySpec(t *testing.T) {
	_, err := plugin.Open(context.Background(), "chroot:")
	if err == nil {
		t.Fatalf("want error opening an empty chroot spec")
	}
}

func TestOpenAcceptsExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	tr, err := plugin.Open(context.Background(), "chroot:"+dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr.Name() != "chroot:"+dir {
		t.Fatalf("Name() = %q", tr.Name())
	}
}
