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
	"os"
	"path/filepath"
	"testing"
)

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Fatal("expected an error for an empty device path")
	}
}

func TestOpenRejectsMissingDevice(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "no-such-device")); err == nil {
		t.Fatal("expected an error for a missing device path")
	}
}

func TestOpenSucceedsOnRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-tty")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	tr, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()

	if tr.Name() == "" {
		t.Fatal("expected a non-empty transport name")
	}
}
