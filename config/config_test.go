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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
profiles:
  vm1:
    target: "tcp:192.168.1.50:4999"
    user: root
    timeout: 30s
    mode: 420
    env:
      LANG: C
  vm2:
    target: "local:"
`

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "subench.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}
	return path
}

func TestLoadParsesProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p, err := m.Profile("vm1")
	if err != nil {
		t.Fatalf("Profile(vm1): %v", err)
	}
	if p.Target != "tcp:192.168.1.50:4999" {
		t.Fatalf("unexpected target %q", p.Target)
	}
	if p.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", p.Timeout)
	}
	if p.Env["LANG"] != "C" {
		t.Fatalf("unexpected env %v", p.Env)
	}
}

func TestProfileNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := m.Profile("does-not-exist"); err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileNamesListsEveryProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names := m.ProfileNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 profiles, got %d (%v)", len(names), names)
	}
}

func TestWatchReloadsOnFileRewrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	reloaded := make(chan error, 1)
	m.OnReload(func(err error) { reloaded <- err })

	if err := m.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer m.Close()

	updated := sampleYAML + "\n  vm3:\n    target: \"local:\"\n"
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload callback reported error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}

	if len(m.ProfileNames()) != 3 {
		t.Fatalf("expected 3 profiles after reload, got %d", len(m.ProfileNames()))
	}
}
