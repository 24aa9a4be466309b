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

package chroot

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/protocol"
)

func init() {
	plugin.Register("chroot", func(ctx context.Context, spec string) (plugin.Transport, error) {
		if spec == "" {
			return nil, errors.New("chroot: empty root directory")
		}
		info, err := os.Stat(spec)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, errors.New("chroot: root is not a directory: " + spec)
		}
		return &Transport{root: spec}, nil
	})
}

// Transport runs commands confined under root via SysProcAttr.Chroot.
type Transport struct {
	root string

	mu      sync.Mutex
	running []*exec.Cmd
}

func (t *Transport) Name() string { return "chroot:" + t.root }
func (t *Transport) Close() error { return nil }

func (t *Transport) track(cmd *exec.Cmd) {
	t.mu.Lock()
	t.running = append(t.running, cmd)
	t.mu.Unlock()
}

func (t *Transport) untrack(cmd *exec.Cmd) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, c := range t.running {
		if c == cmd {
			t.running = append(t.running[:i], t.running[i+1:]...)
			return
		}
	}
}

// RunTest runs desc.Command under a shell chrooted to Transport's root.
func (t *Transport) RunTest(ctx context.Context, desc protocol.CommandDescriptor, in io.Reader, stdout, stderr io.Writer) (int32, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", desc.Command)
	cmd.Dir = "/"
	cmd.Env = desc.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Chroot: t.root}

	if in != nil {
		cmd.Stdin = in
	}
	if desc.WantStdout && stdout != nil {
		cmd.Stdout = stdout
	}
	if desc.WantStderr && stderr != nil {
		cmd.Stderr = stderr
	}

	t.track(cmd)
	defer t.untrack(cmd)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return int32(exitErr.ExitCode()), nil
	}
	return -1, err
}

func (t *Transport) resolve(remoteName string) string {
	return filepath.Join(t.root, remoteName)
}

// InjectFile writes src to desc.RemoteName, resolved under root.
func (t *Transport) InjectFile(ctx context.Context, desc protocol.TransferDescriptor, src io.Reader) error {
	mode := os.FileMode(desc.Mode)
	if mode == 0 {
		mode = 0644
	}
	f, err := os.OpenFile(t.resolve(desc.RemoteName), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, src)
	return err
}

// ExtractFile copies desc.RemoteName, resolved under root, to dst.
func (t *Transport) ExtractFile(ctx context.Context, desc protocol.TransferDescriptor, dst io.Writer) error {
	f, err := os.Open(t.resolve(desc.RemoteName))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

// InterruptCommand sends SIGINT to every command currently running under
// this root.
func (t *Transport) InterruptCommand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var firstErr error
	for _, cmd := range t.running {
		if cmd.Process == nil {
			continue
		}
		if err := cmd.Process.Signal(os.Interrupt); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CancelTransactions kills every command currently running under this
// root.
func (t *Transport) CancelTransactions() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, cmd := range t.running {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
}
