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

package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/protocol"
)

func init() {
	plugin.Register("local", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return New(), nil
	})
}

// Transport runs commands on the controller host with no transport in
// between.
type Transport struct {
	mu      sync.Mutex
	running []*exec.Cmd
}

// New constructs a local Transport.
func New() *Transport { return &Transport{} }

func (t *Transport) Name() string { return "local" }
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

// RunTest runs desc.Command through the shell, streaming in to stdin (if
// non-nil) and stdout/stderr to the given writers when requested.
func (t *Transport) RunTest(ctx context.Context, desc protocol.CommandDescriptor, in io.Reader, stdout, stderr io.Writer) (int32, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", desc.Command)
	cmd.Env = append(os.Environ(), desc.Env...)

	if desc.User != "" && desc.User != "root" {
		if cred, err := credentialFor(desc.User); err == nil {
			cmd.SysProcAttr = &syscall.SysProcAttr{Credential: cred}
		}
	}

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
	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		return int32(exitErr.ExitCode()), nil
	}
	return -1, err
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}

// InjectFile writes src to desc.RemoteName with desc.Mode (defaulting to
// 0644 when zero).
func (t *Transport) InjectFile(ctx context.Context, desc protocol.TransferDescriptor, src io.Reader) error {
	mode := os.FileMode(desc.Mode)
	if mode == 0 {
		mode = 0644
	}
	f, err := os.OpenFile(desc.RemoteName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, src)
	return err
}

// ExtractFile copies desc.RemoteName to dst.
func (t *Transport) ExtractFile(ctx context.Context, desc protocol.TransferDescriptor, dst io.Writer) error {
	f, err := os.Open(desc.RemoteName)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

// InterruptCommand sends SIGINT to every command this Transport is
// currently running.
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

// CancelTransactions kills every command this Transport is currently
// running.
func (t *Transport) CancelTransactions() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, cmd := range t.running {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
}

// chatSession implements plugin.Chat over a running shell's stdin/stdout
// pipes.
type chatSession struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	mu     sync.Mutex
	output []byte
	readCh chan []byte
	errCh  chan error
}

// ChatBegin starts cmd as an interactive shell session.
func (t *Transport) ChatBegin(ctx context.Context, cmd string) (plugin.Chat, error) {
	c := exec.CommandContext(ctx, "/bin/sh", "-c", cmd)
	stdin, err := c.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := c.Start(); err != nil {
		return nil, err
	}
	t.track(c)

	sess := &chatSession{
		cmd:    c,
		stdin:  stdin,
		readCh: make(chan []byte, 16),
		errCh:  make(chan error, 1),
	}
	go sess.pump(stdout)
	return sess, nil
}

func (s *chatSession) pump(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			s.readCh <- cp
		}
		if err != nil {
			s.errCh <- err
			return
		}
	}
}

func (s *chatSession) Gets(input []byte) error {
	_, err := s.stdin.Write(input)
	return err
}

func (s *chatSession) Expect(candidates [][]byte, timeout time.Duration) (plugin.ExpectResult, error) {
	deadline := time.After(timeout)
	for {
		s.mu.Lock()
		out := s.output
		s.mu.Unlock()
		if res, ok := plugin.MatchExpect(out, candidates); ok {
			return res, nil
		}
		select {
		case chunk := <-s.readCh:
			s.mu.Lock()
			s.output = append(s.output, chunk...)
			s.mu.Unlock()
		case err := <-s.errCh:
			return plugin.ExpectResult{Output: out}, err
		case <-deadline:
			return plugin.ExpectResult{Output: out}, nil
		}
	}
}

func (s *chatSession) Close() error {
	_ = s.stdin.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}

func credentialFor(username string) (*syscall.Credential, error) {
	return nil, fmt.Errorf("local: running as user %q requires root privileges not assumed here", username)
}
