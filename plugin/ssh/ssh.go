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

package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/protocol"
)

func init() {
	plugin.Register("ssh", func(ctx context.Context, spec string) (plugin.Transport, error) {
		return Dial(ctx, spec)
	})
}

// Transport runs commands, file transfers, and chat over a single SSH
// connection, opening one session per operation.
type Transport struct {
	addr   string
	client *ssh.Client

	mu       sync.Mutex
	sessions []*ssh.Session
}

// Dial parses a "[user@]host[:port]" target spec, connects over SSH,
// and returns a ready Transport.
func Dial(ctx context.Context, spec string) (*Transport, error) {
	user, addr, err := parseTarget(spec)
	if err != nil {
		return nil, err
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods(),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         15 * time.Second,
	}
	if len(cfg.Auth) == 0 {
		return nil, errors.New("ssh: no authentication method available (set SUBENCH_SSH_KEY, SSH_AUTH_SOCK, or SUBENCH_SSH_PASSWORD)")
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Transport{addr: addr, client: ssh.NewClient(sshConn, chans, reqs)}, nil
}

func parseTarget(spec string) (user, addr string, err error) {
	user = "root"
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		user = spec[:at]
		spec = spec[at+1:]
	}
	if spec == "" {
		return "", "", errors.New("ssh: empty host in target spec")
	}
	if !strings.Contains(spec, ":") {
		spec = spec + ":22"
	}
	return user, spec, nil
}

func authMethods() []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if keyPath := os.Getenv("SUBENCH_SSH_KEY"); keyPath != "" {
		if key, err := os.ReadFile(keyPath); err == nil {
			if signer, err := ssh.ParsePrivateKey(key); err == nil {
				methods = append(methods, ssh.PublicKeys(signer))
			}
		}
	}

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			ac := agent.NewClient(conn)
			methods = append(methods, ssh.PublicKeysCallback(ac.Signers))
		}
	}

	if pass := os.Getenv("SUBENCH_SSH_PASSWORD"); pass != "" {
		methods = append(methods, ssh.Password(pass))
	}

	return methods
}

func (t *Transport) Name() string { return "ssh:" + t.addr }

func (t *Transport) Close() error {
	t.mu.Lock()
	for _, s := range t.sessions {
		_ = s.Close()
	}
	t.sessions = nil
	t.mu.Unlock()
	return t.client.Close()
}

func (t *Transport) newSession() (*ssh.Session, error) {
	s, err := t.client.NewSession()
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.sessions = append(t.sessions, s)
	t.mu.Unlock()
	return s, nil
}

func (t *Transport) forgetSession(s *ssh.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, c := range t.sessions {
		if c == s {
			t.sessions = append(t.sessions[:i], t.sessions[i+1:]...)
			return
		}
	}
}

// RunTest runs desc.Command in a login shell on the remote host, wiring
// in/stdout/stderr directly to the session's pipes.
func (t *Transport) RunTest(ctx context.Context, desc protocol.CommandDescriptor, in io.Reader, stdout, stderr io.Writer) (int32, error) {
	sess, err := t.newSession()
	if err != nil {
		return 0, err
	}
	defer t.forgetSession(sess)
	defer sess.Close()

	for _, kv := range desc.Env {
		if eq := strings.IndexByte(kv, '='); eq > 0 {
			_ = sess.Setenv(kv[:eq], kv[eq+1:])
		}
	}
	if in != nil {
		sess.Stdin = in
	}
	if desc.WantStdout && stdout != nil {
		sess.Stdout = stdout
	}
	if desc.WantStderr && stderr != nil {
		sess.Stderr = stderr
	}

	done := make(chan error, 1)
	go func() { done <- sess.Run(desc.Command) }()

	select {
	case err := <-done:
		return exitStatus(err)
	case <-ctx.Done():
		_ = sess.Signal(ssh.SIGKILL)
		return 0, ctx.Err()
	}
}

func exitStatus(err error) (int32, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return int32(exitErr.ExitStatus()), nil
	}
	return -1, err
}

// InjectFile streams src into desc.RemoteName via a "cat > file" remote
// shell pipeline; there is no sftp subsystem dependency in this stack.
func (t *Transport) InjectFile(ctx context.Context, desc protocol.TransferDescriptor, src io.Reader) error {
	sess, err := t.newSession()
	if err != nil {
		return err
	}
	defer t.forgetSession(sess)
	defer sess.Close()

	mode := desc.Mode
	if mode == 0 {
		mode = 0644
	}
	sess.Stdin = src
	cmd := fmt.Sprintf("cat > %s && chmod %o %s", shellQuote(desc.RemoteName), mode, shellQuote(desc.RemoteName))
	if err := sess.Run(cmd); err != nil {
		_, err2 := exitStatus(err)
		return err2
	}
	return nil
}

// ExtractFile copies desc.RemoteName from the remote host to dst via a
// "cat file" remote shell pipeline.
func (t *Transport) ExtractFile(ctx context.Context, desc protocol.TransferDescriptor, dst io.Writer) error {
	sess, err := t.newSession()
	if err != nil {
		return err
	}
	defer t.forgetSession(sess)
	defer sess.Close()

	sess.Stdout = dst
	if err := sess.Run("cat " + shellQuote(desc.RemoteName)); err != nil {
		_, err2 := exitStatus(err)
		return err2
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// InterruptCommand sends SIGINT to every open session.
func (t *Transport) InterruptCommand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var firstErr error
	for _, s := range t.sessions {
		if err := s.Signal(ssh.SIGINT); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CancelTransactions closes every open session, killing whatever
// remote command it is running.
func (t *Transport) CancelTransactions() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sessions {
		_ = s.Close()
	}
	t.sessions = nil
}

// chatSession implements plugin.Chat over an interactive remote shell.
type chatSession struct {
	sess   *ssh.Session
	stdin  io.WriteCloser
	mu     sync.Mutex
	output []byte
	readCh chan []byte
	errCh  chan error
}

// ChatBegin starts cmd as an interactive remote shell and begins
// draining its stdout into an internal buffer that Expect scans; the
// session's stderr is not read.
func (t *Transport) ChatBegin(ctx context.Context, cmd string) (plugin.Chat, error) {
	sess, err := t.newSession()
	if err != nil {
		return nil, err
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	if err := sess.Start(cmd); err != nil {
		_ = sess.Close()
		return nil, err
	}

	c := &chatSession{
		sess:   sess,
		stdin:  stdin,
		readCh: make(chan []byte, 16),
		errCh:  make(chan error, 1),
	}
	go c.pump(stdout)
	return c, nil
}

func (c *chatSession) pump(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			c.readCh <- cp
		}
		if err != nil {
			c.errCh <- err
			return
		}
	}
}

func (c *chatSession) Gets(input []byte) error {
	_, err := c.stdin.Write(input)
	return err
}

func (c *chatSession) Expect(candidates [][]byte, timeout time.Duration) (plugin.ExpectResult, error) {
	deadline := time.After(timeout)
	for {
		c.mu.Lock()
		out := c.output
		c.mu.Unlock()
		if res, ok := plugin.MatchExpect(out, candidates); ok {
			return res, nil
		}
		select {
		case chunk := <-c.readCh:
			c.mu.Lock()
			c.output = append(c.output, chunk...)
			c.mu.Unlock()
		case err := <-c.errCh:
			return plugin.ExpectResult{Output: out}, err
		case <-deadline:
			return plugin.ExpectResult{Output: out}, nil
		}
	}
}

func (c *chatSession) Close() error {
	_ = c.stdin.Close()
	return c.sess.Close()
}
