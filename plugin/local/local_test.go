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

package local_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sabouaram/subench/plugin"
	"github.com/sabouaram/subench/plugin/local"
	"github.com/sabouaram/subench/protocol"
)

func TestRunTestCapturesStdout(t *testing.T) {
	tr := local.New()
	var stdout bytes.Buffer
	status, err := tr.RunTest(context.Background(), protocol.CommandDescriptor{
		Command:    "echo hello",
		WantStdout: true,
	}, nil, &stdout, nil)
	if err != nil {
		t.Fatalf("RunTest: %v", err)
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if stdout.String() != "hello\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunTestReportsNonZeroExit(t *testing.T) {
	tr := local.New()
	status, err := tr.RunTest(context.Background(), protocol.CommandDescriptor{
		Command: "exit 7",
	}, nil, nil, nil)
	if err != nil {
		t.Fatalf("RunTest: %v", err)
	}
	if status != 7 {
		t.Fatalf("status = %d, want 7", status)
	}
}

func TestInjectThenExtractRoundTrip(t *testing.T) {
	tr := local.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.txt")

	err := tr.InjectFile(context.Background(), protocol.TransferDescriptor{
		RemoteName: path,
		Mode:       0644,
	}, bytes.NewBufferString("payload contents"))
	if err != nil {
		t.Fatalf("InjectFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Fatalf("mode = %v, want 0644", info.Mode().Perm())
	}

	var out bytes.Buffer
	if err := tr.ExtractFile(context.Background(), protocol.TransferDescriptor{RemoteName: path}, &out); err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if out.String() != "payload contents" {
		t.Fatalf("got %q", out.String())
	}
}

func TestChatExpectSeesShellOutput(t *testing.T) {
	tr := local.New()
	chat, err := tr.ChatBegin(context.Background(), "/bin/sh")
	if err != nil {
		t.Fatalf("ChatBegin: %v", err)
	}
	defer chat.Close()

	if err := chat.Gets([]byte("echo READY\n")); err != nil {
		t.Fatalf("Gets: %v", err)
	}
	res, err := chat.Expect([][]byte{[]byte("READY")}, 3*time.Second)
	if err != nil {
		t.Fatalf("Expect: %v", err)
	}
	if !res.Found {
		t.Fatalf("Expect did not find READY in %q", res.Output)
	}
}

func TestChatExpectTimesOutWithoutMatch(t *testing.T) {
	tr := local.New()
	chat, err := tr.ChatBegin(context.Background(), "/bin/sh")
	if err != nil {
		t.Fatalf("ChatBegin: %v", err)
	}
	defer chat.Close()

	res, err := chat.Expect([][]byte{[]byte("THIS_NEVER_APPEARS")}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Expect: %v", err)
	}
	if res.Found {
		t.Fatalf("Expect unexpectedly matched")
	}
}

func TestChatExpectTieBreakPrefersLongerCandidateAtSameOffset(t *testing.T) {
	res, ok := plugin.MatchExpect([]byte("READY> "), [][]byte{[]byte("READY"), []byte("READY>")})
	if !ok {
		t.Fatal("expected a match")
	}
	if string(res.Matched) != "READY>" {
		t.Fatalf("expected the longer candidate to win, got %q", res.Matched)
	}
	if res.Consumed != 6 {
		t.Fatalf("expected consumed length 6, got %d", res.Consumed)
	}
}
