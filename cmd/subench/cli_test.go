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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	_ "github.com/sabouaram/subench/plugin/local"
)

func TestRootCommandRegistersEverySubcommand(t *testing.T) {
	root := newRootCmd()
	want := []string{"run", "inject", "extract", "chat"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected subcommand %q to be registered, err=%v", name, err)
		}
	}
}

func TestRunCommandExecutesAgainstLocalPlugin(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--target", "local:", "run", "--", "echo", "hello-from-cli"})

	var out bytes.Buffer
	root.SetOut(&out)

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run command failed: %v", err)
	}
}

func TestOpenTargetRequiresTargetOrProfile(t *testing.T) {
	flags = rootFlags{logLevel: "info"}
	if _, err := openTarget(context.Background()); err == nil {
		t.Fatal("expected an error when neither --target nor --config/--profile is set")
	}
}

func TestOpenTargetReportsUnloadableConfig(t *testing.T) {
	flags = rootFlags{targetSpec: "", configPath: "/does/not/matter", logLevel: "info"}
	_, err := openTarget(context.Background())
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Fatalf("expected a config-loading error, got %v", err)
	}
}
