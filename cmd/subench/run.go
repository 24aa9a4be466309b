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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sabouaram/subench/logx"
	"github.com/sabouaram/subench/protocol"
)

func newRunCmd() *cobra.Command {
	var env []string
	var wantStderr bool

	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command on the target and stream its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			ctx := cmd.Context()

			t, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer t.Disconnect()

			desc := protocol.CommandDescriptor{
				Command:    strings.Join(args, " "),
				User:       flags.user,
				Env:        env,
				WantStdout: true,
				WantStderr: wantStderr,
			}

			log.Info("running command", logx.NewFields().Add("command", desc.Command).Add("target", t.Name()))
			status, err := t.RunTest(ctx, desc, os.Stdin, os.Stdout, os.Stderr)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			if status != 0 {
				os.Exit(int(status))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, `environment variable "KEY=VALUE", repeatable`)
	cmd.Flags().BoolVar(&wantStderr, "stderr", true, "capture the command's standard error")
	return cmd
}
