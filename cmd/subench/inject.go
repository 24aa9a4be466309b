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

	"github.com/spf13/cobra"

	"github.com/sabouaram/subench/logx"
	"github.com/sabouaram/subench/protocol"
)

func newInjectCmd() *cobra.Command {
	var mode uint32

	cmd := &cobra.Command{
		Use:   "inject <local-path> <remote-path>",
		Short: "Copy a local file onto the target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("inject: %w", err)
			}
			defer f.Close()

			t, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer t.Disconnect()

			desc := protocol.TransferDescriptor{
				LocalName:  args[0],
				RemoteName: args[1],
				User:       flags.user,
				Mode:       mode,
			}
			log.Info("injecting file", logx.NewFields().Add("local", args[0]).Add("remote", args[1]))
			if err := t.InjectFile(ctx, desc, f); err != nil {
				return fmt.Errorf("inject: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&mode, "mode", 0, "remote file permission mode (octal, e.g. 0644)")
	return cmd
}
