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

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <remote-path> <local-path>",
		Short: "Copy a file off the target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			ctx := cmd.Context()

			t, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer t.Disconnect()

			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			defer f.Close()

			desc := protocol.TransferDescriptor{
				RemoteName: args[0],
				LocalName:  args[1],
				User:       flags.user,
			}
			log.Info("extracting file", logx.NewFields().Add("remote", args[0]).Add("local", args[1]))
			if err := t.ExtractFile(ctx, desc, f); err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			return nil
		},
	}
	return cmd
}
