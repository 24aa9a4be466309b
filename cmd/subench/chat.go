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
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sabouaram/subench/plugin"
)

func newChatCmd() *cobra.Command {
	var expectPatterns []string
	var expectTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "chat <command>",
		Short: "Hold an interactive session, synchronized on --expect",
		Long: "Starts cmd as a Chat session and waits once for --expect " +
			"(e.g. a shell prompt); --expect may be repeated to give a list " +
			"of candidate strings, the earliest match wins and an equal " +
			"offset is won by the longer candidate. With stdin piped, each " +
			"line read is sent and the command blocks again until one of " +
			"the candidates reappears, a simple expect-script loop; without " +
			"--expect it waits once and exits, printing whatever the " +
			"session produced.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer t.Disconnect()

			session, err := t.ChatBegin(ctx, args[0])
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			candidates := make([][]byte, len(expectPatterns))
			for i, p := range expectPatterns {
				candidates[i] = []byte(p)
			}

			if len(candidates) == 0 {
				res, err := session.Expect(nil, expectTimeout)
				os.Stdout.Write(res.Output)
				if err != nil {
					return fmt.Errorf("chat: %w", err)
				}
				return nil
			}

			if err := waitExpect(session, candidates, expectTimeout, expectPatterns); err != nil {
				return err
			}

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if err := session.Gets(append(scanner.Bytes(), '\n')); err != nil {
					return fmt.Errorf("chat: %w", err)
				}
				if err := waitExpect(session, candidates, expectTimeout, expectPatterns); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringArrayVar(&expectPatterns, "expect", nil, "candidate string marking the session ready for the next line (repeatable; earliest match wins, ties go to the longer candidate)")
	cmd.Flags().DurationVar(&expectTimeout, "expect-timeout", 10*time.Second, "how long to wait for --expect each time")
	return cmd
}

// waitExpect runs one Expect against candidates, printing whatever the
// session produced and failing if none of candidates appeared within
// timeout.
func waitExpect(session plugin.Chat, candidates [][]byte, timeout time.Duration, patterns []string) error {
	res, err := session.Expect(candidates, timeout)
	os.Stdout.Write(res.Output)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if !res.Found {
		return fmt.Errorf("chat: none of %q seen within %s", patterns, timeout)
	}
	return nil
}
