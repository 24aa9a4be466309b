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
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sabouaram/subench/config"
	"github.com/sabouaram/subench/logx"
	"github.com/sabouaram/subench/metrics"
	"github.com/sabouaram/subench/plugin/wire"
	"github.com/sabouaram/subench/target"
)

var (
	metricsOnce sync.Once
	metricsCol  *metrics.Collector
)

// collector lazily registers one process-wide metrics.Collector against
// the default prometheus registry, so opening several Targets in one
// process (or re-entering openTarget in tests) never double-registers.
func collector() *metrics.Collector {
	metricsOnce.Do(func() {
		metricsCol = metrics.NewCollector(prometheus.DefaultRegisterer)
	})
	return metricsCol
}

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	profile    string
	targetSpec string
	user       string
	timeout    time.Duration
	logLevel   string
}

var flags rootFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "subench",
		Short:         "Drive a system-under-test over a subench agent transport",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "harness config file (profiles of named targets)")
	pf.StringVar(&flags.profile, "profile", "", "named profile to load from --config")
	pf.StringVar(&flags.targetSpec, "target", "", `target spec, "<plugin>:<spec>" (e.g. "tcp:host:4999")`)
	pf.StringVar(&flags.user, "user", "", "remote user (overrides the profile/default)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "command timeout (overrides the profile/default)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newRunCmd())
	root.AddCommand(newInjectCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newChatCmd())
	return root
}

// newLogger builds the logger every subcommand logs diagnostics through,
// honoring --log-level.
func newLogger() *logx.Logger {
	return logx.New(os.Stderr, logx.ParseLevel(flags.logLevel))
}

// openTarget resolves a Target from either --config/--profile or a bare
// --target spec, applying --user/--timeout overrides on top, and
// attaches a metrics.Collector registered against the default
// prometheus registry so every CLI invocation exports
// subench_transactions_total and friends.
func openTarget(ctx context.Context) (*target.Target, error) {
	defaults := target.DefaultDefaults()
	spec := flags.targetSpec

	if flags.configPath != "" {
		mgr, err := config.Load(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if flags.profile == "" {
			return nil, fmt.Errorf("--profile is required with --config")
		}
		p, err := mgr.Profile(flags.profile)
		if err != nil {
			return nil, err
		}
		spec = p.Target
		if p.User != "" {
			defaults.User = p.User
		}
		if p.Timeout > 0 {
			defaults.Timeout = p.Timeout
		}
		if p.Mode != 0 {
			defaults.Mode = p.Mode
		}
	}

	if spec == "" {
		return nil, fmt.Errorf("either --target or --config/--profile must be set")
	}
	if flags.user != "" {
		defaults.User = flags.user
	}
	if flags.timeout > 0 {
		defaults.Timeout = flags.timeout
	}

	t, err := target.OpenWithDefaults(ctx, spec, defaults)
	if err != nil {
		return nil, err
	}

	if wc, ok := asWireClient(t); ok {
		wc.SetMetrics(collector())
	}
	return t, nil
}

// asWireClient is a best-effort type probe: only wire-speaking plugins
// (virtio/serial/tcp) expose SetMetrics, so local/chroot/ssh simply
// don't get instrumented.
func asWireClient(t *target.Target) (*wire.Client, bool) {
	wc, ok := t.Transport().(*wire.Client)
	return wc, ok
}
