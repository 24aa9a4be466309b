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

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	sockcfg "github.com/sabouaram/subench/socket/config"
)

// Profile is one named target configuration: the "<plugin>:<spec>"
// string a test driver resolves through the plugin registry, plus the
// defaults applied when a command or transfer doesn't set them itself.
type Profile struct {
	Target  string            `mapstructure:"target"`
	User    string            `mapstructure:"user"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Mode    uint32            `mapstructure:"mode"`
	Env     map[string]string `mapstructure:"env"`
	TLS     sockcfg.TLS       `mapstructure:"tls"`
}

// Harness is the full on-disk configuration: a set of named Profiles.
type Harness struct {
	Profiles map[string]Profile `mapstructure:"profiles"`
}

// ErrProfileNotFound is returned by Manager.Profile for an unknown name.
var ErrProfileNotFound = errors.New("config: profile not found")

// Manager owns a loaded Harness and can hot-reload it from disk.
type Manager struct {
	v       *viper.Viper
	path    string
	watcher *fsWatcher

	mu      sync.RWMutex
	harness Harness

	onReload func(error)
}

// Load reads path (any format spf13/viper supports: yaml, json, toml,
// ...) into a Manager.
func Load(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	m := &Manager{v: v, path: path}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) reload() error {
	var h Harness
	if err := m.v.Unmarshal(&h); err != nil {
		return fmt.Errorf("config: decoding %s: %w", m.path, err)
	}
	m.mu.Lock()
	m.harness = h
	m.mu.Unlock()
	return nil
}

// Reload re-reads the config file from disk immediately.
func (m *Manager) Reload() error {
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: re-reading %s: %w", m.path, err)
	}
	return m.reload()
}

// Profile looks up a named profile.
func (m *Manager) Profile(name string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.harness.Profiles[name]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// ProfileNames returns every configured profile name.
func (m *Manager) ProfileNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.harness.Profiles))
	for name := range m.harness.Profiles {
		names = append(names, name)
	}
	return names
}

// OnReload registers a callback invoked after every successful or
// failed hot-reload triggered by Watch (err is nil on success).
func (m *Manager) OnReload(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReload = fn
}

// Watch starts an fsnotify watcher on the config file's directory,
// calling Reload whenever the file itself is written or renamed over
// (the common pattern for atomic config replacement: write a temp file,
// then rename it over the target path). Call Close to stop watching.
func (m *Manager) Watch() error {
	w, err := newFSWatcher(filepath.Dir(m.path), filepath.Base(m.path), func() {
		err := m.Reload()
		m.mu.RLock()
		cb := m.onReload
		m.mu.RUnlock()
		if cb != nil {
			cb(err)
		}
	})
	if err != nil {
		return err
	}
	m.watcher = w
	return nil
}

// Close stops the fsnotify watcher, if one was started with Watch.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
