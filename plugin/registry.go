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

package plugin

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Factory opens a Transport given the portion of a target spec string
// after the plugin name and colon (e.g. for "ssh:root@host:22", spec is
// "root@host:22").
type Factory func(ctx context.Context, spec string) (Transport, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a plugin factory available under name. Plugins call
// this from an init() in their own package; registering the same name
// twice panics, since it can only indicate a programming mistake.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("plugin: %q already registered", name))
	}
	factories[name] = factory
}

// ParseSpec splits "<plugin>:<spec>" into its plugin name and remainder.
func ParseSpec(target string) (name, spec string, err error) {
	i := strings.IndexByte(target, ':')
	if i < 0 {
		return "", "", fmt.Errorf("plugin: target %q has no \"plugin:spec\" separator", target)
	}
	return target[:i], target[i+1:], nil
}

// Open resolves target ("<plugin>:<spec>") to a live Transport.
func Open(ctx context.Context, target string) (Transport, error) {
	name, spec, err := ParseSpec(target)
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("plugin: unknown plugin %q", name)
	}
	return factory(ctx, spec)
}

// Registered reports whether a plugin name has been registered, mostly
// useful for tests and diagnostics.
func Registered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
