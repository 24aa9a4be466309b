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
	"os"
	"strconv"
	"strings"
)

// Network names the transport protocol a socket endpoint is carried on.
type Network string

const (
	NetworkTCP  Network = "tcp"
	NetworkUDP  Network = "udp"
	NetworkUnix Network = "unix"
)

func (n Network) valid() bool {
	switch n {
	case NetworkTCP, NetworkUDP, NetworkUnix:
		return true
	default:
		return false
	}
}

// TLS describes optional transport encryption for a tcp/ssh plugin.
type TLS struct {
	Enable bool   `mapstructure:"enable"`
	CAFile string `mapstructure:"ca_file"`

	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`

	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// Client describes a dial-out target: a network protocol plus address
// (host:port for tcp/udp, path for unix) and optional TLS.
type Client struct {
	Network Network `mapstructure:"network"`
	Address string  `mapstructure:"address"`
	TLS     TLS     `mapstructure:"tls"`
}

// Validate checks that the client config is internally consistent,
// returning a descriptive error for the first problem found.
func (c Client) Validate() error {
	if !c.Network.valid() {
		return fmt.Errorf("config: unknown network %q", c.Network)
	}
	if strings.TrimSpace(c.Address) == "" {
		return errors.New("config: address is required")
	}
	if c.Network == NetworkUnix && strings.Contains(c.Address, ":") {
		return fmt.Errorf("config: unix address %q looks like a host:port", c.Address)
	}
	if c.TLS.Enable && c.TLS.CertFile == "" && c.TLS.CAFile == "" {
		return errors.New("config: tls enabled with no cert_file or ca_file")
	}
	return nil
}

// Server describes a listen target plus the permission mode applied to
// unix socket paths on creation.
type Server struct {
	Network Network `mapstructure:"network"`
	Address string  `mapstructure:"address"`
	Mode    string  `mapstructure:"mode"`
	TLS     TLS     `mapstructure:"tls"`
}

// Validate checks the server config, including that Mode (when set)
// parses as an octal file permission.
func (s Server) Validate() error {
	if !s.Network.valid() {
		return fmt.Errorf("config: unknown network %q", s.Network)
	}
	if strings.TrimSpace(s.Address) == "" {
		return errors.New("config: address is required")
	}
	if s.Mode != "" {
		if _, err := ParseMode(s.Mode); err != nil {
			return fmt.Errorf("config: mode: %w", err)
		}
	}
	if s.TLS.Enable && s.TLS.CertFile == "" {
		return errors.New("config: tls enabled with no cert_file")
	}
	return nil
}

// ModeOrDefault returns the parsed Mode, or def if Mode is unset or
// invalid.
func (s Server) ModeOrDefault(def os.FileMode) os.FileMode {
	if s.Mode == "" {
		return def
	}
	m, err := ParseMode(s.Mode)
	if err != nil {
		return def
	}
	return m
}

// ParseMode parses a permission string (octal, with or without a leading
// "0", e.g. "644" or "0644") into an os.FileMode.
func ParseMode(s string) (os.FileMode, error) {
	s = strings.TrimPrefix(s, "0o")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q: %w", s, err)
	}
	return os.FileMode(v), nil
}
