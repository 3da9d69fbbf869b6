/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/cellx/apis"
)

const (
	// DefaultWriteBufferSize represents the default for WriteBufferSize.
	// Writers auto-flush on every write, so a large buffer buys nothing.
	DefaultWriteBufferSize = 256
	// DefaultReadBufferSize represents the default for ReadBufferSize.
	DefaultReadBufferSize = 4096
	// DefaultAutoFlush represents the default for AutoFlush.
	DefaultAutoFlush = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure buffer sizes are valid.
	if cfg.WriteBufferSize <= 0 {
		cfg.WriteBufferSize = DefaultWriteBufferSize
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		WriteBufferSize: DefaultWriteBufferSize,
		ReadBufferSize:  DefaultReadBufferSize,
		AutoFlush:       DefaultAutoFlush,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithWriteBufferSize sets the WriteBufferSize option.
// A non-positive value resets to the default.
func WithWriteBufferSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.WriteBufferSize = DefaultWriteBufferSize
			return
		}
		c.WriteBufferSize = size
	}
}

// WithReadBufferSize sets the ReadBufferSize option.
// A non-positive value resets to the default.
func WithReadBufferSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.ReadBufferSize = DefaultReadBufferSize
			return
		}
		c.ReadBufferSize = size
	}
}

// WithAutoFlush sets the AutoFlush option.
func WithAutoFlush(enabled bool) Option {
	return func(c *apis.Config) {
		c.AutoFlush = enabled
	}
}

// WithInputEncoding sets the initial input encoding name.
func WithInputEncoding(name string) Option {
	return func(c *apis.Config) {
		c.InputEncoding = name
	}
}

// WithOutputEncoding sets the initial output encoding name.
func WithOutputEncoding(name string) Option {
	return func(c *apis.Config) {
		c.OutputEncoding = name
	}
}
