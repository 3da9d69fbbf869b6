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

package console

import (
	"log/slog"

	"dirpx.dev/cellx/apis"
)

// Option configures a Console.
type Option func(*options)

type options struct {
	platform apis.Platform
	builder  apis.Builder
	resolver apis.Resolver
	config   *apis.Config
	observer apis.Observer
	logger   *slog.Logger
}

// WithPlatform sets the platform. The default is platform.NewOS().
func WithPlatform(p apis.Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithBuilder sets the stream builder. The default is builder.New().
func WithBuilder(b apis.Builder) Option {
	return func(o *options) { o.builder = b }
}

// WithResolver sets the encoding resolver. The default resolves against a
// fresh registry, then the IANA and WHATWG indexes.
func WithResolver(r apis.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithConfig sets the configuration. It is validated by New.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.config = &cfg }
}

// WithObserver sets the observer of the console's cells.
func WithObserver(obs apis.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
