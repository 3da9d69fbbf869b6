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

package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/config"
	"dirpx.dev/cellx/console"
	"dirpx.dev/cellx/metrics"
	"dirpx.dev/cellx/platform"
)

// newPlatform returns the platform commands run on. Tests replace it.
var newPlatform = func() apis.Platform {
	return platform.NewOS()
}

// openConsole builds a console for one command run. The returned gatherer
// exposes the cell metrics of that console.
func openConsole(cmd *cobra.Command, rf *rootFlags) (*console.Console, prometheus.Gatherer, error) {
	cfg := config.DefaultConfig()
	if rf.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(rf.configPath); err != nil {
			return nil, nil, err
		}
	}

	level := slog.LevelWarn
	if rf.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewPrometheus(reg, "cellx")
	if err != nil {
		return nil, nil, err
	}

	c, err := console.New(
		console.WithPlatform(newPlatform()),
		console.WithConfig(cfg),
		console.WithLogger(logger),
		console.WithObserver(obs),
	)
	if err != nil {
		return nil, nil, err
	}
	return c, reg, nil
}
