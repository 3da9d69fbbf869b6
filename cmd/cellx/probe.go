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
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/cellx/cell"
	"dirpx.dev/cellx/console"
)

// report is what probe prints.
type report struct {
	Platform       string            `yaml:"platform"`
	InputEncoding  string            `yaml:"input_encoding"`
	OutputEncoding string            `yaml:"output_encoding"`
	Stdout         string            `yaml:"stdout"`
	Redirected     map[string]string `yaml:"redirected"`
	Cells          []cell.Status     `yaml:"cells"`
	Metrics        map[string]int    `yaml:"metrics,omitempty"`
}

func newProbeCmd(rf *rootFlags) *cobra.Command {
	var (
		format      string
		withMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report encodings, redirection and console cell state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
			c, g, err := openConsole(cmd, rf)
			if err != nil {
				return err
			}
			r := probe(c)
			if withMetrics {
				if r.Metrics, err = counters(g); err != nil {
					return err
				}
			}
			// The report goes to the console unless stdout itself failed.
			var out io.Writer = cmd.ErrOrStderr()
			if w, err := c.Stdout(); err == nil {
				out = w
			}
			if format == "yaml" {
				b, err := yaml.Marshal(r)
				if err != nil {
					return err
				}
				if _, err := out.Write(b); err != nil {
					return err
				}
			} else if err := printText(out, r); err != nil {
				return err
			}
			return c.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Include cell lifecycle counters")
	return cmd
}

// probe populates every inspectable cell of c and reports the result.
// Failures are reported in place of values.
func probe(c *console.Console) report {
	r := report{
		Platform:   c.Platform().Name(),
		Redirected: map[string]string{},
	}
	if enc, err := c.InputEncoding(); err != nil {
		r.InputEncoding = "error: " + err.Error()
	} else {
		r.InputEncoding = enc.String()
	}
	if enc, err := c.OutputEncoding(); err != nil {
		r.OutputEncoding = "error: " + err.Error()
	} else {
		r.OutputEncoding = enc.String()
	}
	for name, query := range map[string]func() (bool, error){
		console.CellStdin:  c.IsInputRedirected,
		console.CellStdout: c.IsOutputRedirected,
		console.CellStderr: c.IsErrorRedirected,
	} {
		v, err := query()
		if err != nil {
			r.Redirected[name] = "unknown"
			continue
		}
		r.Redirected[name] = strconv.FormatBool(v)
	}
	// Open stdout before the snapshot so it shows up populated.
	if _, err := c.Stdout(); err != nil {
		r.Stdout = "error: " + err.Error()
	} else {
		r.Stdout = "ok"
	}
	r.Cells = c.Snapshot()
	return r
}

// counters sums every counter family gathered from g.
func counters(g prometheus.Gatherer) (map[string]int, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]int{}
	for _, mf := range mfs {
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		if mf.GetMetric()[0].GetCounter() != nil {
			out[mf.GetName()] = int(sum)
		}
	}
	return out, nil
}

func printText(w io.Writer, r report) error {
	lines := []string{
		"platform:        " + r.Platform,
		"input encoding:  " + r.InputEncoding,
		"output encoding: " + r.OutputEncoding,
		"stdout:          " + r.Stdout,
	}
	for _, name := range []string{console.CellStdin, console.CellStdout, console.CellStderr} {
		lines = append(lines, fmt.Sprintf("%-17s%s", name+" redirected:", r.Redirected[name]))
	}
	lines = append(lines, "cells:")
	for _, s := range r.Cells {
		lines = append(lines, fmt.Sprintf("  %-18s populated=%-5t pinned=%-5t epoch=%d", s.Name, s.Populated, s.Pinned, s.Epoch))
	}
	if len(r.Metrics) > 0 {
		names := make([]string, 0, len(r.Metrics))
		for n := range r.Metrics {
			names = append(names, n)
		}
		sort.Strings(names)
		lines = append(lines, "metrics:")
		for _, n := range names {
			lines = append(lines, fmt.Sprintf("  %s %d", n, r.Metrics[n]))
		}
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
