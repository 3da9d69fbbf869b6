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

// Package metrics provides apis.Observer implementations.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/cellx/apis"
)

// Prometheus counts cell lifecycle events. Every series is labeled by
// domain and cell.
type Prometheus struct {
	populations   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	replacements  *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

var _ apis.Observer = (*Prometheus)(nil)

// NewPrometheus creates the collectors under namespace and registers them
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"domain", "cell"}
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cell",
			Name:      name,
			Help:      help,
		}, labels)
	}
	p := &Prometheus{
		populations:   counter("populations_total", "Values built by cell factories."),
		failures:      counter("failures_total", "Failed cell populations."),
		invalidations: counter("invalidations_total", "Cached values dropped."),
		replacements:  counter("replacements_total", "Values replaced by callers."),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cell",
			Name:      "population_duration_seconds",
			Help:      "Time spent in cell factories.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 7),
		}, labels),
	}
	for _, c := range []prometheus.Collector{p.populations, p.failures, p.invalidations, p.replacements, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Join(errors.New("cellx(metrics): register collector"), err)
		}
	}
	return p, nil
}

// Populated counts a population and records its duration.
func (p *Prometheus) Populated(domain, cell string, took time.Duration) {
	p.populations.WithLabelValues(domain, cell).Inc()
	p.duration.WithLabelValues(domain, cell).Observe(took.Seconds())
}

// Failed counts a failed population.
func (p *Prometheus) Failed(domain, cell string, _ error) {
	p.failures.WithLabelValues(domain, cell).Inc()
}

// Invalidated counts a dropped value.
func (p *Prometheus) Invalidated(domain, cell string) {
	p.invalidations.WithLabelValues(domain, cell).Inc()
}

// Replaced counts a caller replacement.
func (p *Prometheus) Replaced(domain, cell string) {
	p.replacements.WithLabelValues(domain, cell).Inc()
}
