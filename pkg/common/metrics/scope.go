// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"io"
	"time"

	"github.com/uber-go/tally/v4"
)

const defaultReportInterval = time.Second

// Config describes the root metrics scope of a process.
type Config struct {
	// Prefix is prepended to every metric name.
	Prefix string `yaml:"prefix"`
	// Tags are attached to every metric.
	Tags map[string]string `yaml:"tags"`
	// ReportInterval is how often metrics are flushed to the reporter.
	ReportInterval time.Duration `yaml:"report_interval"`
	// RuntimeMetrics enables the goroutine, memory and GC gauges.
	RuntimeMetrics bool `yaml:"runtime_metrics"`
	// RuntimeInterval is how often runtime metrics are sampled.
	RuntimeInterval time.Duration `yaml:"runtime_interval"`
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewRootScope returns the root scope of cfg reporting to reporter, or
// discarding everything when reporter is nil. Closing the returned closer
// stops runtime collection and flushes the scope.
func NewRootScope(cfg Config, reporter tally.StatsReporter) (tally.Scope, io.Closer) {
	if reporter == nil {
		reporter = tally.NullStatsReporter
	}
	interval := cfg.ReportInterval
	if interval <= 0 {
		interval = defaultReportInterval
	}
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:    cfg.Prefix,
		Tags:      cfg.Tags,
		Reporter:  reporter,
		Separator: tally.DefaultSeparator,
	}, interval)

	runtimeInterval := cfg.RuntimeInterval
	if runtimeInterval <= 0 {
		runtimeInterval = 10 * time.Second
	}
	stop := StartCollectingRuntimeMetrics(scope.SubScope("runtime"), cfg.RuntimeMetrics, runtimeInterval)
	return scope, closerFunc(func() error {
		stop()
		return closer.Close()
	})
}
