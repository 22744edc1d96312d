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
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
)

// Closer stops the runtime metrics collection
type Closer func()

// numGCThreshold is the size of the MemStats.PauseNs ring buffer.
const numGCThreshold = uint32(256)

// StartCollectingRuntimeMetrics samples runtime metrics into scope every
// collectInterval when enabled.
func StartCollectingRuntimeMetrics(
	scope tally.Scope,
	enabled bool,
	collectInterval time.Duration,
) Closer {
	c := NewRuntimeCollector(scope, collectInterval)
	if enabled {
		c.Start()
	}
	return c.close
}

type runtimeMetrics struct {
	numGoRoutines   tally.Gauge
	goMaxProcs      tally.Gauge
	memoryAllocated tally.Gauge
	memoryHeap      tally.Gauge
	memoryHeapInuse tally.Gauge
	memoryStack     tally.Gauge
	numGC           tally.Counter
	gcPause         tally.Timer
}

// RuntimeCollector periodically reports goroutine, memory and GC figures.
type RuntimeCollector struct {
	collectInterval time.Duration
	metrics         runtimeMetrics
	lastNumGC       *atomic.Uint32
	started         *atomic.Bool
	closeOnce       sync.Once
	quit            chan struct{}
}

// NewRuntimeCollector creates a new RuntimeCollector.
func NewRuntimeCollector(scope tally.Scope, collectInterval time.Duration) *RuntimeCollector {
	var memstats runtime.MemStats
	runtime.ReadMemStats(&memstats)
	return &RuntimeCollector{
		collectInterval: collectInterval,
		metrics: runtimeMetrics{
			numGoRoutines:   scope.Gauge("num_goroutines"),
			goMaxProcs:      scope.Gauge("gomaxprocs"),
			memoryAllocated: scope.Gauge("memory_allocated"),
			memoryHeap:      scope.Gauge("memory_heap"),
			memoryHeapInuse: scope.Gauge("memory_heapinuse"),
			memoryStack:     scope.Gauge("memory_stack"),
			numGC:           scope.Counter("memory_num_gc"),
			gcPause:         scope.Timer("memory_gc_pause"),
		},
		lastNumGC: atomic.NewUint32(memstats.NumGC),
		started:   atomic.NewBool(false),
		quit:      make(chan struct{}),
	}
}

// IsRunning returns true if the collector has been started and false if not.
func (r *RuntimeCollector) IsRunning() bool {
	return r.started.Load()
}

// Start launches the sampling goroutine. Starting twice is a no-op.
func (r *RuntimeCollector) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	log.WithField("interval", r.collectInterval).Debug("runtime metrics started")
	go func() {
		ticker := time.NewTicker(r.collectInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.generate()
			case <-r.quit:
				return
			}
		}
	}()
}

func (r *RuntimeCollector) generate() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	r.metrics.numGoRoutines.Update(float64(runtime.NumGoroutine()))
	r.metrics.goMaxProcs.Update(float64(runtime.GOMAXPROCS(0)))
	r.metrics.memoryAllocated.Update(float64(memStats.Alloc))
	r.metrics.memoryHeap.Update(float64(memStats.HeapAlloc))
	r.metrics.memoryHeapInuse.Update(float64(memStats.HeapInuse))
	r.metrics.memoryStack.Update(float64(memStats.StackInuse))

	// NumGC wraps at 2^32; the difference stays correct across the wrap.
	num := memStats.NumGC
	lastNum := r.lastNumGC.Swap(num)
	delta := num - lastNum
	if delta == 0 {
		return
	}
	r.metrics.numGC.Inc(int64(delta))
	if delta >= numGCThreshold {
		lastNum = num - numGCThreshold
	}
	for i := lastNum; i != num; i++ {
		r.metrics.gcPause.Record(time.Duration(memStats.PauseNs[i%numGCThreshold]))
	}
}

// close stops collecting. A closed collector cannot be started again.
func (r *RuntimeCollector) close() {
	r.closeOnce.Do(func() { close(r.quit) })
}
