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

package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/common/logging"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// Operation names reported in events.
const (
	OpGet                = "get"
	OpGetColumns         = "get_columns"
	OpGetCounter         = "get_counter"
	OpMultiGet           = "multi_get"
	OpInsert             = "insert"
	OpAdd                = "add"
	OpRemove             = "remove"
	OpTruncate           = "truncate"
	OpGetRange           = "get_range"
	OpGetSlice           = "get_slice"
	OpExists             = "exists"
	OpBatch              = "batch"
	OpCreateColumnFamily = "create_column_family"
	OpDropColumnFamily   = "drop_column_family"
)

// Event describes one adapter call.
type Event struct {
	Operation    string
	ColumnFamily string
	Key          string
	// Keys is the number of keys of a multi key operation.
	Keys int
	// Columns are the column names touched, when known.
	Columns []string
	// Amount is the increment of a counter update.
	Amount int64
	// Start and Finish are the bounds of a slice.
	Start, Finish interface{}
	// Async is set when the statement was dispatched without waiting.
	Async    bool
	Duration time.Duration
	Err      error
}

// Subscriber receives an event after every adapter call.
type Subscriber interface {
	Handle(ctx context.Context, e Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(ctx context.Context, e Event)

// Handle calls f.
func (f SubscriberFunc) Handle(ctx context.Context, e Event) {
	f(ctx, e)
}

// LogSubscriber logs every call at debug level.
type LogSubscriber struct {
	Logger *log.Logger
}

// Handle implements Subscriber.
func (s LogSubscriber) Handle(ctx context.Context, e Event) {
	logger := s.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	if !logger.IsLevelEnabled(log.DebugLevel) && e.Err == nil {
		return
	}

	entry := logger.WithFields(log.Fields{
		logging.OperationLogField:    e.Operation,
		logging.ColumnFamilyLogField: e.ColumnFamily,
	})
	msg := fmt.Sprintf("%s %s (%.1fms)  %s", e.ColumnFamily, e.Operation,
		float64(e.Duration)/float64(time.Millisecond), describe(e))

	if e.Err != nil && !errs.IsNotFound(e.Err) {
		entry.WithError(e.Err).Warn(msg)
		return
	}
	entry.Debug(msg)
}

func describe(e Event) string {
	switch e.Operation {
	case OpAdd:
		return fmt.Sprintf("%s[%s] by %d", e.Key, strings.Join(e.Columns, ","), e.Amount)
	case OpGetCounter, OpGetColumns:
		return fmt.Sprintf("%s[%s]", e.Key, strings.Join(e.Columns, ","))
	case OpMultiGet:
		return fmt.Sprintf("(%d) %s", e.Keys, e.Key)
	case OpRemove, OpInsert:
		if len(e.Columns) > 0 {
			return fmt.Sprintf("%s %v", e.Key, e.Columns)
		}
		return e.Key
	case OpGetRange:
		return fmt.Sprintf("(%d)", e.Keys)
	case OpGetSlice:
		return fmt.Sprintf("%s '%v' => '%v'", e.Key, e.Start, e.Finish)
	case OpTruncate, OpCreateColumnFamily, OpDropColumnFamily:
		return e.ColumnFamily
	case OpBatch:
		return fmt.Sprintf("(%d statements)", e.Keys)
	}
	return e.Key
}

// MetricsSubscriber records call latency and outcome per operation and
// column family.
type MetricsSubscriber struct {
	scope tally.Scope
}

// NewMetricsSubscriber returns a subscriber reporting under scope.
func NewMetricsSubscriber(scope tally.Scope) *MetricsSubscriber {
	return &MetricsSubscriber{scope: scope.SubScope("adapter")}
}

// Handle implements Subscriber.
func (s *MetricsSubscriber) Handle(ctx context.Context, e Event) {
	scope := s.scope.Tagged(map[string]string{
		"operation":     e.Operation,
		"column_family": e.ColumnFamily,
	})
	scope.Timer("latency").Record(e.Duration)
	switch {
	case e.Err == nil:
		scope.Counter("success").Inc(1)
	case errs.IsNotFound(e.Err):
		scope.Counter("not_found").Inc(1)
	default:
		scope.Counter("errors").Inc(1)
	}
}

// emit sends e to every subscriber.
func (a *Adapter) emit(ctx context.Context, start time.Time, e Event) {
	e.Duration = time.Since(start)
	for _, s := range a.subscribers {
		s.Handle(ctx, e)
	}
}
