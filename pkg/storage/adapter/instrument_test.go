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
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

func TestLogSubscriber(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	s := LogSubscriber{Logger: logger}

	s.Handle(context.Background(), Event{
		Operation:    OpAdd,
		ColumnFamily: "Counters",
		Key:          "k2",
		Columns:      []string{"foo"},
		Amount:       1,
		Duration:     1500 * time.Microsecond,
	})
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "Counters add (1.5ms)  k2[foo] by 1", hook.LastEntry().Message)
	assert.Equal(t, OpAdd, hook.LastEntry().Data["operation"])

	s.Handle(context.Background(), Event{
		Operation:    OpGet,
		ColumnFamily: "Issues",
		Key:          "k1",
		Err:          errs.NotFoundf("missing"),
	})
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)

	s.Handle(context.Background(), Event{
		Operation:    OpInsert,
		ColumnFamily: "Issues",
		Key:          "k1",
		Err:          errors.New("boom"),
	})
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestLogSubscriberQuietAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.InfoLevel)
	LogSubscriber{Logger: logger}.Handle(context.Background(), Event{Operation: OpGet})
	assert.Empty(t, hook.Entries)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "(2) k1 k2", describe(Event{Operation: OpMultiGet, Keys: 2, Key: "k1 k2"}))
	assert.Equal(t, "k1 'a' => 'm'", describe(Event{Operation: OpGetSlice, Key: "k1", Start: "a", Finish: "m"}))
	assert.Equal(t, "Issues", describe(Event{Operation: OpTruncate, ColumnFamily: "Issues"}))
	assert.Equal(t, "k1 [a b]", describe(Event{Operation: OpInsert, Key: "k1", Columns: []string{"a", "b"}}))
}

func TestMetricsSubscriber(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	s := NewMetricsSubscriber(scope)

	s.Handle(context.Background(), Event{Operation: OpGet, ColumnFamily: "Issues"})
	s.Handle(context.Background(), Event{Operation: OpGet, ColumnFamily: "Issues", Err: errs.NotFoundf("x")})
	s.Handle(context.Background(), Event{Operation: OpGet, ColumnFamily: "Issues", Err: errors.New("x")})

	counters := map[string]int64{}
	for _, c := range scope.Snapshot().Counters() {
		if c.Tags()["operation"] == OpGet && c.Tags()["column_family"] == "Issues" {
			counters[c.Name()] += c.Value()
		}
	}
	assert.Equal(t, map[string]int64{
		"adapter.success":   1,
		"adapter.not_found": 1,
		"adapter.errors":    1,
	}, counters)
}
