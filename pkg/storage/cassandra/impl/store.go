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

package impl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/sessionm/cassandra-object/pkg/common/logging"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

const (
	executeName      = "execute"
	executeBatchName = "executeBatch"

	columnsQuery = "SELECT column_name, kind, position, type, clustering_order " +
		"FROM system_schema.columns WHERE keyspace_name = ? AND table_name = ?"
)

// Store represents connections with Cassandra server nodes.
// the store object is used by multiple go routines.
// concurrency represents number of active go routines using the store.
type Store struct {
	cSession       session
	keySpace       string
	scope          tally.Scope
	timeout        time.Duration
	concurrency    *atomic.Int32
	maxConcurrency int32
	closed         *atomic.Bool
	metrics        Metrics
}

var _ api.Store = (*Store)(nil)

// Metrics is a struct for tracking execute statement / executeBatch statements
// failure / success counters
type Metrics struct {
	ExecuteSuccess tally.Counter
	ExecuteFail    tally.Counter

	ExecuteBatchSuccess tally.Counter
	ExecuteBatchFail    tally.Counter
}

// NewMetrics function creates a Metrics struct
func NewMetrics(scope tally.Scope) Metrics {
	executeScope := scope.SubScope(executeName)
	executeSuccessScope := executeScope.Tagged(map[string]string{"result": "success"})
	executeFailScope := executeScope.Tagged(map[string]string{"result": "fail"})

	executeBatchScope := scope.SubScope(executeBatchName)
	executeBatchSuccessScope := executeBatchScope.Tagged(map[string]string{"result": "success"})
	executeBatchFailScope := executeBatchScope.Tagged(map[string]string{"result": "fail"})

	return Metrics{
		ExecuteSuccess: executeSuccessScope.Counter(executeName),
		ExecuteFail:    executeFailScope.Counter(executeName),

		ExecuteBatchSuccess: executeBatchSuccessScope.Counter(executeBatchName),
		ExecuteBatchFail:    executeBatchFailScope.Counter(executeBatchName),
	}
}

// Execute runs a statement and returns its rows.
func (s *Store) Execute(
	ctx context.Context,
	stmt qb.Statement,
	opts api.ExecOptions) ([]api.Row, error) {
	cql, err := stmt.ToCQL()
	if err != nil {
		return nil, err
	}

	op := opts.Operation
	if op == "" {
		op = stmt.StmtType().String()
	}
	tags := map[string]string{"operation": op}
	if opts.ColumnFamily != "" {
		tags["table"] = opts.ColumnFamily
	}
	ctx = api.ContextWithTags(ctx, tags)

	var rows []api.Row
	start := time.Now()
	err = Decorate(func() error {
		var err error
		rows, err = s.run(ctx, &query{
			cql:         cql,
			consistency: opts.Consistency.Gocql(),
			pageSize:    opts.PageSize,
			idempotent:  opts.Idempotent,
			read:        stmt.StmtType() == qb.SelectStmtType,
		}, opts.Timeout)
		err = classifyError(err, opts.ColumnFamily)
		return err
	}, Safeguard(s), Count(ctx, s, executeName), Trace(ctx, "cql."+op))()
	s.sendLatency(ctx, "execute_latency", time.Since(start))

	batch := stmt.StmtType() == qb.BatchStmtType
	entry := log.WithFields(log.Fields{
		logging.DBStmtLogField:        cql,
		logging.ColumnFamilyLogField: opts.ColumnFamily,
		"consistency":                opts.Consistency.String(),
	})
	if err != nil {
		s.countResult(batch, false)
		if !errs.IsColumnFamilyNotFound(err) {
			entry.WithError(err).WithField("error_tag", getGocqlErrorTag(err)).
				Warn("cql statement failed")
		}
		return nil, err
	}
	s.countResult(batch, true)
	entry.Debug("cql statement executed")
	return rows, nil
}

// ExecuteAsync dispatches a statement on its own goroutine. Statement
// construction errors are reported through the returned future.
func (s *Store) ExecuteAsync(
	ctx context.Context,
	stmt qb.Statement,
	opts api.ExecOptions) api.Future {
	p := api.NewPromise()
	go func() {
		p.Resolve(s.Execute(ctx, stmt, opts))
	}()
	return p
}

// Columns reads the layout of a column family from system_schema.
func (s *Store) Columns(ctx context.Context, cf string) ([]api.ColumnMetadata, error) {
	var rows []api.Row
	err := Decorate(func() error {
		var err error
		rows, err = s.run(ctx, &query{
			cql:         columnsQuery,
			args:        []interface{}{s.keySpace, cf},
			consistency: gocql.One,
			idempotent:  true,
			read:        true,
		}, 0)
		return classifyError(err, cf)
	}, Safeguard(s), Trace(ctx, "cql.columns"))()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &errs.ColumnFamilyNotFoundError{Name: cf}
	}

	columns := make([]api.ColumnMetadata, 0, len(rows))
	for _, row := range rows {
		c := api.ColumnMetadata{
			Name:            fmt.Sprint(row["column_name"]),
			Type:            fmt.Sprint(row["type"]),
			Kind:            api.ColumnKind(fmt.Sprint(row["kind"])),
			ClusteringOrder: strings.ToLower(fmt.Sprint(row["clustering_order"])),
		}
		if pos, ok := row["position"].(int); ok {
			c.Position = pos
		}
		columns = append(columns, c)
	}
	sortColumns(columns)
	return columns, nil
}

// ClusteringOrder returns the direction of the last clustering column.
func (s *Store) ClusteringOrder(ctx context.Context, cf string) (string, error) {
	columns, err := s.Columns(ctx, cf)
	if err != nil {
		return "", err
	}
	return ClusteringOrderOf(columns), nil
}

// ClusteringOrderOf returns qb.DESC when the last clustering column is
// descending and qb.ASC otherwise.
func ClusteringOrderOf(columns []api.ColumnMetadata) string {
	order := qb.ASC
	for _, c := range columns {
		if c.Kind == api.Clustering {
			order = qb.ASC
			if c.ClusteringOrder == "desc" {
				order = qb.DESC
			}
		}
	}
	return order
}

var kindRank = map[api.ColumnKind]int{
	api.PartitionKey: 0,
	api.Clustering:   1,
	api.Static:       2,
	api.Regular:      3,
}

func sortColumns(columns []api.ColumnMetadata) {
	sort.SliceStable(columns, func(i, j int) bool {
		if kindRank[columns[i].Kind] != kindRank[columns[j].Kind] {
			return kindRank[columns[i].Kind] < kindRank[columns[j].Kind]
		}
		if columns[i].Position != columns[j].Position {
			return columns[i].Position < columns[j].Position
		}
		return columns[i].Name < columns[j].Name
	})
}

// run executes q bounded by timeout, or by the configured timeout.
func (s *Store) run(ctx context.Context, q *query, timeout time.Duration) ([]api.Row, error) {
	if timeout <= 0 {
		timeout = s.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.cSession.query(ctx, q)
}

func (s *Store) countResult(batch, success bool) {
	switch {
	case batch && success:
		s.metrics.ExecuteBatchSuccess.Inc(1)
	case batch:
		s.metrics.ExecuteBatchFail.Inc(1)
	case success:
		s.metrics.ExecuteSuccess.Inc(1)
	default:
		s.metrics.ExecuteFail.Inc(1)
	}
}

// Name returns the name of this datastore
func (s *Store) Name() string {
	return s.keySpace
}

// Close ends the session. Later executions fail with a ConnectionError.
func (s *Store) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.cSession.Close()
	log.WithField("store", s.String()).Info("store closed")
}

func (s *Store) isClosed() bool {
	return s.closed.Load() || s.cSession.Closed()
}

func (s *Store) sendLatency(ctx context.Context, name string, d time.Duration) {
	if s.scope == nil {
		return
	}
	sc := s.scope
	if tags, ok := api.TagsFromContext(ctx); ok {
		sc = sc.Tagged(tags)
	}
	sc.Timer(name).Record(d)
}

// String returns a string representation of the store object
func (s *Store) String() string {
	return fmt.Sprintf("Cassandra.Store[%s]", s.keySpace)
}
