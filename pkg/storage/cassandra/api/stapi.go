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

/*
Package api defines what the wide-column adapter needs from a store: a
statement execution capability and a schema introspection capability.

a very simple usage example is:

store, err := impl.CreateStore(conf, scope)
defer store.Close()

stmt := qb.Select("column1", "value").From("Issues").Where(qb.Eq("key", qb.Literal("0x6b31")))
rows, err := store.Execute(ctx, stmt, api.ExecOptions{Consistency: consistency.Quorum})
*/
package api

import (
	"context"
	"time"

	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// Row is one result row keyed by column name.
type Row = map[string]interface{}

// ExecOptions apply to a single statement execution.
type ExecOptions struct {
	// Consistency is the resolved level for the statement.
	Consistency consistency.Level
	// Timeout bounds the call. Zero uses the store's configured timeout.
	Timeout time.Duration
	// PageSize overrides the configured page size for reads.
	PageSize int
	// Idempotent allows the driver to retry the statement. Counter updates
	// are never idempotent.
	Idempotent bool
	// ColumnFamily and Operation label metrics and errors.
	ColumnFamily string
	Operation    string
}

// Session executes statements. Implementations are safe for concurrent use.
type Session interface {
	// Execute runs stmt and returns every result row. Mutations return no
	// rows. Exceeding the timeout returns a TimeoutError; the outcome of the
	// statement is then unknown.
	Execute(ctx context.Context, stmt qb.Statement, opts ExecOptions) ([]Row, error)

	// ExecuteAsync dispatches stmt and returns immediately.
	ExecuteAsync(ctx context.Context, stmt qb.Statement, opts ExecOptions) Future
}

// ColumnKind is the role of a column in the primary key.
type ColumnKind string

// Column kinds as reported by system_schema.columns.
const (
	PartitionKey ColumnKind = "partition_key"
	Clustering   ColumnKind = "clustering"
	Regular      ColumnKind = "regular"
	Static       ColumnKind = "static"
)

// ColumnMetadata describes one column of a column family.
type ColumnMetadata struct {
	Name     string
	Type     string
	Kind     ColumnKind
	Position int
	// ClusteringOrder is "asc" or "desc" for clustering columns.
	ClusteringOrder string
}

// SchemaIntrospector reads column family layouts from the store.
type SchemaIntrospector interface {
	// Columns returns every column of cf ordered by kind and position. A
	// missing column family is a ColumnFamilyNotFoundError.
	Columns(ctx context.Context, cf string) ([]ColumnMetadata, error)

	// ClusteringOrder returns qb.ASC or qb.DESC, decided by the last
	// clustering column of cf.
	ClusteringOrder(ctx context.Context, cf string) (string, error)
}

// Store is a session that can also describe its schema.
type Store interface {
	Session
	SchemaIntrospector

	// Name returns the keyspace of the store.
	Name() string
}

type contextKey string

// TagKey is used to reference tags in the context
const TagKey = contextKey("stapi.tags")

// ContextWithTags returns a context with tags
func ContextWithTags(ctx context.Context, t map[string]string) context.Context {
	return context.WithValue(ctx, TagKey, t)
}

// TagsFromContext returns the metric tags stored in ctx.
func TagsFromContext(ctx context.Context) (map[string]string, bool) {
	s, ok := ctx.Value(TagKey).(map[string]string)
	return s, ok
}

// FuncType is a function being decorated
type FuncType func() error

// Decorator is a function that decorates a function
type Decorator func(ef FuncType) FuncType
