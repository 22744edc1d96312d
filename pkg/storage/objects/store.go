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

package objects

import (
	"context"

	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/storage"
	"github.com/sessionm/cassandra-object/pkg/storage/adapter"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra"
	"github.com/sessionm/cassandra-object/pkg/storage/objects/base"
	"github.com/sessionm/cassandra-object/pkg/storage/orm"
)

// Objs is a global list of storage objects. Every storage object will be added
// using an init method to this list. This list will be used when creating the
// ORM client.
var Objs []base.Entity

// Store contains ORM client as well as metrics
type Store struct {
	oClient orm.Client
	metrics *storage.Metrics
	conn    *cassandra.Store
}

// NewCassandraStore creates a new Cassandra storage client
func NewCassandraStore(
	config *cassandra.Config,
	scope tally.Scope,
) (*Store, error) {
	conn, err := cassandra.NewStore(config, scope)
	if err != nil {
		return nil, err
	}
	oclient, err := orm.NewClient(conn.Adapter, Objs...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Store{
		oClient: oclient,
		metrics: storage.NewMetrics(scope.SubScope("storage")),
		conn:    conn,
	}, nil
}

// Batch runs fn with the mutations it issues through ctx sent as one
// batch once fn returns.
func (s *Store) Batch(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.conn == nil {
		return fn(ctx)
	}
	return s.conn.Batch(ctx, adapter.Options{}, fn)
}

// Close closes the underlying session.
func (s *Store) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}
