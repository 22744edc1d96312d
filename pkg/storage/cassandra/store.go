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

package cassandra

import (
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/storage/adapter"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/impl"
	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
)

// Store is the wide-column adapter of one keyspace together with the
// connection it owns.
type Store struct {
	*adapter.Adapter
	Conf *Config

	conn *impl.Store
}

// NewStore connects to the keyspace of config and returns an adapter that
// logs and measures every operation. More subscribers may be given.
func NewStore(
	config *Config,
	scope tally.Scope,
	subscribers ...adapter.Subscriber) (*Store, error) {
	policy, err := consistency.NewPolicy(config.ReadConsistency, config.WriteConsistency)
	if err != nil {
		return nil, err
	}

	conn, err := impl.CreateStore(config.CassandraConn, config.StoreName, scope)
	if err != nil {
		log.WithError(err).
			WithField("key_space", config.StoreName).
			Error("Failed to NewStore")
		return nil, err
	}

	subs := append([]adapter.Subscriber{
		adapter.LogSubscriber{},
		adapter.NewMetricsSubscriber(scope),
	}, subscribers...)
	return &Store{
		Adapter: adapter.New(conn, policy, subs...),
		Conf:    config,
		conn:    conn,
	}, nil
}

// Close closes the underlying session.
func (s *Store) Close() {
	s.conn.Close()
}
