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
	"time"

	"github.com/gocql/gocql"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/sessionm/cassandra-object/pkg/common/backoff"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

const (
	defaultConnectionsPerHost = 3
	// defaultTimeout is overwritten by timeout provided
	// in cassandra config.
	defaultTimeout              = 20000 * time.Millisecond
	defaultProtoVersion         = 3
	defaultConsistency          = "QUORUM"
	defaultSocketKeepAlive      = 30 * time.Second
	defaultPageSize             = 1000
	defaultPort                 = 9042
	defaultConnectAttempts      = 3
	defaultConnectRetryInterval = time.Second
)

// CreateStore is to create clusters and connections
func CreateStore(storeConfig *CassandraConn, keySpace string, scope tally.Scope) (*Store, error) {
	cSession, err := CreateStoreSession(storeConfig, keySpace)
	if err != nil {
		return nil, err
	}
	return newStore(gocqlSession{cSession}, storeConfig, keySpace, scope), nil
}

func newStore(
	cSession session,
	storeConfig *CassandraConn,
	keySpace string,
	scope tally.Scope) *Store {
	storeScope := scope.SubScope("cql").Tagged(map[string]string{"store": keySpace})
	timeout := storeConfig.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	s := &Store{
		keySpace:       keySpace,
		cSession:       cSession,
		scope:          storeScope,
		timeout:        timeout,
		maxConcurrency: int32(storeConfig.MaxGoRoutines),
		concurrency:    atomic.NewInt32(0),
		closed:         atomic.NewBool(false),
		metrics:        NewMetrics(storeScope),
	}
	log.WithFields(log.Fields{
		"key_space":      keySpace,
		"store":          s.String(),
		"cassandra_port": storeConfig.Port,
	}).Info("C* Session Created.")
	return s
}

// CreateStoreSession creates a gocql session, retrying while the cluster
// is unreachable.
func CreateStoreSession(
	storeConfig *CassandraConn, keySpace string) (*gocql.Session, error) {
	cluster := newCluster(storeConfig)
	cluster.Keyspace = keySpace

	if len(storeConfig.Username) != 0 {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: storeConfig.Username,
			Password: storeConfig.Password,
		}
	}

	attempts := storeConfig.ConnectAttempts
	if attempts == 0 {
		attempts = defaultConnectAttempts
	}
	interval := storeConfig.ConnectRetryInterval
	if interval == 0 {
		interval = defaultConnectRetryInterval
	}

	var cSession *gocql.Session
	err := backoff.Retry(context.Background(), func() error {
		var err error
		cSession, err = cluster.CreateSession()
		if err != nil {
			log.WithError(err).
				WithField("key_space", keySpace).
				Warn("Fail to create C* session")
		}
		return err
	}, backoff.NewExponentialRetryPolicy(attempts, interval, 10*interval), nil)
	if err != nil {
		log.WithError(err).Error("Fail to create C* session")
		return nil, errs.Connectionf("create session for keyspace %s: %v", keySpace, err)
	}
	return cSession, nil
}

// newCluster returns a clusterConfig object
func newCluster(storeConfig *CassandraConn) *gocql.ClusterConfig {
	config := storeConfig
	cluster := gocql.NewCluster(config.ContactPoints...)

	consistency := config.Consistency
	if consistency == "" {
		consistency = defaultConsistency
	}
	cluster.Consistency = gocql.ParseConsistency(consistency)

	cluster.Timeout = config.Timeout
	if cluster.Timeout == 0 {
		cluster.Timeout = defaultTimeout
	}

	cluster.NumConns = config.ConnectionsPerHost
	if cluster.NumConns == 0 {
		cluster.NumConns = defaultConnectionsPerHost
	}

	cluster.ProtoVersion = config.ProtoVersion
	if cluster.ProtoVersion == 0 {
		cluster.ProtoVersion = defaultProtoVersion
	}

	cluster.SocketKeepalive = config.SocketKeepalive
	if cluster.SocketKeepalive == 0 {
		cluster.SocketKeepalive = defaultSocketKeepAlive
	}

	cluster.PageSize = config.PageSize
	if cluster.PageSize == 0 {
		cluster.PageSize = defaultPageSize
	}

	cluster.Port = config.Port
	if cluster.Port == 0 {
		cluster.Port = defaultPort
	}

	dc := config.DataCenter
	if dc != "" {
		cluster.HostFilter = gocql.DataCentreHostFilter(dc)
	}

	if config.HostPolicy == "TokenAwareHostPolicy" {
		if dc != "" {
			cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.DCAwareRoundRobinPolicy(dc))
		} else {
			cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
		}
	} else {
		cluster.PoolConfig.HostSelectionPolicy = gocql.RoundRobinHostPolicy()
	}

	if len(config.CQLVersion) > 0 {
		cluster.CQLVersion = config.CQLVersion
	}

	// gocql only applies the retry policy to idempotent statements, so
	// counter increments are never replayed.
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: config.RetryCount}

	return cluster
}
