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

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/common/metrics"
	"github.com/sessionm/cassandra-object/pkg/storage/adapter"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra"
	storageconfig "github.com/sessionm/cassandra-object/pkg/storage/config"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

const ddlTimeout = time.Minute

// columnFamilyAdmin is the part of the adapter the column family commands
// use.
type columnFamilyAdmin interface {
	CreateColumnFamily(ctx context.Context, name string, cfo adapter.ColumnFamilyOptions, opts adapter.Options) error
	DropColumnFamily(ctx context.Context, name string, opts adapter.Options) error
	Truncate(ctx context.Context, cfName string, opts adapter.Options) error
}

type runner struct {
	cfg    *storageconfig.Config
	scope  tally.Scope
	closer io.Closer
	// connect opens the store on first use.
	connect func() (columnFamilyAdmin, func(), error)
	admin   columnFamilyAdmin
	release func()
}

func newRunner(cfg *storageconfig.Config) *runner {
	scope, closer := metrics.NewRootScope(cfg.Metrics, nil)
	r := &runner{cfg: cfg, scope: scope, closer: closer}
	r.connect = func() (columnFamilyAdmin, func(), error) {
		store, err := cassandra.NewStore(&r.cfg.Cassandra, r.scope)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return r
}

func (r *runner) store() (columnFamilyAdmin, error) {
	if r.admin != nil {
		return r.admin, nil
	}
	admin, release, err := r.connect()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect")
	}
	r.admin, r.release = admin, release
	return admin, nil
}

// Close releases the store and flushes metrics.
func (r *runner) Close() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			log.WithError(err).Warn("failed to close metrics scope")
		}
		r.closer = nil
	}
}

func (r *runner) up() error {
	if err := r.cfg.Cassandra.CreateKeyspace(); err != nil {
		return errors.Wrap(err, "could not create keyspace")
	}
	if errs := r.cfg.Cassandra.AutoMigrate(); len(errs) > 0 {
		return fmt.Errorf("could not migrate keyspace: %v", errs)
	}
	return nil
}

func (r *runner) version() error {
	v, err := cassandra.NewMigrator(&r.cfg.Cassandra).Version()
	if err != nil {
		return errors.Wrap(err, "could not get schema version")
	}
	log.WithField("version", v).Info("Keyspace schema version")
	return nil
}

func (r *runner) createKeyspace() error {
	return r.cfg.Cassandra.CreateKeyspace()
}

func (r *runner) createColumnFamily(name string, counter, desc bool) error {
	admin, err := r.store()
	if err != nil {
		return err
	}
	cfo := adapter.ColumnFamilyOptions{Counter: counter, ClusteringOrder: qb.ASC}
	if desc {
		cfo.ClusteringOrder = qb.DESC
	}
	ctx, cancel := context.WithTimeout(context.Background(), ddlTimeout)
	defer cancel()
	if err := admin.CreateColumnFamily(ctx, name, cfo, adapter.Options{}); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"column_family": name,
		"counter":       counter,
		"order":         cfo.ClusteringOrder,
	}).Info("Column family created")
	return nil
}

func (r *runner) dropColumnFamily(name string) error {
	admin, err := r.store()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), ddlTimeout)
	defer cancel()
	if err := admin.DropColumnFamily(ctx, name, adapter.Options{}); err != nil {
		return err
	}
	log.WithField("column_family", name).Info("Column family dropped")
	return nil
}

func (r *runner) truncate(name string) error {
	admin, err := r.store()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), ddlTimeout)
	defer cancel()
	if err := admin.Truncate(ctx, name, adapter.Options{}); err != nil {
		return err
	}
	log.WithField("column_family", name).Info("Column family truncated")
	return nil
}
