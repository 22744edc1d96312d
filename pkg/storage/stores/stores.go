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

package stores

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	storageconfig "github.com/sessionm/cassandra-object/pkg/storage/config"
	"github.com/sessionm/cassandra-object/pkg/storage/objects"
)

// CreateStore applies pending keyspace migrations when the config asks for
// it and opens the object store of the keyspace.
func CreateStore(cfg *storageconfig.Config, rootScope tally.Scope) (*objects.Store, error) {
	log.WithFields(log.Fields{
		"contact_points": cfg.Cassandra.CassandraConn.ContactPoints,
		"key_space":      cfg.Cassandra.StoreName,
		"auto_migrate":   cfg.AutoMigrate,
	}).Info("Cassandra Config")
	if cfg.AutoMigrate {
		if errs := cfg.Cassandra.AutoMigrate(); len(errs) > 0 {
			return nil, errors.Errorf("could not migrate keyspace: %v", errs)
		}
	}
	store, err := objects.NewCassandraStore(&cfg.Cassandra, rootScope)
	if err != nil {
		return nil, errors.Wrap(err, "could not create cassandra store")
	}
	return store, nil
}

// MustCreateStore is CreateStore exiting the process on failure.
func MustCreateStore(cfg *storageconfig.Config, rootScope tally.Scope) *objects.Store {
	store, err := CreateStore(cfg, rootScope)
	if err != nil {
		log.WithError(err).Fatal("Could not create object store")
	}
	return store
}
