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

package config

import (
	log "github.com/sirupsen/logrus"

	commonconfig "github.com/sessionm/cassandra-object/pkg/common/config"
	"github.com/sessionm/cassandra-object/pkg/common/metrics"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra"
)

// Config contains the storage configuration of a process.
type Config struct {
	Cassandra cassandra.Config `yaml:"cassandra"`
	// AutoMigrate applies pending keyspace migrations at startup.
	AutoMigrate bool `yaml:"auto_migrate"`
	// SensitiveColumnFamilies have their statements redacted from logs.
	SensitiveColumnFamilies []string `yaml:"sensitive_column_families"`
	// Metrics configures the root scope of the storage tools.
	Metrics metrics.Config `yaml:"metrics"`
}

// Load parses and validates the given files, later files overriding
// earlier ones.
func Load(files ...string) (*Config, error) {
	var c Config
	if err := commonconfig.Parse(&c, files...); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"key_space":      c.Cassandra.StoreName,
		"contact_points": c.Cassandra.CassandraConn.ContactPoints,
		"auto_migrate":   c.AutoMigrate,
	}).Info("storage config loaded")
	return &c, nil
}
