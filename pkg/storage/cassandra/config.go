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
	"fmt"
	"net/url"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/impl"
)

const defaultMigratePort = 9042

// Config is the keyspace level configuration of a cassandra backed store.
type Config struct {
	CassandraConn *impl.CassandraConn `yaml:"connection" validate:"nonzero"`
	StoreName     string              `yaml:"store_name" validate:"nonzero"`
	// Migrations is a directory of golang-migrate files. Empty uses the
	// migrations compiled into this package.
	Migrations string `yaml:"migrations"`
	// ReadConsistency and WriteConsistency are the process wide defaults,
	// quorum when empty.
	ReadConsistency  string       `yaml:"read_consistency"`
	WriteConsistency string       `yaml:"write_consistency"`
	Replication      *Replication `yaml:"replication"`
}

// Replication is the replication of a keyspace created by CreateKeyspace.
type Replication struct {
	Strategy string     `yaml:"strategy"`
	Replicas []*Replica `yaml:"replicas"`
}

// Replica is one option of the replication map, either the replication
// factor or the replica count of a data center.
type Replica struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

// GenerateTestCassandraConfig generates a test config for local C* client
// This is meant for sharing testing code only, not for production
func GenerateTestCassandraConfig() *Config {
	return &Config{
		CassandraConn: &impl.CassandraConn{
			ContactPoints: []string{"127.0.0.1"},
			Port:          9043,
			CQLVersion:    "3.4.2",
			MaxGoRoutines: 1000,
		},
		StoreName: "cassandra_object_test",
		Replication: &Replication{
			Strategy: "SimpleStrategy",
			Replicas: []*Replica{
				{
					Name:  "replication_factor",
					Value: 1,
				},
			},
		},
	}
}

// AutoMigrate applies the pending keyspace migrations.
func (c *Config) AutoMigrate() []error {
	errs := NewMigrator(c).UpSync()
	if len(errs) > 0 {
		log.WithField("errors", errs).Error("UpSync failed")
		return errs
	}
	log.WithField("key_space", c.StoreName).Info("UpSync complete")
	return nil
}

// MigrateString returns the golang-migrate database URL of the keyspace.
// The code assumes that the keyspace (indicated by StoreName) is already created
func (c *Config) MigrateString() string {
	port := c.CassandraConn.Port
	if port == 0 {
		port = defaultMigratePort
	}

	// disable-host-lookup keeps local runs against docker fast
	q := url.Values{}
	q.Set("protocol", "4")
	q.Set("disable-host-lookup", "true")
	q.Set("x-multi-statement", "true")
	if len(c.CassandraConn.Username) != 0 {
		q.Set("username", c.CassandraConn.Username)
		q.Set("password", c.CassandraConn.Password)
	}

	u := url.URL{
		Scheme:   "cassandra",
		Host:     fmt.Sprintf("%v:%v", strings.TrimSpace(c.CassandraConn.ContactPoints[0]), port),
		Path:     "/" + c.StoreName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// keyspaceCQL renders the CREATE KEYSPACE statement of the store.
func (c *Config) keyspaceCQL() string {
	r := c.Replication
	if r == nil || r.Strategy == "" {
		r = &Replication{
			Strategy: "SimpleStrategy",
			Replicas: []*Replica{{Name: "replication_factor", Value: 1}},
		}
	}
	opts := []string{fmt.Sprintf("'class': '%s'", r.Strategy)}
	replicas := make([]string, 0, len(r.Replicas))
	for _, rep := range r.Replicas {
		replicas = append(replicas, fmt.Sprintf("'%s': %d", rep.Name, rep.Value))
	}
	sort.Strings(replicas)
	opts = append(opts, replicas...)
	return fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {%s}",
		c.StoreName, strings.Join(opts, ", "))
}

// CreateKeyspace creates the keyspace of the store when it does not exist.
func (c *Config) CreateKeyspace() error {
	session, err := impl.CreateStoreSession(c.CassandraConn, "")
	if err != nil {
		return err
	}
	defer session.Close()

	stmt := c.keyspaceCQL()
	log.WithField("db_stmt", stmt).Info("creating keyspace")
	return session.Query(stmt).Exec()
}
