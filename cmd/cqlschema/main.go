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
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/sessionm/cassandra-object/pkg/common/logging"
	storageconfig "github.com/sessionm/cassandra-object/pkg/storage/config"
)

var (
	version string
	app     = kingpin.New("cqlschema", "Tool to manage the keyspace of a cassandra object store")

	debug = app.Flag(
		"debug", "enable debug mode (print every statement)").
		Short('d').
		Default("false").
		Envar("ENABLE_DEBUG_LOGGING").
		Bool()

	configFiles = app.Flag(
		"config",
		"YAML config files (can be provided multiple times to merge configs)").
		Short('c').
		Required().
		ExistingFiles()

	cassandraHosts = app.Flag(
		"cassandra-hosts", "Cassandra hosts").
		Envar("CASSANDRA_HOSTS").
		Strings()

	cassandraStore = app.Flag(
		"cassandra-store", "Cassandra keyspace name").
		Default("").
		Envar("CASSANDRA_STORE").
		String()

	cassandraPort = app.Flag(
		"cassandra-port", "Cassandra port to connect").
		Default("0").
		Envar("CASSANDRA_PORT").
		Int()

	upCmd             = app.Command("up", "Apply all keyspace migrations. Will create keyspace if not exists")
	versionCmd        = app.Command("version", "Get the current schema version.")
	createKeyspaceCmd = app.Command("create-keyspace", "Create the keyspace if it does not exist.")

	createCFCmd     = app.Command("create-column-family", "Create a column family of the key/column1/value layout.")
	createCFName    = createCFCmd.Arg("name", "Column family name").Required().String()
	createCFCounter = createCFCmd.Flag("counter", "Store counters instead of text values").Bool()
	createCFDesc    = createCFCmd.Flag("desc", "Order columns descending").Bool()

	dropCFCmd  = app.Command("drop-column-family", "Drop a column family if it exists.")
	dropCFName = dropCFCmd.Arg("name", "Column family name").Required().String()

	truncateCmd  = app.Command("truncate", "Remove every row of a column family.")
	truncateName = truncateCmd.Arg("name", "Column family name").Required().String()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Use stdout here, since the output of cqlschema might get parsed, and
	// we don't want it to be mangled with output of stderr.
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("files", *configFiles).Debug("Loading cqlschema config")

	cfg, err := storageconfig.Load(*configFiles...)
	if err != nil {
		log.WithError(err).Fatal("Cannot parse yaml config")
	}
	log.SetFormatter(newFormatter(cfg.SensitiveColumnFamilies))
	applyOverrides(cfg, *cassandraHosts, *cassandraStore, *cassandraPort)
	log.WithField("key_space", cfg.Cassandra.StoreName).Debug("Loaded cqlschema config")

	r := newRunner(cfg)
	defer r.Close()

	switch cmd {
	case upCmd.FullCommand():
		err = r.up()
	case versionCmd.FullCommand():
		err = r.version()
	case createKeyspaceCmd.FullCommand():
		err = r.createKeyspace()
	case createCFCmd.FullCommand():
		err = r.createColumnFamily(*createCFName, *createCFCounter, *createCFDesc)
	case dropCFCmd.FullCommand():
		err = r.dropColumnFamily(*dropCFName)
	case truncateCmd.FullCommand():
		err = r.truncate(*truncateName)
	}
	if err != nil {
		r.Close()
		log.WithError(err).WithField("command", cmd).Fatal("cqlschema failed")
	}
}

func newFormatter(sensitive []string) log.Formatter {
	return &logging.LogFieldFormatter{
		Formatter: &logging.SecretsFormatter{
			JSONFormatter:           &log.JSONFormatter{},
			SensitiveColumnFamilies: sensitive,
		},
		Fields: log.Fields{
			logging.AppLogField: app.Name,
		},
	}
}

// applyOverrides lets flags and environment variables replace the
// connection settings of the config files.
func applyOverrides(cfg *storageconfig.Config, hosts []string, store string, port int) {
	if len(hosts) > 0 {
		cfg.Cassandra.CassandraConn.ContactPoints = hosts
	}
	if store != "" {
		cfg.Cassandra.StoreName = store
	}
	if port != 0 {
		cfg.Cassandra.CassandraConn.Port = port
	}
}
