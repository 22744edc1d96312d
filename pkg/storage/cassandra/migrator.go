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
	"embed"

	"github.com/golang-migrate/migrate/v4"
	// cassandra database driver for migrate
	_ "github.com/golang-migrate/migrate/v4/database/cassandra"
	// file source driver for migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.cql
var migrationFiles embed.FS

// Migrator applies the keyspace migrations with golang-migrate. Column
// family layouts are plain CQL files named <version>_<title>.up.cql and
// <version>_<title>.down.cql.
type Migrator struct {
	Config *Config
}

// NewMigrator returns a migrator for the keyspace of config.
func NewMigrator(config *Config) *Migrator {
	return &Migrator{Config: config}
}

func (m *Migrator) connString() string {
	return m.Config.MigrateString()
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	if m.Config.Migrations != "" {
		mg, err := migrate.New("file://"+m.Config.Migrations, m.connString())
		return mg, errors.Wrap(err, "failed to create migrate instance")
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create iofs driver")
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, m.connString())
	return mg, errors.Wrap(err, "failed to create migrate instance")
}

func closeMigrate(mg *migrate.Migrate) []error {
	var errs []error
	srcErr, dbErr := mg.Close()
	if srcErr != nil {
		errs = append(errs, srcErr)
	}
	if dbErr != nil {
		errs = append(errs, dbErr)
	}
	return errs
}

// UpSync applies every pending migration. A keyspace left dirty by a
// failed migration is reported and not touched.
func (m *Migrator) UpSync() []error {
	mg, err := m.open()
	if err != nil {
		return []error{err}
	}

	var errs []error
	_, dirty, err := mg.Version()
	switch {
	case err != nil && err != migrate.ErrNilVersion:
		errs = append(errs, errors.Wrap(err, "failed to get current version"))
	case dirty:
		errs = append(errs, errors.New("migration is dirty, please fix it before proceeding"))
	default:
		if err := mg.Up(); err != nil && err != migrate.ErrNoChange {
			errs = append(errs, errors.Wrap(err, "migration failed"))
		}
	}
	return append(errs, closeMigrate(mg)...)
}

// downSync reverts every migration. Only used by tests.
func (m *Migrator) downSync() []error {
	mg, err := m.open()
	if err != nil {
		return []error{err}
	}

	var errs []error
	if err := mg.Down(); err != nil && err != migrate.ErrNoChange {
		errs = append(errs, errors.Wrap(err, "migration down failed"))
	}
	return append(errs, closeMigrate(mg)...)
}

// Version returns the applied migration version, 0 when none is applied.
func (m *Migrator) Version() (uint, error) {
	mg, err := m.open()
	if err != nil {
		return 0, err
	}
	defer func() {
		if errs := closeMigrate(mg); len(errs) > 0 {
			log.WithField("errors", errs).Warn("failed to close migrate instance")
		}
	}()

	v, dirty, err := mg.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, errors.Errorf("migration %d is dirty", v)
	}
	return v, nil
}
