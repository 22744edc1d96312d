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

// Package migrations upgrades stored rows to the attribute layout the code
// currently expects.
//
// Every row carries the schema version it was written at. Reading a row
// written at an older version runs the transform of every version after
// it, in ascending order, before the attributes are decoded. A gap in the
// registered versions is fatal: no transform is guessed and none is
// applied.
package migrations

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// SchemaVersionAttribute is the stored attribute holding the version a row
// was written at.
const SchemaVersionAttribute = "schema_version"

// Transform upgrades raw attributes by one version, in place.
type Transform func(attrs map[string]string) error

// Migration is the transform reaching Version from Version-1.
type Migration struct {
	Version   int
	Transform Transform
}

// Set holds the migrations of one entity type. The current version is the
// highest registered one. Sets are safe for concurrent use.
type Set struct {
	sync.RWMutex
	current    int
	migrations map[int]Transform
}

// Result is an upgraded row.
type Result struct {
	// Attributes are the upgraded attributes without the version tag.
	Attributes map[string]string
	// StoredVersion is the version the row was written at.
	StoredVersion int
	// Applied is the number of transforms run.
	Applied int
	// Changed names the attributes introduced or altered by the upgrade,
	// sorted.
	Changed []string
}

// Migrated reports whether any transform ran.
func (r *Result) Migrated() bool {
	return r.Applied > 0
}

// NewSet returns a set holding migrations. Every invalid migration is
// reported, not only the first.
func NewSet(migrations ...Migration) (*Set, error) {
	s := &Set{migrations: make(map[int]Transform)}
	var result *multierror.Error
	for _, m := range migrations {
		if err := s.Register(m.Version, m.Transform); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errs.NewConfigurationError("invalid migrations: %v", err)
	}
	return s, nil
}

// Register adds the transform reaching version. Versions start at 1 and
// are registered once.
func (s *Set) Register(version int, t Transform) error {
	if version < 1 {
		return errs.NewConfigurationError("migration version %d must be positive", version)
	}
	if t == nil {
		return errs.NewConfigurationError("migration %d has no transform", version)
	}

	s.Lock()
	defer s.Unlock()
	if s.migrations == nil {
		s.migrations = make(map[int]Transform)
	}
	if _, ok := s.migrations[version]; ok {
		return errs.NewConfigurationError("migration %d is already registered", version)
	}
	s.migrations[version] = t
	if version > s.current {
		s.current = version
	}
	return nil
}

// CurrentVersion is the version every write is stamped with.
func (s *Set) CurrentVersion() int {
	if s == nil {
		return 0
	}
	s.RLock()
	defer s.RUnlock()
	return s.current
}

// Versions returns the registered versions in ascending order.
func (s *Set) Versions() []int {
	if s == nil {
		return nil
	}
	s.RLock()
	defer s.RUnlock()
	return s.versionsLocked()
}

func (s *Set) versionsLocked() []int {
	versions := make([]int, 0, len(s.migrations))
	for v := range s.migrations {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions
}

// StoredVersion returns the version tag of raw attributes, 0 when absent.
func StoredVersion(raw map[string]string) (int, error) {
	tag, ok := raw[SchemaVersionAttribute]
	if !ok || tag == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(tag)
	if err != nil || v < 0 {
		return 0, errs.NewDecodeError("invalid %s %q", SchemaVersionAttribute, tag)
	}
	return v, nil
}

// Upgrade returns raw brought to the current version. raw itself is never
// modified. A version gap fails with a MigrationNotFoundError before any
// transform runs. Rows written by a newer version are returned as stored.
func (s *Set) Upgrade(raw map[string]string) (*Result, error) {
	stored, err := StoredVersion(raw)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]string, len(raw))
	for k, v := range raw {
		if k != SchemaVersionAttribute {
			attrs[k] = v
		}
	}
	result := &Result{Attributes: attrs, StoredVersion: stored}

	transforms, current, err := s.pending(stored)
	if err != nil {
		return nil, err
	}

	if stored > current {
		log.WithFields(log.Fields{
			"stored_version":  stored,
			"current_version": current,
		}).Warn("row written by a newer schema version")
		return result, nil
	}
	if len(transforms) == 0 {
		return result, nil
	}

	before := make(map[string]string, len(attrs))
	for k, v := range attrs {
		before[k] = v
	}
	for i, t := range transforms {
		if err := t(attrs); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("migration %d", stored+i+1))
		}
	}
	result.Applied = len(transforms)
	// a transform may have written the version tag
	delete(attrs, SchemaVersionAttribute)

	for k, v := range attrs {
		if old, ok := before[k]; !ok || old != v {
			result.Changed = append(result.Changed, k)
		}
	}
	sort.Strings(result.Changed)
	return result, nil
}

// pending returns the transforms upgrading a row stored at version, in
// order, and the current version.
func (s *Set) pending(stored int) ([]Transform, int, error) {
	if s == nil {
		return nil, 0, nil
	}
	s.RLock()
	defer s.RUnlock()

	var transforms []Transform
	for v := stored + 1; v <= s.current; v++ {
		t, ok := s.migrations[v]
		if !ok {
			return nil, s.current, &errs.MigrationNotFoundError{
				From:      stored,
				Missing:   v,
				Available: s.versionsLocked(),
			}
		}
		transforms = append(transforms, t)
	}
	return transforms, s.current, nil
}
