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

package orm

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sessionm/cassandra-object/pkg/storage/adapter"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/migrations"
	"github.com/sessionm/cassandra-object/pkg/storage/objects/base"
	"github.com/sessionm/cassandra-object/pkg/storage/types"
)

// DefaultLimit is the number of records All returns when no limit is given.
const DefaultLimit = 100

// Client persists storage objects through the wide-column adapter.
type Client interface {
	// Save writes the changed attributes of e, stamped with the current
	// schema version. New records without a key get one from the key
	// factory of their table. Inside a batch scope e is marked persisted
	// only once the batch is applied.
	Save(ctx context.Context, e base.Entity) error

	// Find loads the record stored under key into e. A missing record is a
	// NotFound error.
	Find(ctx context.Context, e base.Entity, key string) error

	// FindByID is Find reporting a missing record as false.
	FindByID(ctx context.Context, e base.Entity, key string) (bool, error)

	// FindMany loads the records of keys with one request, in key order.
	// Missing keys are skipped. Every record has the type of e.
	FindMany(ctx context.Context, e base.Entity, keys ...string) ([]base.Entity, error)

	// All loads up to limit records of e's type, ordered by key.
	All(ctx context.Context, e base.Entity, limit int) ([]base.Entity, error)

	// First loads any one record into e, false when there is none.
	First(ctx context.Context, e base.Entity) (bool, error)

	// Reload reads the stored attributes of e again.
	Reload(ctx context.Context, e base.Entity) error

	// Destroy removes the row of e. e cannot be saved afterwards.
	Destroy(ctx context.Context, e base.Entity) error

	// Add increments counter columns of the row stored under key.
	Add(ctx context.Context, e base.Entity, key string, amount int64, columns ...string) error

	// GetCounter reads one counter column, NotFound when it was never
	// incremented.
	GetCounter(ctx context.Context, e base.Entity, key string, column string) (int64, error)

	// DeleteAll truncates the column family of e.
	DeleteAll(ctx context.Context, e base.Entity) error

	// Instantiate sets e from raw stored attributes, upgrading them to the
	// current schema version first.
	Instantiate(e base.Entity, key string, raw map[string]string) error

	// Table returns the table of e's type.
	Table(e base.Entity) (*Table, error)
}

type client struct {
	adapter *adapter.Adapter
	tables  map[reflect.Type]*Table
	now     func() time.Time
}

var _ Client = (*client)(nil)

// NewClient returns a client for objects, using the built in codecs.
func NewClient(a *adapter.Adapter, objects ...base.Entity) (Client, error) {
	return NewClientWithRegistry(a, defaultRegistry, objects...)
}

// NewClientWithRegistry returns a client resolving attribute types in
// registry.
func NewClientWithRegistry(
	a *adapter.Adapter,
	registry *types.Registry,
	objects ...base.Entity) (Client, error) {
	c := &client{
		adapter: a,
		tables:  make(map[reflect.Type]*Table, len(objects)),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range objects {
		t, err := tableFromObject(o, registry)
		if err != nil {
			return nil, err
		}
		c.tables[reflect.TypeOf(o)] = t
	}
	return c, nil
}

func (c *client) Table(e base.Entity) (*Table, error) {
	t, ok := c.tables[reflect.TypeOf(e)]
	if !ok {
		return nil, errs.NewConfigurationError("object type %T is not registered", e)
	}
	return t, nil
}

func (t *Table) readOptions() adapter.Options {
	return adapter.Options{ClassConsistency: t.ReadConsistency}
}

func (t *Table) writeOptions() adapter.Options {
	return adapter.Options{ClassConsistency: t.WriteConsistency, TTL: t.TTL}
}

func (t *Table) parseKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errs.NewConfigurationError("%s: blank key", t.Name)
	}
	return t.Keys.Parse(key)
}

func (c *client) Save(ctx context.Context, e base.Entity) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	o := e.State()
	if o.IsReadOnly() {
		return &errs.ReadOnlyError{Key: o.Key()}
	}
	if o.IsDestroyed() {
		return errs.NewConfigurationError("%s %s was destroyed", t.Name, o.Key())
	}

	created := o.IsNewRecord()
	key := o.Key()
	if created && key == "" {
		if key = t.Keys.Next(); key == "" {
			return errs.NewConfigurationError("%s: new records need a key", t.Name)
		}
	} else if key, err = t.parseKey(key); err != nil {
		return err
	}

	t.stamp(e, c.now(), created)
	encoded, err := t.Encode(e)
	if err != nil {
		return err
	}
	changed := o.Changed(encoded)
	version := t.CurrentVersion()
	if len(changed) == 0 && !created && o.SchemaVersion() >= version {
		return nil
	}

	values := make(map[string]interface{}, len(changed)+1)
	for _, name := range changed {
		if b := encoded[name]; b != nil {
			values[name] = b
		} else {
			values[name] = nil
		}
	}
	values[migrations.SchemaVersionAttribute] = strconv.Itoa(version)

	if err := c.adapter.Insert(ctx, t.Name, key, values, t.writeOptions()); err != nil {
		return err
	}
	o.SetKey(key)
	saved := func() { o.Saved(version, encoded) }
	if !c.adapter.AfterBatch(ctx, saved) {
		saved()
	}
	return nil
}

func (c *client) Find(ctx context.Context, e base.Entity, key string) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	if key, err = t.parseKey(key); err != nil {
		return err
	}
	row, err := c.adapter.GetRow(ctx, t.Name, key, t.readOptions())
	if err != nil {
		return err
	}
	return c.Instantiate(e, key, rawAttributes(row))
}

func (c *client) FindByID(ctx context.Context, e base.Entity, key string) (bool, error) {
	err := c.Find(ctx, e, key)
	if errs.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (c *client) FindMany(
	ctx context.Context,
	e base.Entity,
	keys ...string) ([]base.Entity, error) {
	t, err := c.Table(e)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	parsed := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		k, err := t.parseKey(k)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, k)
		args = append(args, k)
	}

	rows, err := c.adapter.MultiGet(ctx, t.Name, args, t.readOptions())
	if err != nil {
		return nil, err
	}
	return c.instantiateAll(t, parsed, rows)
}

func (c *client) All(ctx context.Context, e base.Entity, limit int) ([]base.Entity, error) {
	t, err := c.Table(e)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := c.adapter.GetRange(ctx, t.Name, limit, t.readOptions())
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return c.instantiateAll(t, keys, rows)
}

func (c *client) instantiateAll(
	t *Table,
	keys []string,
	rows map[string]*adapter.Row) ([]base.Entity, error) {
	out := make([]base.Entity, 0, len(rows))
	for _, k := range keys {
		row := rows[k]
		if row.Len() == 0 {
			continue
		}
		r := t.New()
		if err := c.Instantiate(r, k, rawAttributes(row)); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *client) First(ctx context.Context, e base.Entity) (bool, error) {
	t, err := c.Table(e)
	if err != nil {
		return false, err
	}
	rows, err := c.adapter.GetRange(ctx, t.Name, 1, t.readOptions())
	if err != nil {
		return false, err
	}
	for k, row := range rows {
		if row.Len() > 0 {
			return true, c.Instantiate(e, k, rawAttributes(row))
		}
	}
	return false, nil
}

func (c *client) Reload(ctx context.Context, e base.Entity) error {
	key := e.State().Key()
	if key == "" {
		return errs.NewConfigurationError("cannot reload %T without a key", e)
	}
	return c.Find(ctx, e, key)
}

func (c *client) Destroy(ctx context.Context, e base.Entity) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	o := e.State()
	if o.Key() == "" {
		return errs.NewConfigurationError("cannot destroy %T without a key", e)
	}
	if err := c.adapter.Remove(ctx, t.Name, o.Key(), nil, t.writeOptions()); err != nil {
		return err
	}
	o.Destroyed()
	return nil
}

func (c *client) Add(
	ctx context.Context,
	e base.Entity,
	key string,
	amount int64,
	columns ...string) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	if key, err = t.parseKey(key); err != nil {
		return err
	}
	opts := t.writeOptions()
	opts.TTL = 0
	return c.adapter.Add(ctx, t.Name, key, amount, columns, opts)
}

func (c *client) GetCounter(
	ctx context.Context,
	e base.Entity,
	key string,
	column string) (int64, error) {
	t, err := c.Table(e)
	if err != nil {
		return 0, err
	}
	if key, err = t.parseKey(key); err != nil {
		return 0, err
	}
	return c.adapter.GetCounter(ctx, t.Name, key, column, t.readOptions())
}

func (c *client) DeleteAll(ctx context.Context, e base.Entity) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	return c.adapter.Truncate(ctx, t.Name, t.writeOptions())
}

func (c *client) Instantiate(e base.Entity, key string, raw map[string]string) error {
	t, err := c.Table(e)
	if err != nil {
		return err
	}
	result, err := t.Migrations.Upgrade(raw)
	if err != nil {
		return err
	}

	// attributes no longer declared are dropped only after migrating, so
	// transforms can still read them
	stored := make(map[string][]byte, len(raw))
	for name, v := range raw {
		if _, ok := t.byName[name]; ok {
			stored[name] = []byte(v)
		}
	}
	upgraded := make(map[string][]byte, len(result.Attributes))
	for name, v := range result.Attributes {
		if _, ok := t.byName[name]; ok {
			upgraded[name] = []byte(v)
		}
	}
	if err := t.Decode(e, upgraded); err != nil {
		return err
	}

	version := result.StoredVersion
	if current := t.CurrentVersion(); version < current {
		version = current
	}
	o := e.State()
	o.Loaded(key, version, stored)
	for _, name := range result.Changed {
		if _, ok := t.byName[name]; ok {
			o.MarkChanged(name)
		}
	}
	if result.Migrated() {
		log.WithFields(log.Fields{
			"column_family":  t.Name,
			"key":            key,
			"stored_version": result.StoredVersion,
			"changed":        result.Changed,
		}).Debug("record migrated")
	}
	return nil
}

// rawAttributes returns the stored text of every cell of row.
func rawAttributes(row *adapter.Row) map[string]string {
	raw := make(map[string]string, row.Len())
	for name, v := range row.Map() {
		switch s := v.(type) {
		case nil:
		case string:
			raw[name] = s
		case []byte:
			raw[name] = string(s)
		default:
			raw[name] = fmt.Sprint(s)
		}
	}
	return raw
}
