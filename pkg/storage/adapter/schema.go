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

package adapter

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/sessionm/cassandra-object/pkg/common/logging"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// Physical column names of the canonical layout.
const (
	KeyField   = "key"
	NameField  = "column1"
	ValueField = "value"
)

// Field is one typed column of a column family layout.
type Field struct {
	Name string
	Type keycodec.FieldType
}

// ColumnFamily is the cached layout of a column family.
type ColumnFamily struct {
	Name         string
	KeyFields    []Field
	ColumnFields []Field
	ValueType    keycodec.FieldType
	// Reversed is set when the clustering order is descending.
	Reversed bool

	keyCodec    *keycodec.Codec
	columnCodec *keycodec.Codec
}

func newColumnFamily(
	name string,
	columns []api.ColumnMetadata,
	clusteringOrder string) (*ColumnFamily, error) {
	cf := &ColumnFamily{
		Name:     name,
		Reversed: clusteringOrder == qb.DESC,
	}
	for _, c := range columns {
		f := Field{Name: c.Name, Type: keycodec.ParseFieldType(c.Type)}
		switch c.Kind {
		case api.PartitionKey:
			cf.KeyFields = append(cf.KeyFields, f)
		case api.Clustering:
			cf.ColumnFields = append(cf.ColumnFields, f)
		case api.Regular:
			if c.Name == ValueField {
				cf.ValueType = f.Type
			}
		}
	}
	if len(cf.KeyFields) == 0 {
		return nil, errs.NewConfigurationError("column family %s has no key fields", name)
	}
	if cf.ValueType == "" {
		return nil, errs.NewConfigurationError("column family %s has no %s column", name, ValueField)
	}
	cf.keyCodec = keycodec.New(fieldTypes(cf.KeyFields)...)
	cf.columnCodec = keycodec.New(fieldTypes(cf.ColumnFields)...)
	return cf, nil
}

// IsCounter reports whether the value column is a counter.
func (cf *ColumnFamily) IsCounter() bool {
	return cf.ValueType == keycodec.Counter
}

// KeyCodec returns the codec of the key fields.
func (cf *ColumnFamily) KeyCodec() *keycodec.Codec {
	return cf.keyCodec
}

// ColumnCodec returns the codec of the column fields.
func (cf *ColumnFamily) ColumnCodec() *keycodec.Codec {
	return cf.columnCodec
}

func fieldTypes(fields []Field) []keycodec.FieldType {
	types := make([]keycodec.FieldType, 0, len(fields))
	for _, f := range fields {
		types = append(types, f.Type)
	}
	return types
}

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

// schemaCache holds column family layouts. Readers load an immutable map;
// writers copy it, change the copy and swap it in.
type schemaCache struct {
	sync.Mutex // serializes writers
	layouts    atomic.Value
	introspect api.SchemaIntrospector
}

type layouts map[string]*ColumnFamily

func newSchemaCache(introspect api.SchemaIntrospector) *schemaCache {
	c := &schemaCache{introspect: introspect}
	c.layouts.Store(layouts{})
	return c
}

func (c *schemaCache) load() layouts {
	return c.layouts.Load().(layouts)
}

// get returns the layout of name, reading it from the store on a miss.
func (c *schemaCache) get(ctx context.Context, name string) (*ColumnFamily, error) {
	if cf, ok := c.load()[name]; ok {
		return cf, nil
	}
	cf, err := c.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	c.Lock()
	defer c.Unlock()
	next := c.copyLocked()
	next[name] = cf
	c.layouts.Store(next)
	return cf, nil
}

func (c *schemaCache) fetch(ctx context.Context, name string) (*ColumnFamily, error) {
	columns, err := c.introspect.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	order, err := c.introspect.ClusteringOrder(ctx, name)
	if err != nil {
		return nil, err
	}
	cf, err := newColumnFamily(name, columns, order)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		logging.ColumnFamilyLogField: name,
		"key_fields":                 fieldNames(cf.KeyFields),
		"column_fields":              fieldNames(cf.ColumnFields),
		"value_type":                 cf.ValueType,
		"reversed":                   cf.Reversed,
	}).Debug("column family layout loaded")
	return cf, nil
}

// reload drops names from the cache, or every layout when names is empty,
// and reads the named layouts again. The new cache is swapped in whole.
func (c *schemaCache) reload(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		c.Lock()
		c.layouts.Store(layouts{})
		c.Unlock()
		return nil
	}

	fresh := make(layouts, len(names))
	for _, name := range names {
		cf, err := c.fetch(ctx, name)
		if err != nil && !errs.IsColumnFamilyNotFound(err) {
			return err
		}
		fresh[name] = cf
	}

	c.Lock()
	defer c.Unlock()
	next := c.copyLocked()
	for name, cf := range fresh {
		if cf == nil {
			delete(next, name)
			continue
		}
		next[name] = cf
	}
	c.layouts.Store(next)
	return nil
}

func (c *schemaCache) evict(name string) {
	c.Lock()
	defer c.Unlock()
	next := c.copyLocked()
	delete(next, name)
	c.layouts.Store(next)
}

func (c *schemaCache) copyLocked() layouts {
	cur := c.load()
	next := make(layouts, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	return next
}
