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
	"time"

	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// ColumnFamilyOptions describe a column family of the canonical layout.
type ColumnFamilyOptions struct {
	// Counter makes the value column a counter instead of text.
	Counter bool
	// ClusteringOrder is qb.ASC (default) or qb.DESC.
	ClusteringOrder string
	// KeyType and ColumnType default to blob and text.
	KeyType    keycodec.FieldType
	ColumnType keycodec.FieldType
	// IfNotExists makes creating an existing column family a no-op.
	IfNotExists bool
}

// CreateColumnFamily creates a column family with a blob key, one
// clustering column and a text or counter value, then loads its layout.
func (a *Adapter) CreateColumnFamily(
	ctx context.Context,
	name string,
	cfo ColumnFamilyOptions,
	opts Options) (err error) {
	start := time.Now()
	defer func() {
		a.emit(ctx, start, Event{Operation: OpCreateColumnFamily, ColumnFamily: name, Err: err})
	}()

	keyType, columnType, valueType := cfo.KeyType, cfo.ColumnType, keycodec.Text
	if keyType == "" {
		keyType = keycodec.Blob
	}
	if columnType == "" {
		columnType = keycodec.Text
	}
	if cfo.Counter {
		valueType = keycodec.Counter
	}
	stmt := qb.CreateTable{
		Name: name,
		Columns: []qb.Column{
			{Name: KeyField, Type: string(keyType)},
			{Name: NameField, Type: string(columnType)},
			{Name: ValueField, Type: string(valueType)},
		},
		PartitionKeys:   []string{KeyField},
		ClusteringKeys:  []string{NameField},
		ClusteringOrder: cfo.ClusteringOrder,
		IfNotExists:     cfo.IfNotExists,
	}
	eo, err := a.writeOptions(name, OpCreateColumnFamily, opts)
	if err != nil {
		return err
	}
	if _, err = a.store.Execute(ctx, stmt, eo); err != nil {
		return err
	}
	return a.schema.reload(ctx, name)
}

// DropColumnFamily drops a column family if it exists.
func (a *Adapter) DropColumnFamily(ctx context.Context, name string, opts Options) (err error) {
	start := time.Now()
	defer func() {
		a.emit(ctx, start, Event{Operation: OpDropColumnFamily, ColumnFamily: name, Err: err})
	}()

	eo, err := a.writeOptions(name, OpDropColumnFamily, opts)
	if err != nil {
		return err
	}
	if _, err = a.store.Execute(ctx, qb.DropTable(name), eo); err != nil {
		return err
	}
	a.schema.evict(name)
	return nil
}
