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
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
)

const writeTimeField = "writetime(" + ValueField + ")"

// Cell is one column of a row.
type Cell struct {
	// Name is the rendered column name: the text of a single text column, the
	// string form of a uuid, or the packed composite.
	Name string
	// Parts are the typed column field values.
	Parts keycodec.Composite
	// Value is a string for text columns, an int64 for counters and a
	// []byte for blobs.
	Value interface{}
	// WriteTime is the write time of the cell in microseconds, when read.
	WriteTime int64
}

// Row is the cells of one key in clustering order.
type Row struct {
	Key      string
	KeyParts keycodec.Composite
	Cells    []Cell

	index map[string]int
}

func newRow(key string, parts keycodec.Composite) *Row {
	return &Row{Key: key, KeyParts: parts, index: map[string]int{}}
}

func (r *Row) add(c Cell) {
	if i, ok := r.index[c.Name]; ok {
		r.Cells[i] = c
		return
	}
	r.index[c.Name] = len(r.Cells)
	r.Cells = append(r.Cells, c)
}

// Len returns the number of cells.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Cells)
}

// Cell returns the cell called name.
func (r *Row) Cell(name string) (Cell, bool) {
	if r == nil {
		return Cell{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Cell{}, false
	}
	return r.Cells[i], true
}

// Get returns the value of the cell called name.
func (r *Row) Get(name string) (interface{}, bool) {
	c, ok := r.Cell(name)
	return c.Value, ok
}

// Names returns the cell names in order.
func (r *Row) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		names = append(names, c.Name)
	}
	return names
}

// Map returns the row as a map from cell name to value.
func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, r.Len())
	if r == nil {
		return m
	}
	for _, c := range r.Cells {
		m[c.Name] = c.Value
	}
	return m
}

// Slice returns a row holding only the named cells, in the order of names.
func (r *Row) Slice(names ...string) *Row {
	out := newRow(r.Key, r.KeyParts)
	for _, name := range names {
		if c, ok := r.Cell(name); ok {
			out.add(c)
		}
	}
	return out
}

// keyOf extracts and renders the key fields of a result row.
func (cf *ColumnFamily) keyOf(row api.Row) (string, keycodec.Composite, error) {
	parts := make(keycodec.Composite, 0, len(cf.KeyFields))
	for _, f := range cf.KeyFields {
		parts = append(parts, normalizePart(f.Type, row[f.Name]))
	}
	key, err := cf.keyCodec.String(parts)
	return key, parts, err
}

// cellOf builds the cell of a result row.
func (cf *ColumnFamily) cellOf(row api.Row) (Cell, error) {
	parts := make(keycodec.Composite, 0, len(cf.ColumnFields))
	for _, f := range cf.ColumnFields {
		parts = append(parts, normalizePart(f.Type, row[f.Name]))
	}
	c := Cell{Parts: parts, Value: row[ValueField]}
	if len(parts) > 0 {
		name, err := cf.columnCodec.String(parts)
		if err != nil {
			return Cell{}, err
		}
		c.Name = name
	}
	if wt, ok := row[writeTimeField].(int64); ok {
		c.WriteTime = wt
	}
	return c, nil
}

// normalizePart converts driver and caller values to the types the key
// codec decodes, so both render to the same string.
func normalizePart(t keycodec.FieldType, v interface{}) interface{} {
	switch {
	case t.IsUUID():
		if u, ok := keycodec.ToUUID(v); ok {
			return u
		}
	case t == keycodec.Int:
		if n, ok := keycodec.ToInt64(v); ok {
			return int32(n)
		}
	case t == keycodec.Bigint || t == keycodec.Counter:
		if n, ok := keycodec.ToInt64(v); ok {
			return n
		}
	}
	return v
}

// rowOf builds the row of a single key read.
func (cf *ColumnFamily) rowOf(key string, parts keycodec.Composite, rows []api.Row) (*Row, error) {
	r := newRow(key, parts)
	for _, raw := range rows {
		c, err := cf.cellOf(raw)
		if err != nil {
			return nil, err
		}
		r.add(c)
	}
	return r, nil
}

// rowsOf groups result rows by key, preserving the order keys and cells
// were returned in.
func (cf *ColumnFamily) rowsOf(rows []api.Row) (map[string]*Row, []string, error) {
	byKey := map[string]*Row{}
	var order []string
	for _, raw := range rows {
		key, parts, err := cf.keyOf(raw)
		if err != nil {
			return nil, nil, err
		}
		r, ok := byKey[key]
		if !ok {
			r = newRow(key, parts)
			byKey[key] = r
			order = append(order, key)
		}
		c, err := cf.cellOf(raw)
		if err != nil {
			return nil, nil, err
		}
		r.add(c)
	}
	return byKey, order, nil
}
