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

/*
Package adapter turns entity level operations into CQL statements against
column families of the canonical layout: one or more key fields, zero or more
clustering (column) fields and a single value column of type text or counter.

Column family layouts are read from the store once and cached. Values are
rendered inline as escaped literals so that any mutation can be queued in a
batch scope carried by the context:

	err := a.Batch(ctx, adapter.Options{}, func(ctx context.Context) error {
		if err := a.Insert(ctx, "Issues", key, cols, adapter.Options{}); err != nil {
			return err
		}
		return a.Remove(ctx, "Issues", other, nil, adapter.Options{})
	})
*/
package adapter

import (
	"context"
	"sort"
	"time"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// DefaultCount is the number of keys or columns a range or slice read
// returns when no count is given.
const DefaultCount = 100

// Options apply to one adapter call.
type Options struct {
	// Consistency overrides every other level for this call.
	Consistency consistency.Level
	// ClassConsistency is the level declared by the entity class.
	ClassConsistency consistency.Level
	// TTL expires inserted cells after this many seconds.
	TTL int64
	// Timestamp sets the write time of inserts and deletes, in microseconds.
	Timestamp int64
	// Timeout bounds the call. Zero uses the store timeout.
	Timeout time.Duration
	// PageSize overrides the store page size for reads.
	PageSize int
}

// Slice selects a range of columns of one row.
type Slice struct {
	// Prefix fixes the leading column fields of a composite column.
	Prefix []interface{}
	// Start and Finish bound the first column field after Prefix. Either may
	// be nil. A time.Time bound on a timeuuid field matches every uuid of
	// that instant. When Reversed is set, Start is the high end.
	Start, Finish interface{}
	// Count limits the number of columns, DefaultCount when zero.
	Count int
	// Reversed returns the highest columns first regardless of the
	// clustering order of the column family.
	Reversed bool
}

// Adapter executes entity operations against a store. It is safe for
// concurrent use.
type Adapter struct {
	store       api.Store
	policy      *consistency.Policy
	schema      *schemaCache
	subscribers []Subscriber
}

// New returns an adapter. policy supplies the configured consistency
// levels; nil means quorum for reads and writes.
func New(store api.Store, policy *consistency.Policy, subscribers ...Subscriber) *Adapter {
	return &Adapter{
		store:       store,
		policy:      policy,
		schema:      newSchemaCache(store),
		subscribers: subscribers,
	}
}

// Store returns the underlying store.
func (a *Adapter) Store() api.Store {
	return a.store
}

// ColumnFamily returns the cached layout of name.
func (a *Adapter) ColumnFamily(ctx context.Context, name string) (*ColumnFamily, error) {
	return a.schema.get(ctx, name)
}

// ReloadSchema discards cached layouts. With names, those layouts are read
// again right away; readers keep the previous cache until the new one is
// swapped in.
func (a *Adapter) ReloadSchema(ctx context.Context, names ...string) error {
	return a.schema.reload(ctx, names...)
}

// Get reads a row. With exactly one column it returns that column's value,
// or nil when absent. Otherwise it returns a *Row holding the requested
// columns, or every column when none are given; a missing row is an empty
// *Row.
func (a *Adapter) Get(
	ctx context.Context,
	cfName string,
	key interface{},
	opts Options,
	columns ...string) (interface{}, error) {
	if len(columns) == 1 {
		v, err := a.GetValue(ctx, cfName, key, columns[0], opts)
		if errs.IsNotFound(err) {
			return nil, nil
		}
		return v, err
	}
	row, err := a.GetRow(ctx, cfName, key, opts, columns...)
	if errs.IsNotFound(err) {
		return newRow("", nil), nil
	}
	return row, err
}

// GetRow reads the columns of a row, all of them when none are named. A
// row without any of the columns is NotFound.
func (a *Adapter) GetRow(
	ctx context.Context,
	cfName string,
	key interface{},
	opts Options,
	columns ...string) (row *Row, err error) {
	start := time.Now()
	e := Event{Operation: OpGet, ColumnFamily: cfName, Columns: columns}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return nil, err
	}
	e.Key = keyStr
	eo, err := a.readOptions(cf.Name, OpGet, opts)
	if err != nil {
		return nil, err
	}

	stmt := qb.Select(cf.cellColumns()...).From(cf.Name).Where(keyPreds...)
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return nil, err
	}
	_, parts, _ := cf.keyOfValue(key)
	row, err = cf.rowOf(keyStr, parts, rows)
	if err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		row = row.Slice(columns...)
	}
	if row.Len() == 0 {
		return nil, errs.NotFoundf("%s row %s not found", cf.Name, keyStr)
	}
	return row, nil
}

// GetValue reads one cell. A missing cell is NotFound.
func (a *Adapter) GetValue(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options) (v interface{}, err error) {
	c, err := a.getCell(ctx, cfName, key, column, opts, OpGet)
	if err != nil {
		return nil, err
	}
	return c.Value, nil
}

// GetCounter reads one counter cell as an int64. A missing cell is
// NotFound.
func (a *Adapter) GetCounter(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options) (int64, error) {
	c, err := a.getCell(ctx, cfName, key, column, opts, OpGetCounter)
	if err != nil {
		return 0, err
	}
	n, ok := keycodec.ToInt64(c.Value)
	if !ok {
		return 0, &errs.TypeMismatchError{Codec: "counter", Value: c.Value}
	}
	return n, nil
}

func (a *Adapter) getCell(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options,
	op string) (c Cell, err error) {
	start := time.Now()
	e := Event{Operation: op, ColumnFamily: cfName, Columns: []string{describeColumn(column)}}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return Cell{}, err
	}
	e.Key = keyStr
	colPreds, err := cf.columnClause(column)
	if err != nil {
		return Cell{}, err
	}
	eo, err := a.readOptions(cf.Name, op, opts)
	if err != nil {
		return Cell{}, err
	}

	stmt := qb.Select(cf.valueColumns()...).From(cf.Name).
		Where(keyPreds...).Where(colPreds...)
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return Cell{}, err
	}
	if len(rows) == 0 {
		return Cell{}, errs.NotFoundf("%s cell %s[%v] not found", cf.Name, keyStr, column)
	}
	c = Cell{Value: rows[0][ValueField]}
	if wt, ok := rows[0][writeTimeField].(int64); ok {
		c.WriteTime = wt
	}
	return c, nil
}

// GetColumns reads the named columns of a row and returns their values in
// the order requested, nil for missing columns.
func (a *Adapter) GetColumns(
	ctx context.Context,
	cfName string,
	key interface{},
	columns []string,
	opts Options) (values []interface{}, err error) {
	start := time.Now()
	e := Event{Operation: OpGetColumns, ColumnFamily: cfName, Columns: columns}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	if len(columns) == 0 {
		return nil, nil
	}
	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return nil, err
	}
	e.Key = keyStr
	eo, err := a.readOptions(cf.Name, OpGetColumns, opts)
	if err != nil {
		return nil, err
	}

	stmt := qb.Select(cf.cellColumns()...).From(cf.Name).Where(keyPreds...)
	if len(cf.ColumnFields) == 1 {
		f := cf.ColumnFields[0]
		names := make([]qb.Sqlizer, 0, len(columns))
		for _, c := range columns {
			lit, err := Escape(c, f.Type)
			if err != nil {
				return nil, err
			}
			names = append(names, lit)
		}
		stmt = stmt.Where(qb.In(f.Name, names...))
	}
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return nil, err
	}
	row, err := cf.rowOf(keyStr, nil, rows)
	if err != nil {
		return nil, err
	}
	values = make([]interface{}, len(columns))
	for i, c := range columns {
		values[i], _ = row.Get(c)
	}
	return values, nil
}

// MultiGet reads several rows with one statement. Keys without a row are
// absent from the result, which is keyed by the rendered key.
func (a *Adapter) MultiGet(
	ctx context.Context,
	cfName string,
	keys []interface{},
	opts Options) (result map[string]*Row, err error) {
	start := time.Now()
	e := Event{Operation: OpMultiGet, ColumnFamily: cfName, Keys: len(keys)}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	if len(keys) == 0 {
		return map[string]*Row{}, nil
	}
	cf, err := a.schema.get(ctx, cfName)
	if err != nil {
		return nil, err
	}
	preds, wanted, err := cf.keysClause(keys)
	if err != nil {
		return nil, err
	}
	e.Key = joinKeys(wanted)
	eo, err := a.readOptions(cf.Name, OpMultiGet, opts)
	if err != nil {
		return nil, err
	}

	stmt := qb.Select(cf.rowColumns()...).From(cf.Name).Where(preds...)
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return nil, err
	}
	byKey, _, err := cf.rowsOf(rows)
	if err != nil {
		return nil, err
	}
	// IN on several key fields selects their cross product.
	for k := range byKey {
		if _, ok := wanted[k]; !ok {
			delete(byKey, k)
		}
	}
	return byKey, nil
}

// MultiGetColumns reads the named columns of several rows. Each value list
// follows the order of columns, nil for missing columns.
func (a *Adapter) MultiGetColumns(
	ctx context.Context,
	cfName string,
	keys []interface{},
	columns []string,
	opts Options) (map[string][]interface{}, error) {
	rows, err := a.MultiGet(ctx, cfName, keys, opts)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]interface{}, len(rows))
	for k, row := range rows {
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			values[i], _ = row.Get(c)
		}
		result[k] = values
	}
	return result, nil
}

// Exists reports whether the row has any column.
func (a *Adapter) Exists(
	ctx context.Context,
	cfName string,
	key interface{},
	opts Options) (found bool, err error) {
	start := time.Now()
	e := Event{Operation: OpExists, ColumnFamily: cfName}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return false, err
	}
	e.Key = keyStr
	eo, err := a.readOptions(cf.Name, OpExists, opts)
	if err != nil {
		return false, err
	}
	stmt := qb.Select(fieldNames(cf.KeyFields)...).From(cf.Name).Where(keyPreds...).Limit(1)
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Insert writes the columns of a row in one atomic batch statement. Inside
// a batch scope the inserts are queued instead.
func (a *Adapter) Insert(
	ctx context.Context,
	cfName string,
	key interface{},
	values map[string]interface{},
	opts Options) (err error) {
	start := time.Now()
	e := Event{Operation: OpInsert, ColumnFamily: cfName, Columns: sortedNames(values)}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	stmts, eo, keyStr, err := a.insertStatements(ctx, cfName, key, values, opts)
	e.Key = keyStr
	if err != nil || len(stmts) == 0 {
		return err
	}
	return a.dispatch(ctx, stmts, true, eo)
}

// InsertAsync is Insert without waiting for the store.
func (a *Adapter) InsertAsync(
	ctx context.Context,
	cfName string,
	key interface{},
	values map[string]interface{},
	opts Options) api.Future {
	start := time.Now()
	stmts, eo, keyStr, err := a.insertStatements(ctx, cfName, key, values, opts)
	a.emit(ctx, start, Event{
		Operation: OpInsert, ColumnFamily: cfName, Key: keyStr,
		Columns: sortedNames(values), Async: true, Err: err,
	})
	if err != nil || len(stmts) == 0 {
		return api.Resolved(nil, err)
	}
	return a.dispatchAsync(ctx, stmts, true, eo)
}

func (a *Adapter) insertStatements(
	ctx context.Context,
	cfName string,
	key interface{},
	values map[string]interface{},
	opts Options) ([]qb.Statement, api.ExecOptions, string, error) {
	cf, err := a.schema.get(ctx, cfName)
	if err != nil {
		return nil, api.ExecOptions{}, "", err
	}
	if cf.IsCounter() {
		return nil, api.ExecOptions{}, "", errs.NewConfigurationError(
			"%s is a counter column family, use Add", cf.Name)
	}
	keyLits, keyStr, err := cf.keyLiterals(key)
	if err != nil {
		return nil, api.ExecOptions{}, keyStr, err
	}
	eo, err := a.writeOptions(cf.Name, OpInsert, opts)
	if err != nil {
		return nil, api.ExecOptions{}, keyStr, err
	}
	eo.Idempotent = true

	columns := append(fieldNames(cf.KeyFields), fieldNames(cf.ColumnFields)...)
	columns = append(columns, ValueField)
	stmts := make([]qb.Statement, 0, len(values))
	for _, name := range sortedNames(values) {
		colLits, err := cf.columnLiterals(name)
		if err != nil {
			return nil, eo, keyStr, err
		}
		value, err := Escape(values[name], cf.ValueType)
		if err != nil {
			return nil, eo, keyStr, err
		}
		lits := append(append(append([]qb.Sqlizer{}, keyLits...), colLits...), value)
		stmts = append(stmts, qb.Insert(cf.Name).
			Columns(columns...).
			Values(lits...).
			TTL(opts.TTL).
			Timestamp(opts.Timestamp))
	}
	return stmts, eo, keyStr, nil
}

// Add increments counter columns by amount, one statement per column.
// Counter updates are never batched or retried.
func (a *Adapter) Add(
	ctx context.Context,
	cfName string,
	key interface{},
	amount int64,
	columns []string,
	opts Options) error {
	amounts := make(map[string]int64, len(columns))
	for _, c := range columns {
		amounts[c] = amount
	}
	return a.AddMultiple(ctx, cfName, key, amounts, opts)
}

// AddMultiple increments each counter column by its own amount.
func (a *Adapter) AddMultiple(
	ctx context.Context,
	cfName string,
	key interface{},
	amounts map[string]int64,
	opts Options) (err error) {
	names := make([]string, 0, len(amounts))
	for n := range amounts {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		start := time.Now()
		stmt, eo, keyStr, err := a.addStatement(ctx, cfName, key, name, amounts[name], opts)
		if err == nil {
			_, err = a.store.Execute(ctx, stmt, eo)
		}
		a.emit(ctx, start, Event{
			Operation: OpAdd, ColumnFamily: cfName, Key: keyStr,
			Columns: []string{name}, Amount: amounts[name], Err: err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// AddAsync increments one counter column without waiting for the store.
func (a *Adapter) AddAsync(
	ctx context.Context,
	cfName string,
	key interface{},
	amount int64,
	column string,
	opts Options) api.Future {
	start := time.Now()
	stmt, eo, keyStr, err := a.addStatement(ctx, cfName, key, column, amount, opts)
	a.emit(ctx, start, Event{
		Operation: OpAdd, ColumnFamily: cfName, Key: keyStr,
		Columns: []string{column}, Amount: amount, Async: true, Err: err,
	})
	if err != nil {
		return api.Resolved(nil, err)
	}
	return a.store.ExecuteAsync(ctx, stmt, eo)
}

func (a *Adapter) addStatement(
	ctx context.Context,
	cfName string,
	key interface{},
	column string,
	amount int64,
	opts Options) (qb.Statement, api.ExecOptions, string, error) {
	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return nil, api.ExecOptions{}, keyStr, err
	}
	if !cf.IsCounter() {
		return nil, api.ExecOptions{}, keyStr, errs.NewConfigurationError(
			"%s is not a counter column family", cf.Name)
	}
	colPreds, err := cf.columnClause(column)
	if err != nil {
		return nil, api.ExecOptions{}, keyStr, err
	}
	eo, err := a.writeOptions(cf.Name, OpAdd, opts)
	if err != nil {
		return nil, api.ExecOptions{}, keyStr, err
	}
	stmt := qb.Update(cf.Name).
		Increment(ValueField, amount).
		Where(keyPreds...).
		Where(colPreds...)
	return stmt, eo, keyStr, nil
}

// Remove deletes a row, or one column of it when column is not nil. Inside
// a batch scope the delete is queued, except on counter column families.
func (a *Adapter) Remove(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options) (err error) {
	start := time.Now()
	e := Event{Operation: OpRemove, ColumnFamily: cfName}
	if column != nil {
		e.Columns = []string{describeColumn(column)}
	}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	cf, stmt, eo, keyStr, err := a.removeStatement(ctx, cfName, key, column, opts)
	e.Key = keyStr
	if err != nil {
		return err
	}
	if cf.IsCounter() {
		_, err = a.store.Execute(ctx, stmt, eo)
		return err
	}
	return a.dispatch(ctx, []qb.Statement{stmt}, false, eo)
}

// RemoveAsync is Remove without waiting for the store.
func (a *Adapter) RemoveAsync(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options) api.Future {
	start := time.Now()
	cf, stmt, eo, keyStr, err := a.removeStatement(ctx, cfName, key, column, opts)
	a.emit(ctx, start, Event{
		Operation: OpRemove, ColumnFamily: cfName, Key: keyStr, Async: true, Err: err,
	})
	if err != nil {
		return api.Resolved(nil, err)
	}
	if cf.IsCounter() {
		return a.store.ExecuteAsync(ctx, stmt, eo)
	}
	return a.dispatchAsync(ctx, []qb.Statement{stmt}, false, eo)
}

func (a *Adapter) removeStatement(
	ctx context.Context,
	cfName string,
	key interface{},
	column interface{},
	opts Options) (*ColumnFamily, qb.Statement, api.ExecOptions, string, error) {
	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return nil, nil, api.ExecOptions{}, keyStr, err
	}
	eo, err := a.writeOptions(cf.Name, OpRemove, opts)
	if err != nil {
		return nil, nil, api.ExecOptions{}, keyStr, err
	}
	eo.Idempotent = true
	stmt := qb.Delete(cf.Name).Where(keyPreds...).Timestamp(opts.Timestamp)
	if column != nil {
		colPreds, err := cf.columnClause(column)
		if err != nil {
			return nil, nil, eo, keyStr, err
		}
		stmt = stmt.Where(colPreds...)
	}
	return cf, stmt, eo, keyStr, nil
}

// GetRangeKeys returns up to count distinct keys, DefaultCount when count
// is zero. Single field keys are returned as their value, composite keys as
// keycodec.Composite.
func (a *Adapter) GetRangeKeys(
	ctx context.Context,
	cfName string,
	count int,
	opts Options) ([]interface{}, error) {
	cf, err := a.schema.get(ctx, cfName)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultCount
	}
	eo, err := a.readOptions(cf.Name, OpGetRange, opts)
	if err != nil {
		return nil, err
	}
	stmt := qb.Select(fieldNames(cf.KeyFields)...).Distinct().From(cf.Name).Limit(count)
	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return nil, err
	}
	keys := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		_, parts, err := cf.keyOf(row)
		if err != nil {
			return nil, err
		}
		if len(parts) == 1 {
			keys = append(keys, parts[0])
			continue
		}
		keys = append(keys, parts)
	}
	return keys, nil
}

// GetRange reads up to count rows, DefaultCount when count is zero.
func (a *Adapter) GetRange(
	ctx context.Context,
	cfName string,
	count int,
	opts Options) (result map[string]*Row, err error) {
	start := time.Now()
	e := Event{Operation: OpGetRange, ColumnFamily: cfName}
	defer func() {
		e.Err = err
		e.Keys = len(result)
		a.emit(ctx, start, e)
	}()

	keys, err := a.GetRangeKeys(ctx, cfName, count, opts)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return map[string]*Row{}, nil
	}
	return a.MultiGet(ctx, cfName, keys, opts)
}

// GetSlice reads a range of columns of one row.
func (a *Adapter) GetSlice(
	ctx context.Context,
	cfName string,
	key interface{},
	slice Slice,
	opts Options) (row *Row, err error) {
	start := time.Now()
	e := Event{Operation: OpGetSlice, ColumnFamily: cfName, Start: slice.Start, Finish: slice.Finish}
	defer func() {
		e.Err = err
		a.emit(ctx, start, e)
	}()

	cf, keyPreds, keyStr, err := a.keyed(ctx, cfName, key)
	if err != nil {
		return nil, err
	}
	e.Key = keyStr
	preds, err := cf.sliceClause(slice)
	if err != nil {
		return nil, err
	}
	eo, err := a.readOptions(cf.Name, OpGetSlice, opts)
	if err != nil {
		return nil, err
	}

	count := slice.Count
	if count <= 0 {
		count = DefaultCount
	}
	stmt := qb.Select(cf.cellColumns()...).From(cf.Name).
		Where(keyPreds...).Where(preds...).Limit(count)
	if slice.Reversed {
		direction := qb.DESC
		if cf.Reversed {
			direction = qb.ASC
		}
		for _, f := range cf.ColumnFields {
			stmt = stmt.OrderBy(f.Name, direction)
		}
	}

	rows, err := a.store.Execute(ctx, stmt, eo)
	if err != nil {
		return nil, err
	}
	_, parts, _ := cf.keyOfValue(key)
	return cf.rowOf(keyStr, parts, rows)
}

// Truncate removes every row of the column family.
func (a *Adapter) Truncate(ctx context.Context, cfName string, opts Options) (err error) {
	start := time.Now()
	defer func() {
		a.emit(ctx, start, Event{Operation: OpTruncate, ColumnFamily: cfName, Err: err})
	}()
	eo, err := a.writeOptions(cfName, OpTruncate, opts)
	if err != nil {
		return err
	}
	_, err = a.store.Execute(ctx, qb.Truncate(cfName), eo)
	return err
}

func (a *Adapter) readOptions(cf, op string, opts Options) (api.ExecOptions, error) {
	level, err := a.policy.ResolveRead(opts.Consistency, opts.ClassConsistency)
	if err != nil {
		return api.ExecOptions{}, err
	}
	return api.ExecOptions{
		Consistency:  level,
		Timeout:      opts.Timeout,
		PageSize:     opts.PageSize,
		Idempotent:   true,
		ColumnFamily: cf,
		Operation:    op,
	}, nil
}

func (a *Adapter) writeOptions(cf, op string, opts Options) (api.ExecOptions, error) {
	level, err := a.policy.ResolveWrite(opts.Consistency, opts.ClassConsistency)
	if err != nil {
		return api.ExecOptions{}, err
	}
	return api.ExecOptions{
		Consistency:  level,
		Timeout:      opts.Timeout,
		ColumnFamily: cf,
		Operation:    op,
	}, nil
}

// keyed loads the layout of cfName and builds the key clause of key.
func (a *Adapter) keyed(
	ctx context.Context,
	cfName string,
	key interface{}) (*ColumnFamily, []qb.Sqlizer, string, error) {
	cf, err := a.schema.get(ctx, cfName)
	if err != nil {
		return nil, nil, "", err
	}
	preds, keyStr, err := cf.keyClause(key)
	if err != nil {
		return nil, nil, keyStr, err
	}
	return cf, preds, keyStr, nil
}

func sortedNames(values map[string]interface{}) []string {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
