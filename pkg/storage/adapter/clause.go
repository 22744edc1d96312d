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
	"fmt"
	"sort"
	"strings"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// cellColumns are the result columns of a single row read.
func (cf *ColumnFamily) cellColumns() []string {
	var cols []string
	if !cf.IsCounter() {
		cols = append(cols, writeTimeField)
	}
	cols = append(cols, fieldNames(cf.ColumnFields)...)
	return append(cols, ValueField)
}

// rowColumns are the result columns of a multi row read.
func (cf *ColumnFamily) rowColumns() []string {
	cols := fieldNames(cf.KeyFields)
	return append(cols, cf.cellColumns()...)
}

// valueColumns are the result columns of a single cell read.
func (cf *ColumnFamily) valueColumns() []string {
	if cf.IsCounter() {
		return []string{ValueField}
	}
	return []string{writeTimeField, ValueField}
}

// keyOfValue splits a caller supplied key into normalized parts and
// renders it.
func (cf *ColumnFamily) keyOfValue(key interface{}) (string, keycodec.Composite, error) {
	if key == nil {
		return "", nil, errs.NewConfigurationError("%s key is missing", cf.Name)
	}
	parts, err := cf.keyCodec.Parts(key)
	if err != nil {
		return "", nil, err
	}
	norm := make(keycodec.Composite, len(parts))
	for i, p := range parts {
		norm[i] = normalizePart(cf.KeyFields[i].Type, p)
	}
	s, err := cf.keyCodec.String(norm)
	if err != nil {
		return "", nil, err
	}
	return s, norm, nil
}

// keyLiterals escapes every key part.
func (cf *ColumnFamily) keyLiterals(key interface{}) ([]qb.Sqlizer, string, error) {
	s, parts, err := cf.keyOfValue(key)
	if err != nil {
		return nil, s, err
	}
	lits := make([]qb.Sqlizer, 0, len(parts))
	for i, p := range parts {
		lit, err := Escape(p, cf.KeyFields[i].Type)
		if err != nil {
			return nil, s, err
		}
		lits = append(lits, lit)
	}
	return lits, s, nil
}

// keyClause is "key = <literal>" for every key field.
func (cf *ColumnFamily) keyClause(key interface{}) ([]qb.Sqlizer, string, error) {
	lits, s, err := cf.keyLiterals(key)
	if err != nil {
		return nil, s, err
	}
	return eqAll(cf.KeyFields, lits), s, nil
}

// keysClause is an IN per key field over the distinct values of keys. It
// also returns the rendered keys.
func (cf *ColumnFamily) keysClause(keys []interface{}) ([]qb.Sqlizer, map[string]struct{}, error) {
	wanted := make(map[string]struct{}, len(keys))
	values := make([][]qb.Sqlizer, len(cf.KeyFields))
	seen := make([]map[qb.Literal]bool, len(cf.KeyFields))
	for i := range seen {
		seen[i] = map[qb.Literal]bool{}
	}
	for _, key := range keys {
		s, parts, err := cf.keyOfValue(key)
		if err != nil {
			return nil, nil, err
		}
		wanted[s] = struct{}{}
		for i, p := range parts {
			lit, err := Escape(p, cf.KeyFields[i].Type)
			if err != nil {
				return nil, nil, err
			}
			if !seen[i][lit] {
				seen[i][lit] = true
				values[i] = append(values[i], lit)
			}
		}
	}
	preds := make([]qb.Sqlizer, 0, len(cf.KeyFields))
	for i, f := range cf.KeyFields {
		preds = append(preds, qb.In(f.Name, values[i]...))
	}
	return preds, wanted, nil
}

// columnLiterals escapes every part of a column name.
func (cf *ColumnFamily) columnLiterals(column interface{}) ([]qb.Sqlizer, error) {
	if len(cf.ColumnFields) == 0 {
		return nil, errs.NewConfigurationError("%s has no column fields", cf.Name)
	}
	parts, err := cf.columnCodec.Parts(column)
	if err != nil {
		return nil, err
	}
	lits := make([]qb.Sqlizer, 0, len(parts))
	for i, p := range parts {
		lit, err := Escape(normalizePart(cf.ColumnFields[i].Type, p), cf.ColumnFields[i].Type)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

// columnClause is "<field> = <literal>" for every column field.
func (cf *ColumnFamily) columnClause(column interface{}) ([]qb.Sqlizer, error) {
	lits, err := cf.columnLiterals(column)
	if err != nil {
		return nil, err
	}
	return eqAll(cf.ColumnFields, lits), nil
}

// sliceClause fixes the prefix fields and bounds the next field. A
// reversed slice gives its bounds high first, so they are swapped.
func (cf *ColumnFamily) sliceClause(s Slice) ([]qb.Sqlizer, error) {
	if len(s.Prefix) > len(cf.ColumnFields) {
		return nil, errs.NewConfigurationError(
			"%s has %d column fields, slice prefix has %d", cf.Name, len(cf.ColumnFields), len(s.Prefix))
	}
	var preds []qb.Sqlizer
	for i, p := range s.Prefix {
		f := cf.ColumnFields[i]
		lit, err := Escape(normalizePart(f.Type, p), f.Type)
		if err != nil {
			return nil, err
		}
		preds = append(preds, qb.Eq(f.Name, lit))
	}

	lower, upper := s.Start, s.Finish
	if s.Reversed {
		lower, upper = upper, lower
	}
	if isBlank(lower) && isBlank(upper) {
		return preds, nil
	}
	if len(s.Prefix) == len(cf.ColumnFields) {
		return nil, errs.NewConfigurationError("%s slice bounds need a free column field", cf.Name)
	}
	f := cf.ColumnFields[len(s.Prefix)]
	if !isBlank(lower) {
		lit, err := escapeBound(normalizePart(f.Type, lower), f.Type, true)
		if err != nil {
			return nil, err
		}
		preds = append(preds, qb.GtOrEq(f.Name, lit))
	}
	if !isBlank(upper) {
		lit, err := escapeBound(normalizePart(f.Type, upper), f.Type, false)
		if err != nil {
			return nil, err
		}
		preds = append(preds, qb.LtOrEq(f.Name, lit))
	}
	return preds, nil
}

func eqAll(fields []Field, lits []qb.Sqlizer) []qb.Sqlizer {
	preds := make([]qb.Sqlizer, 0, len(fields))
	for i, f := range fields {
		preds = append(preds, qb.Eq(f.Name, lits[i]))
	}
	return preds
}

func isBlank(v interface{}) bool {
	switch b := v.(type) {
	case nil:
		return true
	case string:
		return b == ""
	case []byte:
		return len(b) == 0
	}
	return false
}

func describeColumn(column interface{}) string {
	if b, ok := column.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(column)
}

func joinKeys(keys map[string]struct{}) string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
