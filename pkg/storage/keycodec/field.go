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

package keycodec

import (
	"encoding/binary"
	"math"
	"reflect"
	"strings"

	"github.com/gocql/gocql"
	"github.com/pborman/uuid"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// FieldType is the CQL type of a key or clustering field.
type FieldType string

// Supported field types.
const (
	Blob      FieldType = "blob"
	Text      FieldType = "text"
	Varchar   FieldType = "varchar"
	ASCII     FieldType = "ascii"
	Tinyint   FieldType = "tinyint"
	Smallint  FieldType = "smallint"
	Int       FieldType = "int"
	Bigint    FieldType = "bigint"
	Varint    FieldType = "varint"
	Counter   FieldType = "counter"
	UUID      FieldType = "uuid"
	Timeuuid  FieldType = "timeuuid"
	Boolean   FieldType = "boolean"
	Timestamp FieldType = "timestamp"
)

// ParseFieldType normalizes a CQL type name as reported by the store schema.
// Unknown names are returned unchanged so they can still be quoted as text.
func ParseFieldType(cqlType string) FieldType {
	t := strings.ToLower(strings.TrimSpace(cqlType))
	// frozen<...> and other parametrized types are kept as is
	return FieldType(t)
}

// IsText reports whether values of the type are stored as character data.
func (t FieldType) IsText() bool {
	return t == Text || t == Varchar || t == ASCII
}

// IsInteger reports whether values of the type are integers.
func (t FieldType) IsInteger() bool {
	return t == Int || t == Bigint || t == Counter || t == Varint || t == Smallint || t == Tinyint
}

// Holds reports whether n is in the range of the integer type t. Types
// without a fixed width hold any int64.
func (t FieldType) Holds(n int64) bool {
	switch t {
	case Tinyint:
		return n >= math.MinInt8 && n <= math.MaxInt8
	case Smallint:
		return n >= math.MinInt16 && n <= math.MaxInt16
	case Int:
		return n >= math.MinInt32 && n <= math.MaxInt32
	}
	return true
}

// IsUUID reports whether values of the type are UUIDs.
func (t FieldType) IsUUID() bool {
	return t == UUID || t == Timeuuid
}

// EncodePart encodes one key part with the store's binary encoding for the
// type. Integers are big-endian so byte-wise comparison follows numeric
// order for non negative values.
func EncodePart(t FieldType, v interface{}) ([]byte, error) {
	switch {
	case t == Blob || t.IsText():
		switch s := v.(type) {
		case string:
			return []byte(s), nil
		case []byte:
			return s, nil
		}
	case t == Int:
		if n, ok := ToInt64(v); ok && t.Holds(n) {
			b := make([]byte, 4)
			binary.BigEndian.PutUint32(b, uint32(int32(n)))
			return b, nil
		}
	case t == Bigint || t == Counter || t == Timestamp:
		if n, ok := ToInt64(v); ok {
			b := make([]byte, 8)
			binary.BigEndian.PutUint64(b, uint64(n))
			return b, nil
		}
	case t.IsUUID():
		if u, ok := ToUUID(v); ok {
			return []byte(u), nil
		}
	case t == Boolean:
		if b, ok := v.(bool); ok {
			if b {
				return []byte{1}, nil
			}
			return []byte{0}, nil
		}
	}
	return nil, &errs.TypeMismatchError{Codec: string(t) + " key", Value: v}
}

// DecodePart is the inverse of EncodePart. Text decodes to string, blob to
// []byte, int to int32, bigint to int64 and uuids to uuid.UUID.
func DecodePart(t FieldType, b []byte) (interface{}, error) {
	switch {
	case t == Blob:
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	case t.IsText():
		return string(b), nil
	case t == Int:
		if len(b) != 4 {
			return nil, errs.NewDecodeError("int key part must be 4 bytes, got %d", len(b))
		}
		return int32(binary.BigEndian.Uint32(b)), nil
	case t == Bigint || t == Counter || t == Timestamp:
		if len(b) != 8 {
			return nil, errs.NewDecodeError("%s key part must be 8 bytes, got %d", t, len(b))
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	case t.IsUUID():
		if len(b) != 16 {
			return nil, errs.NewDecodeError("%s key part must be 16 bytes, got %d", t, len(b))
		}
		return uuid.UUID(append([]byte(nil), b...)), nil
	case t == Boolean:
		if len(b) != 1 {
			return nil, errs.NewDecodeError("boolean key part must be 1 byte, got %d", len(b))
		}
		return b[0] != 0, nil
	}
	return nil, errs.NewDecodeError("unsupported key field type %q", t)
}

// ToInt64 converts any integer kind to int64.
func ToInt64(v interface{}) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// ToUUID accepts pborman and gocql UUIDs as well as their string form.
func ToUUID(v interface{}) (uuid.UUID, bool) {
	switch u := v.(type) {
	case uuid.UUID:
		if len(u) == 16 {
			return u, true
		}
	case gocql.UUID:
		return uuid.UUID(u.Bytes()), true
	case string:
		if p := uuid.Parse(u); p != nil {
			return p, true
		}
	case []byte:
		if len(u) == 16 {
			return uuid.UUID(u), true
		}
	}
	return nil, false
}
