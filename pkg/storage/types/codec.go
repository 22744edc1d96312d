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

// Package types maps logical attribute types onto the byte representation
// stored in a column value.
//
// Every codec follows the same contract: Encode(nil) returns nil so that
// "no value" stays distinct from an empty value, Encode rejects values of
// the wrong kind with a TypeMismatchError, and Decode of an empty payload
// yields nil instead of failing.
package types

import (
	"reflect"
	"sort"
	"sync"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// Names of the built in codecs.
const (
	StringType       = "string"
	IntegerType      = "integer"
	FloatType        = "float"
	DecimalType      = "decimal"
	BooleanType      = "boolean"
	DateType         = "date"
	TimeType         = "time"
	TimeWithZoneType = "time_with_zone"
	ArrayType        = "array"
	HashType         = "hash"
	SetType          = "set"
)

// Options are passed to every Encode and Decode call. The zero value means
// no options.
type Options struct {
	// Precision is the number of significant digits kept when decoding a
	// decimal. Zero keeps every stored digit.
	Precision int
}

// Codec converts between an in-memory value and its stored bytes.
type Codec interface {
	// Name returns the logical type name the codec is registered under.
	Name() string
	// Encode converts v to stored bytes. A nil v encodes to nil.
	Encode(v interface{}, opts Options) ([]byte, error)
	// Decode converts stored bytes back to a value.
	Decode(data []byte, opts Options) (interface{}, error)
	// Type is the Go type returned by Decode.
	Type() reflect.Type
}

// Registry maps logical type names to codecs. It is safe for concurrent use.
type Registry struct {
	sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns a registry holding every built in codec.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	for _, c := range []Codec{
		stringCodec{},
		integerCodec{},
		floatCodec{},
		decimalCodec{},
		booleanCodec{},
		dateCodec{},
		timeCodec{name: TimeType},
		timeCodec{name: TimeWithZoneType, keepZone: true},
		arrayCodec{},
		hashCodec{},
		setCodec{},
	} {
		r.codecs[c.Name()] = c
	}
	return r
}

// Register adds or replaces the codec for its name.
func (r *Registry) Register(c Codec) {
	r.Lock()
	defer r.Unlock()
	r.codecs[c.Name()] = c
}

// Lookup returns the codec registered for name.
func (r *Registry) Lookup(name string) (Codec, error) {
	r.RLock()
	defer r.RUnlock()
	c, ok := r.codecs[name]
	if !ok {
		return nil, errs.NewConfigurationError("unknown attribute type %q", name)
	}
	return c, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isNil reports whether v is nil or a nil pointer, slice or map.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

// deref follows a non nil pointer.
func deref(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return rv.Elem().Interface()
	}
	return v
}
