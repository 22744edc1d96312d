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

package base

import (
	"bytes"
	"sort"
)

// Object carries the persistence state of a record. Users embed it in every
// storage object to annotate the column family the object is stored in.
//
// For example:
// Issue is a representation of the orm annotations
// 	type Issue struct {
//		base.Object `cassandra:"name=Issues, write_consistency=all"`
//		Description string          `column:"name=description"`
//		Worth       decimal.Decimal `column:"name=worth, precision=4"`
//	}
// Here, base.Object is embedded in Issue to give the column family name and
// its consistency levels. Every other annotated field is one attribute, one
// column of the row.
//
// The zero value is a new record without a key.
type Object struct {
	key           string
	persisted     bool
	destroyed     bool
	readOnly      bool
	schemaVersion int
	// stored holds the encoded attributes as last read or written.
	stored map[string][]byte
	// changed names attributes that must be written by the next save even
	// when their encoding did not change.
	changed map[string]struct{}
}

// Entity is implemented by every struct embedding Object.
type Entity interface {
	State() *Object
}

// State returns the persistence state of the record.
func (o *Object) State() *Object {
	return o
}

// Key returns the row key, empty for a new record without one.
func (o *Object) Key() string {
	return o.key
}

// SetKey assigns the key of a new record.
func (o *Object) SetKey(key string) {
	o.key = key
}

// IsNewRecord reports whether the record was never saved nor loaded.
func (o *Object) IsNewRecord() bool {
	return !o.persisted && !o.destroyed
}

// IsPersisted reports whether the record exists in the store.
func (o *Object) IsPersisted() bool {
	return o.persisted && !o.destroyed
}

// IsDestroyed reports whether the record was destroyed.
func (o *Object) IsDestroyed() bool {
	return o.destroyed
}

// IsReadOnly reports whether saving the record is refused.
func (o *Object) IsReadOnly() bool {
	return o.readOnly
}

// SetReadOnly marks the record read only.
func (o *Object) SetReadOnly(readOnly bool) {
	o.readOnly = readOnly
}

// SchemaVersion is the version of the stored attribute layout.
func (o *Object) SchemaVersion() int {
	return o.schemaVersion
}

// MarkChanged forces attributes into the next save.
func (o *Object) MarkChanged(names ...string) {
	if o.changed == nil {
		o.changed = make(map[string]struct{}, len(names))
	}
	for _, n := range names {
		o.changed[n] = struct{}{}
	}
}

// Changed returns the attributes of encoded that differ from the stored
// ones or were marked changed, sorted. A nil encoding is a change only
// when a value was stored.
func (o *Object) Changed(encoded map[string][]byte) []string {
	var names []string
	for name, value := range encoded {
		old, ok := o.stored[name]
		_, marked := o.changed[name]
		switch {
		case marked:
		case !ok && value == nil:
			continue
		case ok && bytes.Equal(old, value) && (old == nil) == (value == nil):
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Loaded records that the object was read from the store.
func (o *Object) Loaded(key string, version int, stored map[string][]byte) {
	o.key = key
	o.persisted = true
	o.destroyed = false
	o.schemaVersion = version
	o.stored = stored
	o.changed = nil
}

// Saved records that encoded was written at version.
func (o *Object) Saved(version int, encoded map[string][]byte) {
	stored := make(map[string][]byte, len(encoded))
	for name, value := range encoded {
		if value != nil {
			stored[name] = value
		}
	}
	o.persisted = true
	o.schemaVersion = version
	o.stored = stored
	o.changed = nil
}

// Destroyed records that the row was removed. A destroyed record cannot be
// saved again.
func (o *Object) Destroyed() {
	o.destroyed = true
	o.persisted = false
}
