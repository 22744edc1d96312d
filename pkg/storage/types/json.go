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

package types

import (
	"bytes"
	"reflect"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/goccy/go-json"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// decodeJSON parses any JSON document. Documents written by other producers
// are accepted as long as they are valid JSON.
func decodeJSON(name string, data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &errs.FormatError{Codec: name, Input: string(data), Err: err}
	}
	return out, nil
}

type arrayCodec struct{}

func (arrayCodec) Name() string       { return ArrayType }
func (arrayCodec) Type() reflect.Type { return reflect.TypeOf([]interface{}{}) }

func (c arrayCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	v = deref(v)
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return json.Marshal(v)
	}
	return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
}

func (c arrayCodec) Decode(data []byte, _ Options) (interface{}, error) {
	return decodeJSON(c.Name(), data)
}

type hashCodec struct{}

func (hashCodec) Name() string       { return HashType }
func (hashCodec) Type() reflect.Type { return reflect.TypeOf(map[string]interface{}{}) }

func (c hashCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	v = deref(v)
	if reflect.ValueOf(v).Kind() != reflect.Map {
		return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
	}
	return json.Marshal(v)
}

func (c hashCodec) Decode(data []byte, _ Options) (interface{}, error) {
	return decodeJSON(c.Name(), data)
}

// setCodec stores a set as a JSON array with its members sorted by their
// JSON form, so equal sets always encode to equal bytes. Sets decode to
// mapset.Set[interface{}]; a stored array holding nested arrays or objects
// cannot be a set and fails with a FormatError.
type setCodec struct{}

func (setCodec) Name() string { return SetType }
func (setCodec) Type() reflect.Type {
	return reflect.TypeOf((*mapset.Set[interface{}])(nil)).Elem()
}

func (c setCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	members, ok := setMembers(v)
	if !ok {
		return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
	}
	encoded := make([][]byte, 0, len(members))
	for _, m := range members {
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, b)
	}
	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	})
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range encoded {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (c setCodec) Decode(data []byte, _ Options) (interface{}, error) {
	doc, err := decodeJSON(c.Name(), data)
	if err != nil || doc == nil {
		return nil, err
	}
	items, ok := doc.([]interface{})
	if !ok {
		return nil, &errs.FormatError{Codec: c.Name(), Input: string(data)}
	}
	set := mapset.NewSet[interface{}]()
	for _, item := range items {
		switch item.(type) {
		case []interface{}, map[string]interface{}:
			return nil, &errs.FormatError{Codec: c.Name(), Input: string(data)}
		}
		set.Add(item)
	}
	return set, nil
}

// setMembers extracts the members of any mapset.Set[T] through its ToSlice
// method.
func setMembers(v interface{}) ([]interface{}, bool) {
	m := reflect.ValueOf(v).MethodByName("ToSlice")
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return nil, false
	}
	slice := m.Call(nil)[0]
	if slice.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]interface{}, slice.Len())
	for i := range out {
		out[i] = slice.Index(i).Interface()
	}
	return out, true
}
