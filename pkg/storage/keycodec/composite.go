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

// Package keycodec encodes row keys and column names made of one or more
// typed parts.
//
// A single-part value is stored with the direct encoding of its type. A
// multi-part value uses the composite layout: for every part a two byte
// big-endian length, the part bytes and a zero end-of-component byte.
package keycodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

const endOfComponent = 0x00

// Composite is a logical key or column name made of typed parts, in field
// order.
type Composite []interface{}

// Codec encodes and decodes values for a fixed list of field types.
type Codec struct {
	types []FieldType
}

// New returns a codec for the given field layout.
func New(types ...FieldType) *Codec {
	return &Codec{types: types}
}

// Types returns the field layout of the codec.
func (c *Codec) Types() []FieldType {
	return c.types
}

// Encode packs parts into their wire form. The number of parts must match
// the number of fields.
func (c *Codec) Encode(parts ...interface{}) ([]byte, error) {
	if len(parts) != len(c.types) {
		return nil, errs.NewDecodeError("expected %d key parts, got %d", len(c.types), len(parts))
	}
	if len(c.types) == 1 {
		return EncodePart(c.types[0], parts[0])
	}
	var buf bytes.Buffer
	for i, t := range c.types {
		b, err := EncodePart(t, parts[i])
		if err != nil {
			return nil, err
		}
		if len(b) > math.MaxUint16 {
			return nil, errs.NewDecodeError("key part %d is %d bytes, longer than %d", i, len(b), math.MaxUint16)
		}
		var size [2]byte
		binary.BigEndian.PutUint16(size[:], uint16(len(b)))
		buf.Write(size[:])
		buf.Write(b)
		buf.WriteByte(endOfComponent)
	}
	return buf.Bytes(), nil
}

// Decode unpacks a wire value into its parts. Truncated input, a wrong
// number of parts and trailing bytes are all DecodeErrors.
func (c *Codec) Decode(data []byte) (Composite, error) {
	if len(c.types) == 1 {
		p, err := DecodePart(c.types[0], data)
		if err != nil {
			return nil, err
		}
		return Composite{p}, nil
	}

	parts := make(Composite, 0, len(c.types))
	rest := data
	for len(rest) > 0 {
		if len(parts) == len(c.types) {
			return nil, errs.NewDecodeError(
				"composite value has more than %d parts, %d trailing bytes", len(c.types), len(rest))
		}
		if len(rest) < 2 {
			return nil, errs.NewDecodeError("truncated length prefix for part %d", len(parts))
		}
		size := int(binary.BigEndian.Uint16(rest[:2]))
		rest = rest[2:]
		if len(rest) < size+1 {
			return nil, errs.NewDecodeError(
				"truncated part %d: want %d bytes, have %d", len(parts), size+1, len(rest))
		}
		p, err := DecodePart(c.types[len(parts)], rest[:size])
		if err != nil {
			return nil, err
		}
		if rest[size] != endOfComponent {
			return nil, errs.NewDecodeError("part %d has end-of-component byte %#x", len(parts), rest[size])
		}
		parts = append(parts, p)
		rest = rest[size+1:]
	}
	if len(parts) != len(c.types) {
		return nil, errs.NewDecodeError("expected %d composite parts, got %d", len(c.types), len(parts))
	}
	return parts, nil
}

// Parts splits a logical value into its parts. Composite values are used as
// is, packed wire values are decoded and any other value is the single part
// of a one field layout.
func (c *Codec) Parts(v interface{}) (Composite, error) {
	if comp, ok := v.(Composite); ok {
		if len(comp) != len(c.types) {
			return nil, errs.NewDecodeError("expected %d key parts, got %d", len(c.types), len(comp))
		}
		return comp, nil
	}
	if len(c.types) == 1 {
		return Composite{v}, nil
	}
	switch packed := v.(type) {
	case []byte:
		return c.Decode(packed)
	case string:
		return c.Decode([]byte(packed))
	}
	return nil, &errs.TypeMismatchError{Codec: "composite key", Value: v}
}

// String renders parts as the string used to index result maps. Single
// text, blob and integer parts render naturally; composites render as their
// packed bytes.
func (c *Codec) String(parts Composite) (string, error) {
	if len(c.types) == 1 && len(parts) == 1 {
		switch p := parts[0].(type) {
		case []byte:
			return string(p), nil
		case string:
			return p, nil
		case fmt.Stringer:
			return p.String(), nil
		}
		return fmt.Sprint(parts[0]), nil
	}
	b, err := c.Encode(parts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
