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

package orm

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	"github.com/sessionm/cassandra-object/pkg/storage/migrations"
	"github.com/sessionm/cassandra-object/pkg/storage/objects/base"
	"github.com/sessionm/cassandra-object/pkg/storage/types"
)

const (
	cassandraTag = "cassandra"
	columnTag    = "column"

	// CreatedAt and UpdatedAt are stamped on save when declared as time
	// attributes.
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

var (
	objectType  = reflect.TypeOf(base.Object{})
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	setType     = reflect.TypeOf((*mapset.Set[interface{}])(nil)).Elem()
	arrayType   = reflect.TypeOf([]interface{}{})
	hashType    = reflect.TypeOf(map[string]interface{}{})
)

var defaultRegistry = types.NewRegistry()

// Migratable is implemented by objects whose stored attributes changed
// shape over time.
type Migratable interface {
	Migrations() []migrations.Migration
}

// Attribute is one annotated field of an object, stored as one column.
type Attribute struct {
	// Name is the column name.
	Name string
	// FieldName is the name of the struct field.
	FieldName string
	// Type is the name of the codec.
	Type    string
	Options types.Options

	codec types.Codec
	index int
}

// Table describes how objects of one struct type are stored.
type Table struct {
	// Name is the column family.
	Name             string
	ReadConsistency  consistency.Level
	WriteConsistency consistency.Level
	// TTL expires saved attributes after this many seconds, 0 never.
	TTL        int64
	Keys       keycodec.KeyFactory
	Migrations *migrations.Set
	Attributes []*Attribute

	byName map[string]*Attribute
	typ    reflect.Type
}

// TableFromObject builds the table of e's struct type from its
// annotations, using the built in codecs.
func TableFromObject(e base.Entity) (*Table, error) {
	return tableFromObject(e, defaultRegistry)
}

func tableFromObject(e base.Entity, registry *types.Registry) (*Table, error) {
	typ := reflect.TypeOf(e)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, errs.NewConfigurationError("%T is not a pointer to a struct", e)
	}
	typ = typ.Elem()

	t := &Table{
		typ:    typ,
		byName: make(map[string]*Attribute),
		Keys:   keycodec.UUIDKeyFactory{},
	}
	var result *multierror.Error
	annotated := false
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Type == objectType {
			tag, ok := field.Tag.Lookup(cassandraTag)
			if !ok {
				result = multierror.Append(result,
					errors.Errorf("%s: base.Object has no %s annotation", typ.Name(), cassandraTag))
				continue
			}
			annotated = true
			if err := t.parseTableTag(tag); err != nil {
				result = multierror.Append(result, errors.Wrap(err, typ.Name()))
			}
			continue
		}
		if field.PkgPath != "" {
			continue
		}

		tag, ok := field.Tag.Lookup(columnTag)
		if !ok {
			result = multierror.Append(result,
				errors.Errorf("%s.%s has no %s annotation", typ.Name(), field.Name, columnTag))
			continue
		}
		if tag == "-" {
			continue
		}
		attr, err := parseAttribute(field, i, tag, registry)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, dup := t.byName[attr.Name]; dup {
			result = multierror.Append(result,
				errors.Errorf("%s: attribute %s is declared twice", typ.Name(), attr.Name))
			continue
		}
		t.byName[attr.Name] = attr
		t.Attributes = append(t.Attributes, attr)
	}
	if !annotated {
		result = multierror.Append(result, errors.Errorf("%s does not embed base.Object", typ.Name()))
	}

	if m, ok := e.(Migratable); ok {
		set, err := migrations.NewSet(m.Migrations()...)
		if err != nil {
			result = multierror.Append(result, errors.Wrap(err, typ.Name()))
		}
		t.Migrations = set
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errs.NewConfigurationError("invalid object %s: %v", typ.Name(), err)
	}
	return t, nil
}

// parseTags splits "k1=v1, k2=v2" annotations.
func parseTags(tag string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, errors.Errorf("malformed annotation %q", part)
		}
		out[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return out, nil
}

func (t *Table) parseTableTag(tag string) error {
	opts, err := parseTags(tag)
	if err != nil {
		return err
	}
	for k, v := range opts {
		switch k {
		case "name":
			t.Name = v
		case "read_consistency":
			if t.ReadConsistency, err = consistency.Parse(v); err != nil {
				return err
			}
		case "write_consistency":
			if t.WriteConsistency, err = consistency.Parse(v); err != nil {
				return err
			}
		case "ttl":
			if t.TTL, err = strconv.ParseInt(v, 10, 64); err != nil || t.TTL < 0 {
				return errors.Errorf("invalid ttl %q", v)
			}
		case "key":
			switch v {
			case "uuid":
				t.Keys = keycodec.UUIDKeyFactory{}
			case "natural":
				t.Keys = keycodec.NaturalKeyFactory{}
			default:
				return errors.Errorf("unknown key factory %q", v)
			}
		default:
			return errors.Errorf("unknown option %q", k)
		}
	}
	if t.Name == "" {
		return errors.New("column family name is empty")
	}
	return nil
}

func parseAttribute(
	field reflect.StructField,
	index int,
	tag string,
	registry *types.Registry) (*Attribute, error) {
	opts, err := parseTags(tag)
	if err != nil {
		return nil, errors.Wrap(err, field.Name)
	}
	attr := &Attribute{FieldName: field.Name, index: index}
	for k, v := range opts {
		switch k {
		case "name":
			attr.Name = v
		case "type":
			attr.Type = v
		case "precision":
			if attr.Options.Precision, err = strconv.Atoi(v); err != nil {
				return nil, errors.Errorf("%s: invalid precision %q", field.Name, v)
			}
		default:
			return nil, errors.Errorf("%s: unknown option %q", field.Name, k)
		}
	}
	if attr.Name == "" {
		return nil, errors.Errorf("%s: attribute name is empty", field.Name)
	}
	if attr.Name == migrations.SchemaVersionAttribute {
		return nil, errors.Errorf("%s: %s is reserved", field.Name, attr.Name)
	}
	if attr.Type == "" {
		if attr.Type = inferType(field.Type); attr.Type == "" {
			return nil, errors.Errorf("%s: cannot infer the type of %s", field.Name, field.Type)
		}
	}
	if attr.codec, err = registry.Lookup(attr.Type); err != nil {
		return nil, errors.Wrap(err, field.Name)
	}
	if !compatible(attr.codec.Type(), field.Type) {
		return nil, errors.Errorf("%s: %s cannot hold %s values", field.Name, field.Type, attr.Type)
	}
	return attr, nil
}

func inferType(ft reflect.Type) string {
	if ft.Kind() == reflect.Ptr {
		ft = ft.Elem()
	}
	switch ft {
	case timeType:
		return types.TimeType
	case decimalType:
		return types.DecimalType
	case setType:
		return types.SetType
	case arrayType:
		return types.ArrayType
	case hashType:
		return types.HashType
	}
	switch ft.Kind() {
	case reflect.String:
		return types.StringType
	case reflect.Bool:
		return types.BooleanType
	case reflect.Float32, reflect.Float64:
		return types.FloatType
	}
	if isInteger(ft) {
		return types.IntegerType
	}
	return ""
}

func isInteger(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNumeric(t reflect.Type) bool {
	return isInteger(t) || t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

// compatible reports whether a field of type ft can hold decoded values of
// type vt.
func compatible(vt, ft reflect.Type) bool {
	if ft.Kind() == reflect.Ptr {
		ft = ft.Elem()
	}
	if vt.AssignableTo(ft) {
		return true
	}
	if isNumeric(vt) && isNumeric(ft) {
		return isInteger(vt) == isInteger(ft)
	}
	return vt.Kind() == reflect.String && ft.Kind() == reflect.String
}

// Attribute returns the attribute stored in column name.
func (t *Table) Attribute(name string) (*Attribute, bool) {
	a, ok := t.byName[name]
	return a, ok
}

// New returns a new record of the table's struct type.
func (t *Table) New() base.Entity {
	return reflect.New(t.typ).Interface().(base.Entity)
}

// CurrentVersion is the schema version stamped on every write.
func (t *Table) CurrentVersion() int {
	return t.Migrations.CurrentVersion()
}

func (t *Table) value(e base.Entity) (reflect.Value, error) {
	rv := reflect.ValueOf(e)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Type() != t.typ {
		return reflect.Value{}, errs.NewConfigurationError("%T is not a *%s", e, t.typ.Name())
	}
	return rv.Elem(), nil
}

// Encode returns the stored bytes of every attribute of e. Nil values
// encode to nil.
func (t *Table) Encode(e base.Entity) (map[string][]byte, error) {
	rv, err := t.value(e)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(t.Attributes))
	for _, a := range t.Attributes {
		b, err := a.codec.Encode(rv.Field(a.index).Interface(), a.Options)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s.%s", t.typ.Name(), a.FieldName)
		}
		out[a.Name] = b
	}
	return out, nil
}

// Decode sets every attribute of e from stored. Attributes missing from
// stored are reset to their zero value.
func (t *Table) Decode(e base.Entity, stored map[string][]byte) error {
	rv, err := t.value(e)
	if err != nil {
		return err
	}
	for _, a := range t.Attributes {
		field := rv.Field(a.index)
		data, ok := stored[a.Name]
		if !ok {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		v, err := a.codec.Decode(data, a.Options)
		if err != nil {
			return errors.Wrapf(err, "decode %s.%s", t.typ.Name(), a.FieldName)
		}
		if err := assign(field, v); err != nil {
			return errors.Wrapf(err, "decode %s.%s", t.typ.Name(), a.FieldName)
		}
	}
	return nil
}

func assign(field reflect.Value, v interface{}) error {
	if v == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	dst := field
	if field.Kind() == reflect.Ptr {
		dst = reflect.New(field.Type().Elem()).Elem()
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case compatible(rv.Type(), dst.Type()):
		if !fits(rv, dst.Type()) {
			return &errs.FormatError{
				Codec: dst.Type().String(),
				Input: fmt.Sprint(v),
				Err:   errors.New("value out of range"),
			}
		}
		dst.Set(rv.Convert(dst.Type()))
	default:
		return &errs.TypeMismatchError{Codec: dst.Type().String(), Value: v}
	}
	if field.Kind() == reflect.Ptr {
		field.Set(dst.Addr())
	}
	return nil
}

// fits reports whether the numeric value rv converts to t without wrapping
// or overflowing.
func fits(rv reflect.Value, t reflect.Type) bool {
	if !isNumeric(rv.Type()) {
		return true
	}
	zero := reflect.Zero(t)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if isUnsigned(rv.Type()) {
			return rv.Uint() <= math.MaxInt64 && !zero.OverflowInt(int64(rv.Uint()))
		}
		return !zero.OverflowInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if isUnsigned(rv.Type()) {
			return !zero.OverflowUint(rv.Uint())
		}
		return rv.Int() >= 0 && !zero.OverflowUint(uint64(rv.Int()))
	case reflect.Float32:
		f := rv.Float()
		return math.IsNaN(f) || math.IsInf(f, 0) || !zero.OverflowFloat(f)
	}
	return true
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// stamp sets the timestamp attributes of e before a save.
func (t *Table) stamp(e base.Entity, now time.Time, created bool) {
	rv, err := t.value(e)
	if err != nil {
		return
	}
	names := []string{UpdatedAt}
	if created {
		names = append(names, CreatedAt)
	}
	for _, name := range names {
		a, ok := t.byName[name]
		if !ok || (a.Type != types.TimeType && a.Type != types.TimeWithZoneType) {
			continue
		}
		field := rv.Field(a.index)
		if name == CreatedAt && !isZeroTime(field) {
			continue
		}
		_ = assign(field, now)
	}
}

func isZeroTime(field reflect.Value) bool {
	if field.Kind() == reflect.Ptr {
		return field.IsNil() || field.Elem().Interface().(time.Time).IsZero()
	}
	return field.Interface().(time.Time).IsZero()
}
