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
	"math"
	"reflect"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

var floatPattern = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)

// stringCodec stores strings as their raw bytes. Byte slices pass through
// untouched so binary payloads are never transcoded.
type stringCodec struct{}

func (stringCodec) Name() string       { return StringType }
func (stringCodec) Type() reflect.Type { return reflect.TypeOf("") }

func (c stringCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	switch s := deref(v).(type) {
	case string:
		return []byte(s), nil
	case []byte:
		out := make([]byte, len(s))
		copy(out, s)
		return out, nil
	}
	return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
}

func (stringCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	return string(data), nil
}

type integerCodec struct{}

func (integerCodec) Name() string       { return IntegerType }
func (integerCodec) Type() reflect.Type { return reflect.TypeOf(int64(0)) }

func (c integerCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []byte(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			break
		}
		return []byte(strconv.FormatUint(rv.Uint(), 10)), nil
	}
	return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
}

func (c integerCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, &errs.FormatError{Codec: c.Name(), Input: string(data), Err: err}
	}
	return n, nil
}

type floatCodec struct{}

func (floatCodec) Name() string       { return FloatType }
func (floatCodec) Type() reflect.Type { return reflect.TypeOf(float64(0)) }

func (c floatCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	switch f := deref(v).(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			break
		}
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			break
		}
		return []byte(strconv.FormatFloat(float64(f), 'f', -1, 32)), nil
	}
	return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
}

func (c floatCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	s := string(data)
	if !floatPattern.MatchString(s) {
		return nil, &errs.FormatError{Codec: c.Name(), Input: s}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &errs.FormatError{Codec: c.Name(), Input: s, Err: err}
	}
	return f, nil
}

type decimalCodec struct{}

func (decimalCodec) Name() string       { return DecimalType }
func (decimalCodec) Type() reflect.Type { return reflect.TypeOf(decimal.Decimal{}) }

func (c decimalCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	switch d := deref(v).(type) {
	case decimal.Decimal:
		return []byte(d.String()), nil
	case decimal.NullDecimal:
		if !d.Valid {
			return nil, nil
		}
		return []byte(d.Decimal.String()), nil
	}
	return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
}

// Decode parses the stored text. With a precision option the value is
// rounded to that many significant digits.
func (c decimalCodec) Decode(data []byte, opts Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return nil, &errs.FormatError{Codec: c.Name(), Input: string(data), Err: err}
	}
	if opts.Precision > 0 && !d.IsZero() {
		intDigits := d.NumDigits() + int(d.Exponent())
		if d.NumDigits() > opts.Precision {
			d = d.Round(int32(opts.Precision - intDigits))
		}
	}
	return d, nil
}

// booleanCodec stores "1" for true and "0" for false.
type booleanCodec struct{}

func (booleanCodec) Name() string       { return BooleanType }
func (booleanCodec) Type() reflect.Type { return reflect.TypeOf(false) }

func (c booleanCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	b, ok := deref(v).(bool)
	if !ok {
		return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
	}
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (c booleanCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	switch string(data) {
	case "1", "t", "true":
		return true, nil
	case "0", "f", "false":
		return false, nil
	}
	return nil, &errs.FormatError{Codec: c.Name(), Input: string(data)}
}
