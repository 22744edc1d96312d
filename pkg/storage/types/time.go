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
	"reflect"
	"regexp"
	"time"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

const (
	// DateFormat is the stored layout of a date attribute.
	DateFormat = "2006-01-02"
	// TimeFormat is the stored layout of a time attribute, with microsecond
	// precision.
	TimeFormat = "2006-01-02T15:04:05.000000Z07:00"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dateCodec decodes to a time.Time at midnight UTC.
type dateCodec struct{}

func (dateCodec) Name() string       { return DateType }
func (dateCodec) Type() reflect.Type { return reflect.TypeOf(time.Time{}) }

func (c dateCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	t, ok := deref(v).(time.Time)
	if !ok {
		return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
	}
	return []byte(t.Format(DateFormat)), nil
}

func (c dateCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	s := string(data)
	if !datePattern.MatchString(s) {
		return nil, &errs.FormatError{Codec: c.Name(), Input: s}
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil, &errs.FormatError{Codec: c.Name(), Input: s, Err: err}
	}
	return t, nil
}

// timeCodec stores an instant. Unless keepZone is set the value is
// normalized to UTC on both encode and decode.
type timeCodec struct {
	name     string
	keepZone bool
}

func (c timeCodec) Name() string     { return c.name }
func (timeCodec) Type() reflect.Type { return reflect.TypeOf(time.Time{}) }

func (c timeCodec) Encode(v interface{}, _ Options) ([]byte, error) {
	if isNil(v) {
		return nil, nil
	}
	t, ok := deref(v).(time.Time)
	if !ok {
		return nil, &errs.TypeMismatchError{Codec: c.Name(), Value: v}
	}
	if !c.keepZone {
		t = t.UTC()
	}
	return []byte(t.Format(TimeFormat)), nil
}

func (c timeCodec) Decode(data []byte, _ Options) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return nil, &errs.FormatError{Codec: c.Name(), Input: string(data), Err: err}
	}
	if !c.keepZone {
		t = t.UTC()
	}
	return t, nil
}
