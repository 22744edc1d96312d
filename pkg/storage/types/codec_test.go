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
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

type CodecSuite struct {
	suite.Suite
	registry *Registry
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

func (s *CodecSuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *CodecSuite) codec(name string) Codec {
	c, err := s.registry.Lookup(name)
	s.Require().NoError(err)
	return c
}

func (s *CodecSuite) roundTrip(name string, v interface{}) interface{} {
	c := s.codec(name)
	data, err := c.Encode(v, Options{})
	s.Require().NoError(err)
	out, err := c.Decode(data, Options{})
	s.Require().NoError(err)
	return out
}

func (s *CodecSuite) TestNilEncodesToNil() {
	for _, name := range s.registry.Names() {
		data, err := s.codec(name).Encode(nil, Options{})
		s.NoError(err, name)
		s.Nil(data, name)
	}
	var p *string
	data, err := s.codec(StringType).Encode(p, Options{})
	s.NoError(err)
	s.Nil(data)
}

func (s *CodecSuite) TestEmptyDecodesToNil() {
	for _, name := range s.registry.Names() {
		if name == StringType {
			continue
		}
		v, err := s.codec(name).Decode([]byte{}, Options{})
		s.NoError(err, name)
		s.Nil(v, name)
	}
	v, err := s.codec(StringType).Decode([]byte{}, Options{})
	s.NoError(err)
	s.Equal("", v)
	v, err = s.codec(StringType).Decode(nil, Options{})
	s.NoError(err)
	s.Nil(v)
}

func (s *CodecSuite) TestUnknownType() {
	_, err := s.registry.Lookup("uuid_list")
	s.True(errs.IsConfiguration(err))
}

func (s *CodecSuite) TestString() {
	s.Equal("web site not working", s.roundTrip(StringType, "web site not working"))
	raw := []byte{0xff, 0x00, 0xfe}
	data, err := s.codec(StringType).Encode(raw, Options{})
	s.NoError(err)
	s.Equal(raw, data)

	_, err = s.codec(StringType).Encode(12, Options{})
	s.True(errs.IsTypeMismatch(err))
}

func (s *CodecSuite) TestInteger() {
	s.Equal(int64(-42), s.roundTrip(IntegerType, -42))
	s.Equal(int64(7), s.roundTrip(IntegerType, uint8(7)))

	_, err := s.codec(IntegerType).Encode("42", Options{})
	s.True(errs.IsTypeMismatch(err))
	_, err = s.codec(IntegerType).Decode([]byte("4x2"), Options{})
	s.True(errs.IsDecode(err))
}

func (s *CodecSuite) TestIntegerEncodesOnlyDecodableValues() {
	s.Equal(int64(math.MaxInt64), s.roundTrip(IntegerType, uint64(math.MaxInt64)))

	_, err := s.codec(IntegerType).Encode(uint64(math.MaxUint64), Options{})
	s.True(errs.IsTypeMismatch(err))
	_, err = s.codec(IntegerType).Encode(uint64(math.MaxInt64)+1, Options{})
	s.True(errs.IsTypeMismatch(err))
}

func (s *CodecSuite) TestFloat() {
	data, err := s.codec(FloatType).Encode(1.5, Options{})
	s.NoError(err)
	s.Equal("1.5", string(data))
	s.Equal(1.5, s.roundTrip(FloatType, 1.5))
	s.Equal(float64(-3), s.roundTrip(FloatType, float64(-3)))

	_, err = s.codec(FloatType).Decode([]byte("1.5e3"), Options{})
	s.True(errs.IsDecode(err))
	_, err = s.codec(FloatType).Encode(1, Options{})
	s.True(errs.IsTypeMismatch(err))
}

func (s *CodecSuite) TestFloatEncodesOnlyDecodableValues() {
	for _, f := range []interface{}{
		math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1)),
	} {
		_, err := s.codec(FloatType).Encode(f, Options{})
		s.True(errs.IsTypeMismatch(err), "%v", f)
	}
	s.Equal(math.MaxFloat64, s.roundTrip(FloatType, math.MaxFloat64))
}

func (s *CodecSuite) TestDecimal() {
	c := s.codec(DecimalType)
	data, err := c.Encode(decimal.RequireFromString("3.14"), Options{})
	s.NoError(err)
	s.Equal("3.14", string(data))

	v, err := c.Decode([]byte(".001"), Options{})
	s.NoError(err)
	s.True(decimal.RequireFromString("0.001").Equal(v.(decimal.Decimal)))

	v, err = c.Decode([]byte("9000.00311219"), Options{Precision: 100})
	s.NoError(err)
	s.Equal("9000.00311219", v.(decimal.Decimal).String())

	v, err = c.Decode([]byte("123.456"), Options{Precision: 4})
	s.NoError(err)
	s.Equal("123.5", v.(decimal.Decimal).String())

	_, err = c.Encode(1.5, Options{})
	s.True(errs.IsTypeMismatch(err))
	_, err = c.Decode([]byte("one"), Options{})
	s.True(errs.IsDecode(err))
}

func (s *CodecSuite) TestBoolean() {
	s.Equal(true, s.roundTrip(BooleanType, true))
	s.Equal(false, s.roundTrip(BooleanType, false))
	_, err := s.codec(BooleanType).Decode([]byte("maybe"), Options{})
	s.True(errs.IsDecode(err))
}

func (s *CodecSuite) TestDate() {
	c := s.codec(DateType)
	day := time.Date(2013, time.March, 7, 0, 0, 0, 0, time.UTC)
	data, err := c.Encode(day.Add(5*time.Hour), Options{})
	s.NoError(err)
	s.Equal("2013-03-07", string(data))
	s.Equal(day, s.roundTrip(DateType, day))

	_, err = c.Decode([]byte("2013-3-7"), Options{})
	s.True(errs.IsDecode(err))
	_, err = c.Decode([]byte("2013-03-07T00:00:00Z"), Options{})
	s.True(errs.IsDecode(err))
}

func (s *CodecSuite) TestTime() {
	loc := time.FixedZone("PST", -8*3600)
	t := time.Date(2013, time.March, 7, 10, 4, 5, 123456000, loc)

	utc := s.roundTrip(TimeType, t).(time.Time)
	s.True(t.Equal(utc))
	s.Equal(time.UTC, utc.Location())

	zoned := s.roundTrip(TimeWithZoneType, t).(time.Time)
	s.True(t.Equal(zoned))
	_, offset := zoned.Zone()
	s.Equal(-8*3600, offset)
}

func (s *CodecSuite) TestArrayAndHash() {
	s.Equal([]interface{}{"a", float64(1)}, s.roundTrip(ArrayType, []interface{}{"a", 1}))
	s.Equal(map[string]interface{}{"a": "b"}, s.roundTrip(HashType, map[string]string{"a": "b"}))

	// foreign documents are accepted
	v, err := s.codec(ArrayType).Decode([]byte(`{"not":"an array"}`), Options{})
	s.NoError(err)
	s.Equal(map[string]interface{}{"not": "an array"}, v)

	_, err = s.codec(HashType).Encode([]string{"x"}, Options{})
	s.True(errs.IsTypeMismatch(err))
	_, err = s.codec(HashType).Decode([]byte(`{"a":`), Options{})
	s.True(errs.IsDecode(err))
}

func (s *CodecSuite) TestSet() {
	c := s.codec(SetType)
	data, err := c.Encode(mapset.NewSet[string]("b", "a", "c"), Options{})
	s.NoError(err)
	s.Equal(`["a","b","c"]`, string(data))

	v, err := c.Decode(data, Options{})
	s.NoError(err)
	s.True(mapset.NewSet[interface{}]("a", "b", "c").Equal(v.(mapset.Set[interface{}])))

	_, err = c.Decode([]byte(`[[1],[2]]`), Options{})
	s.True(errs.IsDecode(err))
	_, err = c.Encode([]string{"a"}, Options{})
	s.True(errs.IsTypeMismatch(err))
}
