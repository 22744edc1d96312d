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
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// cqlTimestampFormat is accepted by CQL timestamp literals and the
// minTimeuuid/maxTimeuuid functions.
const cqlTimestampFormat = "2006-01-02 15:04:05.000-0700"

// Escape renders v as a CQL literal for a column of type t. Blobs render as
// 0x hex, text is single quoted with quotes doubled, integers and uuids are
// bare, booleans are true or false and anything else is quoted.
func Escape(v interface{}, t keycodec.FieldType) (qb.Literal, error) {
	if v == nil {
		return "null", nil
	}

	switch {
	case t == keycodec.Blob:
		switch b := v.(type) {
		case []byte:
			return qb.Literal("0x" + hex.EncodeToString(b)), nil
		case string:
			return qb.Literal("0x" + hex.EncodeToString([]byte(b))), nil
		}

	case t.IsText():
		switch s := v.(type) {
		case string:
			return quote(s), nil
		case []byte:
			return quote(string(s)), nil
		case fmt.Stringer:
			return quote(s.String()), nil
		}

	case t.IsInteger():
		if n, ok := keycodec.ToInt64(v); ok {
			if t.Holds(n) {
				return qb.Literal(strconv.FormatInt(n, 10)), nil
			}
			break
		}
		switch n := v.(type) {
		case *big.Int:
			if t == keycodec.Varint || (n.IsInt64() && t.Holds(n.Int64())) {
				return qb.Literal(n.String()), nil
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil && t.Holds(i) {
				return qb.Literal(n), nil
			}
		}

	case t == "float" || t == "double" || t == "decimal":
		switch f := v.(type) {
		case float32:
			return qb.Literal(strconv.FormatFloat(float64(f), 'f', -1, 32)), nil
		case float64:
			return qb.Literal(strconv.FormatFloat(f, 'f', -1, 64)), nil
		case decimal.Decimal:
			return qb.Literal(f.String()), nil
		case string:
			if _, err := decimal.NewFromString(f); err == nil {
				return qb.Literal(f), nil
			}
		}
		if n, ok := keycodec.ToInt64(v); ok {
			return qb.Literal(strconv.FormatInt(n, 10)), nil
		}

	case t.IsUUID():
		if u, ok := keycodec.ToUUID(v); ok {
			return qb.Literal(u.String()), nil
		}

	case t == keycodec.Boolean:
		if b, ok := v.(bool); ok {
			return qb.Literal(strconv.FormatBool(b)), nil
		}

	case t == keycodec.Timestamp:
		switch ts := v.(type) {
		case time.Time:
			return quote(ts.UTC().Format(cqlTimestampFormat)), nil
		case int64:
			return qb.Literal(strconv.FormatInt(ts, 10)), nil
		}

	default:
		return quote(fmt.Sprint(v)), nil
	}
	return "", &errs.TypeMismatchError{Codec: string(t) + " literal", Value: v}
}

// escapeBound renders a range bound. A time bound on a timeuuid column
// becomes minTimeuuid or maxTimeuuid so the range covers every uuid of that
// instant.
func escapeBound(v interface{}, t keycodec.FieldType, lower bool) (qb.Literal, error) {
	if ts, ok := v.(time.Time); ok && t == keycodec.Timeuuid {
		fn := "maxTimeuuid"
		if lower {
			fn = "minTimeuuid"
		}
		return qb.Literal(fmt.Sprintf("%s(%s)", fn, quote(ts.UTC().Format(cqlTimestampFormat)))), nil
	}
	return Escape(v, t)
}

func quote(s string) qb.Literal {
	return qb.Literal("'" + strings.Replace(s, "'", "''", -1) + "'")
}
