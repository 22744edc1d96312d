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

package querybuilder

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lann/builder"
)

type insertData struct {
	Into    string
	Columns []string
	Values  []Sqlizer
	Usings  exprs
}

func (d *insertData) ToCQL() (string, error) {
	if len(d.Into) == 0 {
		return "", fmt.Errorf("insert statements must specify a table")
	}
	if len(d.Values) == 0 {
		return "", fmt.Errorf("insert statements must have at least one set of values")
	}
	if len(d.Columns) != len(d.Values) {
		return "", fmt.Errorf("insert into %s has %d columns and %d values",
			d.Into, len(d.Columns), len(d.Values))
	}

	cql := &bytes.Buffer{}
	cql.WriteString("INSERT INTO ")
	cql.WriteString(QuoteIdentifier(d.Into))
	cql.WriteString(" (")
	cql.WriteString(strings.Join(d.Columns, ", "))
	cql.WriteString(") VALUES (")
	if err := exprs(d.Values).appendToCQL(cql, ", "); err != nil {
		return "", err
	}
	cql.WriteString(")")

	if len(d.Usings) > 0 {
		cql.WriteString(" USING ")
		if err := d.Usings.appendToCQL(cql, " AND "); err != nil {
			return "", err
		}
	}
	return cql.String(), nil
}

// InsertBuilder builds CQL INSERT statements.
type InsertBuilder builder.Builder

func init() {
	builder.Register(InsertBuilder{}, insertData{})
}

// Insert returns a builder for an insert into table.
func Insert(into string) InsertBuilder {
	return InsertBuilder(builder.EmptyBuilder).Into(into)
}

// ToCQL builds the statement text.
func (b InsertBuilder) ToCQL() (string, error) {
	data := builder.GetStruct(b).(insertData)
	return data.ToCQL()
}

// StmtType returns type of the statement
func (b InsertBuilder) StmtType() StmtType {
	return InsertStmtType
}

// Into sets the INTO clause of the query.
func (b InsertBuilder) Into(from string) InsertBuilder {
	return builder.Set(b, "Into", from).(InsertBuilder)
}

// Columns adds insert columns to the query.
func (b InsertBuilder) Columns(columns ...string) InsertBuilder {
	return builder.Extend(b, "Columns", columns).(InsertBuilder)
}

// Values adds the values of the row, in column order.
func (b InsertBuilder) Values(values ...Sqlizer) InsertBuilder {
	return builder.Extend(b, "Values", values).(InsertBuilder)
}

// TTL expires the written cells after seconds. Zero or less is ignored.
func (b InsertBuilder) TTL(seconds int64) InsertBuilder {
	if seconds <= 0 {
		return b
	}
	return builder.Append(b, "Usings", using{"TTL", seconds}).(InsertBuilder)
}

// Timestamp sets the write timestamp in microseconds. Zero is ignored.
func (b InsertBuilder) Timestamp(micros int64) InsertBuilder {
	if micros == 0 {
		return b
	}
	return builder.Append(b, "Usings", using{"TIMESTAMP", micros}).(InsertBuilder)
}
