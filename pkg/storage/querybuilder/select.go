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

// Ordering directions.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

type selectData struct {
	Distinct   bool
	Columns    []string
	From       string
	WhereParts exprs
	OrderBys   []string
	Limit      int
}

func (d *selectData) ToCQL() (string, error) {
	if len(d.Columns) == 0 {
		return "", fmt.Errorf("select statements must have at least one result column")
	}
	if len(d.From) == 0 {
		return "", fmt.Errorf("select statements must specify a table")
	}

	cql := &bytes.Buffer{}
	cql.WriteString("SELECT ")
	if d.Distinct {
		cql.WriteString("DISTINCT ")
	}
	cql.WriteString(strings.Join(d.Columns, ", "))
	cql.WriteString(" FROM ")
	cql.WriteString(QuoteIdentifier(d.From))

	if len(d.WhereParts) > 0 {
		cql.WriteString(" WHERE ")
		if err := d.WhereParts.appendToCQL(cql, " AND "); err != nil {
			return "", err
		}
	}
	if len(d.OrderBys) > 0 {
		cql.WriteString(" ORDER BY ")
		cql.WriteString(strings.Join(d.OrderBys, ", "))
	}
	if d.Limit > 0 {
		fmt.Fprintf(cql, " LIMIT %d", d.Limit)
	}
	return cql.String(), nil
}

// SelectBuilder builds CQL SELECT statements.
type SelectBuilder builder.Builder

func init() {
	builder.Register(SelectBuilder{}, selectData{})
}

// Select returns a builder selecting columns.
func Select(columns ...string) SelectBuilder {
	return SelectBuilder(builder.EmptyBuilder).Columns(columns...)
}

// ToCQL builds the statement text.
func (b SelectBuilder) ToCQL() (string, error) {
	data := builder.GetStruct(b).(selectData)
	return data.ToCQL()
}

// StmtType returns type of the statement
func (b SelectBuilder) StmtType() StmtType {
	return SelectStmtType
}

// Distinct adds a DISTINCT clause to the query.
func (b SelectBuilder) Distinct() SelectBuilder {
	return builder.Set(b, "Distinct", true).(SelectBuilder)
}

// Columns adds result columns to the query.
func (b SelectBuilder) Columns(columns ...string) SelectBuilder {
	return builder.Extend(b, "Columns", columns).(SelectBuilder)
}

// From sets the FROM clause of the query.
func (b SelectBuilder) From(from string) SelectBuilder {
	return builder.Set(b, "From", from).(SelectBuilder)
}

// Where adds conditions joined with AND, in the order given.
func (b SelectBuilder) Where(preds ...Sqlizer) SelectBuilder {
	return builder.Extend(b, "WhereParts", preds).(SelectBuilder)
}

// OrderBy orders the result by column in direction (ASC or DESC).
func (b SelectBuilder) OrderBy(column, direction string) SelectBuilder {
	return builder.Append(b, "OrderBys", column+" "+direction).(SelectBuilder)
}

// Limit sets a LIMIT clause. Zero or less means no limit.
func (b SelectBuilder) Limit(limit int) SelectBuilder {
	return builder.Set(b, "Limit", limit).(SelectBuilder)
}
