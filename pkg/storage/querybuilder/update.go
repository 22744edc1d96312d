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

	"github.com/lann/builder"
)

// setClause is one assignment of an UPDATE.
type setClause struct {
	column string
	value  Sqlizer
}

// increment is "column = column + n" on a counter.
type increment struct {
	column string
	amount int64
}

func (i increment) ToCQL() (string, error) {
	if i.amount < 0 {
		return fmt.Sprintf("%s = %s - %d", i.column, i.column, -i.amount), nil
	}
	return fmt.Sprintf("%s = %s + %d", i.column, i.column, i.amount), nil
}

func (s setClause) ToCQL() (string, error) {
	v, err := s.value.ToCQL()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", s.column, v), nil
}

type updateData struct {
	Table      string
	SetClauses exprs
	WhereParts exprs
	Usings     exprs
}

func (d *updateData) ToCQL() (string, error) {
	if len(d.Table) == 0 {
		return "", fmt.Errorf("update statements must specify a table")
	}
	if len(d.SetClauses) == 0 {
		return "", fmt.Errorf("update statements must have at least one Set clause")
	}
	if len(d.WhereParts) == 0 {
		return "", fmt.Errorf("update statements must have a Where clause")
	}

	cql := &bytes.Buffer{}
	cql.WriteString("UPDATE ")
	cql.WriteString(QuoteIdentifier(d.Table))
	if len(d.Usings) > 0 {
		cql.WriteString(" USING ")
		if err := d.Usings.appendToCQL(cql, " AND "); err != nil {
			return "", err
		}
	}
	cql.WriteString(" SET ")
	if err := d.SetClauses.appendToCQL(cql, ", "); err != nil {
		return "", err
	}
	cql.WriteString(" WHERE ")
	if err := d.WhereParts.appendToCQL(cql, " AND "); err != nil {
		return "", err
	}
	return cql.String(), nil
}

// UpdateBuilder builds CQL UPDATE statements.
type UpdateBuilder builder.Builder

func init() {
	builder.Register(UpdateBuilder{}, updateData{})
}

// Update returns a builder for an update of table.
func Update(table string) UpdateBuilder {
	return UpdateBuilder(builder.EmptyBuilder).Table(table)
}

// ToCQL builds the statement text.
func (b UpdateBuilder) ToCQL() (string, error) {
	data := builder.GetStruct(b).(updateData)
	return data.ToCQL()
}

// StmtType returns type of the statement
func (b UpdateBuilder) StmtType() StmtType {
	return UpdateStmtType
}

// Table sets the table to be updated.
func (b UpdateBuilder) Table(table string) UpdateBuilder {
	return builder.Set(b, "Table", table).(UpdateBuilder)
}

// Set adds SET clauses to the query.
func (b UpdateBuilder) Set(column string, value Sqlizer) UpdateBuilder {
	return builder.Append(b, "SetClauses", setClause{column: column, value: value}).(UpdateBuilder)
}

// Increment adds amount to a counter column. Negative amounts decrement.
func (b UpdateBuilder) Increment(column string, amount int64) UpdateBuilder {
	return builder.Append(b, "SetClauses", increment{column: column, amount: amount}).(UpdateBuilder)
}

// Where adds conditions joined with AND, in the order given.
func (b UpdateBuilder) Where(preds ...Sqlizer) UpdateBuilder {
	return builder.Extend(b, "WhereParts", preds).(UpdateBuilder)
}

// TTL expires the updated cells after seconds. Zero or less is ignored.
func (b UpdateBuilder) TTL(seconds int64) UpdateBuilder {
	if seconds <= 0 {
		return b
	}
	return builder.Append(b, "Usings", using{"TTL", seconds}).(UpdateBuilder)
}
