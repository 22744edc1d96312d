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

type deleteData struct {
	From       string
	WhereParts exprs
	Usings     exprs
}

func (d *deleteData) ToCQL() (string, error) {
	if len(d.From) == 0 {
		return "", fmt.Errorf("delete statements must specify a From table")
	}
	if len(d.WhereParts) == 0 {
		return "", fmt.Errorf("delete statements must have a Where clause")
	}

	cql := &bytes.Buffer{}
	cql.WriteString("DELETE FROM ")
	cql.WriteString(QuoteIdentifier(d.From))
	if len(d.Usings) > 0 {
		cql.WriteString(" USING ")
		if err := d.Usings.appendToCQL(cql, " AND "); err != nil {
			return "", err
		}
	}
	cql.WriteString(" WHERE ")
	if err := d.WhereParts.appendToCQL(cql, " AND "); err != nil {
		return "", err
	}
	return cql.String(), nil
}

// DeleteBuilder builds CQL DELETE statements.
type DeleteBuilder builder.Builder

func init() {
	builder.Register(DeleteBuilder{}, deleteData{})
}

// Delete returns a builder for a delete from table.
func Delete(from string) DeleteBuilder {
	return DeleteBuilder(builder.EmptyBuilder).From(from)
}

// ToCQL builds the statement text.
func (b DeleteBuilder) ToCQL() (string, error) {
	data := builder.GetStruct(b).(deleteData)
	return data.ToCQL()
}

// StmtType returns type of the statement
func (b DeleteBuilder) StmtType() StmtType {
	return DeleteStmtType
}

// From sets the table to be deleted from.
func (b DeleteBuilder) From(from string) DeleteBuilder {
	return builder.Set(b, "From", from).(DeleteBuilder)
}

// Where adds conditions joined with AND, in the order given.
func (b DeleteBuilder) Where(preds ...Sqlizer) DeleteBuilder {
	return builder.Extend(b, "WhereParts", preds).(DeleteBuilder)
}

// Timestamp deletes only cells written before micros. Zero is ignored.
func (b DeleteBuilder) Timestamp(micros int64) DeleteBuilder {
	if micros == 0 {
		return b
	}
	return builder.Append(b, "Usings", using{"TIMESTAMP", micros}).(DeleteBuilder)
}
