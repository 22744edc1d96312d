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
)

// Batch groups mutation statements into one atomic
// BEGIN BATCH ... APPLY BATCH statement.
type Batch struct {
	Unlogged   bool
	Statements []Statement
}

// NewBatch returns a logged batch of stmts.
func NewBatch(stmts ...Statement) *Batch {
	return &Batch{Statements: stmts}
}

// Add appends statements to the batch.
func (b *Batch) Add(stmts ...Statement) {
	b.Statements = append(b.Statements, stmts...)
}

// Len returns the number of statements in the batch.
func (b *Batch) Len() int {
	return len(b.Statements)
}

// ToCQL renders one statement per line between the batch markers.
func (b *Batch) ToCQL() (string, error) {
	if len(b.Statements) == 0 {
		return "", fmt.Errorf("batch has no statements")
	}
	cql := &bytes.Buffer{}
	if b.Unlogged {
		cql.WriteString("BEGIN UNLOGGED BATCH\n")
	} else {
		cql.WriteString("BEGIN BATCH\n")
	}
	for _, stmt := range b.Statements {
		if !stmt.StmtType().IsMutation() || stmt.StmtType() == BatchStmtType {
			return "", fmt.Errorf("%s statements cannot be batched", stmt.StmtType())
		}
		s, err := stmt.ToCQL()
		if err != nil {
			return "", err
		}
		cql.WriteString(s)
		cql.WriteString("\n")
	}
	cql.WriteString("APPLY BATCH")
	return cql.String(), nil
}

// StmtType returns type of the statement
func (b *Batch) StmtType() StmtType {
	return BatchStmtType
}

// Truncate removes every row of a table.
type Truncate string

// ToCQL builds the statement text.
func (t Truncate) ToCQL() (string, error) {
	if len(t) == 0 {
		return "", fmt.Errorf("truncate statements must specify a table")
	}
	return "TRUNCATE " + QuoteIdentifier(string(t)), nil
}

// StmtType returns type of the statement
func (t Truncate) StmtType() StmtType {
	return TruncateStmtType
}
