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

// Package querybuilder builds CQL statement text.
//
// Values are rendered inline as CQL literals rather than bound, so any
// statement can be concatenated into a BEGIN BATCH ... APPLY BATCH block.
// Callers escape values with the adapter before handing them over as
// Literal.
package querybuilder

import (
	"strings"
)

// StmtType is the kind of statement.
type StmtType int

// Statement kinds.
const (
	SelectStmtType StmtType = iota
	InsertStmtType
	UpdateStmtType
	DeleteStmtType
	BatchStmtType
	TruncateStmtType
	SchemaStmtType
)

func (t StmtType) String() string {
	switch t {
	case SelectStmtType:
		return "select"
	case InsertStmtType:
		return "insert"
	case UpdateStmtType:
		return "update"
	case DeleteStmtType:
		return "delete"
	case BatchStmtType:
		return "batch"
	case TruncateStmtType:
		return "truncate"
	case SchemaStmtType:
		return "schema"
	}
	return "unknown"
}

// IsMutation reports whether statements of this kind change data.
func (t StmtType) IsMutation() bool {
	return t == InsertStmtType || t == UpdateStmtType || t == DeleteStmtType || t == BatchStmtType
}

// Sqlizer is anything that renders to a CQL fragment.
type Sqlizer interface {
	ToCQL() (string, error)
}

// Statement is a complete CQL statement.
type Statement interface {
	Sqlizer
	StmtType() StmtType
}

// Literal is an already escaped CQL literal, such as 'text', 0x6b31 or 42.
type Literal string

// ToCQL returns the literal unchanged.
func (l Literal) ToCQL() (string, error) {
	return string(l), nil
}

// Raw is a complete statement supplied as text.
type Raw struct {
	CQL  string
	Type StmtType
}

// ToCQL returns the statement text.
func (r Raw) ToCQL() (string, error) {
	return r.CQL, nil
}

// StmtType returns the declared statement kind.
func (r Raw) StmtType() StmtType {
	return r.Type
}

// QuoteIdentifier double quotes a table name so mixed case names survive.
func QuoteIdentifier(name string) string {
	return `"` + strings.Replace(name, `"`, `""`, -1) + `"`
}
