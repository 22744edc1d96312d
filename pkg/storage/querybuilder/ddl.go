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
)

// Column is a column definition of a CREATE TABLE statement.
type Column struct {
	Name string
	Type string
}

// CreateTable builds a CREATE TABLE statement. The first PartitionKeys
// columns form the partition key, the following ClusteringKeys columns
// the clustering key.
type CreateTable struct {
	Name            string
	Columns         []Column
	PartitionKeys   []string
	ClusteringKeys  []string
	ClusteringOrder string
	IfNotExists     bool
}

// ToCQL builds the statement text.
func (c CreateTable) ToCQL() (string, error) {
	if len(c.Name) == 0 {
		return "", fmt.Errorf("create table statements must specify a table")
	}
	if len(c.Columns) == 0 || len(c.PartitionKeys) == 0 {
		return "", fmt.Errorf("table %s needs columns and a partition key", c.Name)
	}

	cql := &bytes.Buffer{}
	cql.WriteString("CREATE TABLE ")
	if c.IfNotExists {
		cql.WriteString("IF NOT EXISTS ")
	}
	cql.WriteString(QuoteIdentifier(c.Name))
	cql.WriteString(" (")
	for _, col := range c.Columns {
		fmt.Fprintf(cql, "%s %s, ", col.Name, col.Type)
	}

	pk := c.PartitionKeys[0]
	if len(c.PartitionKeys) > 1 {
		pk = "(" + strings.Join(c.PartitionKeys, ", ") + ")"
	}
	keys := append([]string{pk}, c.ClusteringKeys...)
	fmt.Fprintf(cql, "PRIMARY KEY (%s))", strings.Join(keys, ", "))

	if len(c.ClusteringKeys) > 0 {
		order := c.ClusteringOrder
		if order == "" {
			order = ASC
		}
		orders := make([]string, 0, len(c.ClusteringKeys))
		for _, k := range c.ClusteringKeys {
			orders = append(orders, k+" "+order)
		}
		fmt.Fprintf(cql, " WITH CLUSTERING ORDER BY (%s)", strings.Join(orders, ", "))
	}
	return cql.String(), nil
}

// StmtType returns type of the statement
func (c CreateTable) StmtType() StmtType {
	return SchemaStmtType
}

// DropTable builds a DROP TABLE IF EXISTS statement.
type DropTable string

// ToCQL builds the statement text.
func (d DropTable) ToCQL() (string, error) {
	if len(d) == 0 {
		return "", fmt.Errorf("drop table statements must specify a table")
	}
	return "DROP TABLE IF EXISTS " + QuoteIdentifier(string(d)), nil
}

// StmtType returns type of the statement
func (d DropTable) StmtType() StmtType {
	return SchemaStmtType
}
