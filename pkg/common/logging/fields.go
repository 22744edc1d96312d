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

package logging

// Log field names shared by the storage packages.
const (
	// DBStmtLogField holds the CQL text of a statement.
	DBStmtLogField = "db_stmt"
	// DBArgsLogField holds the bound arguments of a statement.
	DBArgsLogField = "db_args"
	// ColumnFamilyLogField holds the column family an operation works on.
	ColumnFamilyLogField = "column_family"
	// OperationLogField holds the adapter operation name.
	OperationLogField = "operation"
	// KeyLogField holds the row key of an operation.
	KeyLogField = "key"
)

// AppLogField is the name of the field holding the application name.
const AppLogField = "app"
