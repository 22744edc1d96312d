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

package impl

import (
	"context"

	"github.com/gocql/gocql"
)

// session is the part of a gocql session the store uses.
type session interface {
	query(ctx context.Context, q *query) ([]map[string]interface{}, error)
	Close()
	Closed() bool
}

// query is one statement execution request.
type query struct {
	cql         string
	args        []interface{}
	consistency gocql.Consistency
	pageSize    int
	idempotent  bool
	read        bool
}

type gocqlSession struct {
	*gocql.Session
}

func (s gocqlSession) query(ctx context.Context, q *query) ([]map[string]interface{}, error) {
	cq := s.Query(q.cql, q.args...).
		WithContext(ctx).
		Consistency(q.consistency).
		Idempotent(q.idempotent)
	if q.pageSize > 0 {
		cq = cq.PageSize(q.pageSize)
	}
	if !q.read {
		return nil, cq.Exec()
	}

	iter := cq.Iter()
	rows, err := iter.SliceMap()
	if cerr := iter.Close(); err == nil {
		err = cerr
	}
	return rows, err
}
