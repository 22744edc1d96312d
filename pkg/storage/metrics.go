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

package storage

import (
	"github.com/uber-go/tally/v4"
)

// OrmIssueMetrics tracks counters for the Issues column family accessed
// through the ORM layer.
type OrmIssueMetrics struct {
	IssueCreate       tally.Counter
	IssueCreateFail   tally.Counter
	IssueGet          tally.Counter
	IssueGetFail      tally.Counter
	IssueNotFound     tally.Counter
	IssueGetAll       tally.Counter
	IssueGetAllFail   tally.Counter
	IssueUpdate       tally.Counter
	IssueUpdateFail   tally.Counter
	IssueDelete       tally.Counter
	IssueDeleteFail   tally.Counter
	IssueGetDuration  tally.Timer
	IssueReadOnlyFail tally.Counter
}

// OrmCounterMetrics tracks counters for the Counters column family.
type OrmCounterMetrics struct {
	CounterAdd     tally.Counter
	CounterAddFail tally.Counter
	CounterGet     tally.Counter
	CounterGetFail tally.Counter
}

// Metrics is the struct containing all the counters that track internal
// state of the storage objects.
type Metrics struct {
	OrmIssueMetrics   *OrmIssueMetrics
	OrmCounterMetrics *OrmCounterMetrics
}

// NewMetrics returns a new Metrics struct, with all metrics initialized and
// rooted at the given tally.Scope
func NewMetrics(scope tally.Scope) *Metrics {
	issueScope := scope.SubScope("issue")
	issueSuccessScope := issueScope.Tagged(map[string]string{"result": "success"})
	issueFailScope := issueScope.Tagged(map[string]string{"result": "fail"})
	issueNotFoundScope := issueScope.Tagged(map[string]string{"result": "not_found"})

	counterScope := scope.SubScope("counter")
	counterSuccessScope := counterScope.Tagged(map[string]string{"result": "success"})
	counterFailScope := counterScope.Tagged(map[string]string{"result": "fail"})

	ormIssueMetrics := &OrmIssueMetrics{
		IssueCreate:       issueSuccessScope.Counter("create"),
		IssueCreateFail:   issueFailScope.Counter("create"),
		IssueGet:          issueSuccessScope.Counter("get"),
		IssueGetFail:      issueFailScope.Counter("get"),
		IssueNotFound:     issueNotFoundScope.Counter("get"),
		IssueGetAll:       issueSuccessScope.Counter("getAll"),
		IssueGetAllFail:   issueFailScope.Counter("getAll"),
		IssueUpdate:       issueSuccessScope.Counter("update"),
		IssueUpdateFail:   issueFailScope.Counter("update"),
		IssueDelete:       issueSuccessScope.Counter("delete"),
		IssueDeleteFail:   issueFailScope.Counter("delete"),
		IssueGetDuration:  issueSuccessScope.Timer("get_duration"),
		IssueReadOnlyFail: issueFailScope.Counter("read_only"),
	}

	ormCounterMetrics := &OrmCounterMetrics{
		CounterAdd:     counterSuccessScope.Counter("add"),
		CounterAddFail: counterFailScope.Counter("add"),
		CounterGet:     counterSuccessScope.Counter("get"),
		CounterGetFail: counterFailScope.Counter("get"),
	}

	return &Metrics{
		OrmIssueMetrics:   ormIssueMetrics,
		OrmCounterMetrics: ormCounterMetrics,
	}
}
