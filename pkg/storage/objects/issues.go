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

package objects

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/migrations"
	"github.com/sessionm/cassandra-object/pkg/storage/objects/base"
)

// VotesColumn is the counter column holding the votes of an issue.
const VotesColumn = "votes"

// IssueObject corresponds to a row in the Issues column family. Worth is the
// estimated value of fixing the issue; ClosedOn is nil while it is open.
type IssueObject struct {
	base.Object `cassandra:"name=Issues, write_consistency=quorum"`
	Title       string                  `column:"name=title"`
	Description string                  `column:"name=description"`
	Worth       decimal.Decimal         `column:"name=worth, precision=12"`
	Labels      mapset.Set[interface{}] `column:"name=labels"`
	Closed      bool                    `column:"name=closed"`
	ClosedOn    *time.Time              `column:"name=closed_on, type=date"`
	CreatedAt   time.Time               `column:"name=created_at"`
	UpdatedAt   time.Time               `column:"name=updated_at"`
}

// Migrations upgrade issues stored by older releases. Version 1 renamed
// summary to title, version 2 replaced the state attribute with closed.
func (o *IssueObject) Migrations() []migrations.Migration {
	return []migrations.Migration{
		{Version: 1, Transform: renameAttribute("summary", "title")},
		{Version: 2, Transform: func(attrs map[string]string) error {
			state, ok := attrs["state"]
			if !ok {
				return nil
			}
			delete(attrs, "state")
			switch state {
			case "open":
				attrs["closed"] = "0"
			case "closed":
				attrs["closed"] = "1"
			default:
				return errors.Errorf("unknown issue state %q", state)
			}
			return nil
		}},
	}
}

func renameAttribute(from, to string) migrations.Transform {
	return func(attrs map[string]string) error {
		if v, ok := attrs[from]; ok {
			attrs[to] = v
			delete(attrs, from)
		}
		return nil
	}
}

// IssueCounterObject corresponds to a row of counters in the Counters column
// family, keyed like the issue it counts for.
type IssueCounterObject struct {
	base.Object `cassandra:"name=Counters, key=natural"`
}

// IssueOps provides methods for manipulating the Issues column family.
type IssueOps interface {
	// Create inserts a new issue and returns it with its generated key.
	Create(
		ctx context.Context,
		title string,
		description string,
		worth decimal.Decimal,
		labels ...string,
	) (*IssueObject, error)

	// Get retrieves one issue.
	Get(ctx context.Context, id string) (*IssueObject, error)

	// GetMany retrieves the issues of ids, in the order given. Missing
	// issues are skipped.
	GetMany(ctx context.Context, ids ...string) ([]*IssueObject, error)

	// GetAll retrieves up to limit issues ordered by key.
	GetAll(ctx context.Context, limit int) ([]*IssueObject, error)

	// Update writes the changed attributes of issue.
	Update(ctx context.Context, issue *IssueObject) error

	// Close marks the issue closed on the day of closedOn.
	Close(ctx context.Context, id string, closedOn time.Time) error

	// Delete removes the issue and its votes.
	Delete(ctx context.Context, id string) error

	// Vote adds delta to the votes of the issue.
	Vote(ctx context.Context, id string, delta int64) error

	// Votes returns the votes of the issue, 0 when it never got any.
	Votes(ctx context.Context, id string) (int64, error)
}

// issueOps implements IssueOps using a particular Store.
type issueOps struct {
	store *Store
}

// init adds the issue objects to the global list of storage objects.
func init() {
	Objs = append(Objs, &IssueObject{}, &IssueCounterObject{})
}

// Default issueOps implementation.
var _ IssueOps = (*issueOps)(nil)

// NewIssueOps constructs an IssueOps object for provided Store.
func NewIssueOps(s *Store) IssueOps {
	return &issueOps{store: s}
}

func (i *issueOps) Create(
	ctx context.Context,
	title string,
	description string,
	worth decimal.Decimal,
	labels ...string,
) (*IssueObject, error) {
	obj := &IssueObject{
		Title:       title,
		Description: description,
		Worth:       worth,
	}
	if len(labels) > 0 {
		obj.Labels = mapset.NewSet[interface{}]()
		for _, l := range labels {
			obj.Labels.Add(l)
		}
	}

	if err := i.store.oClient.Save(ctx, obj); err != nil {
		i.store.metrics.OrmIssueMetrics.IssueCreateFail.Inc(1)
		return nil, errors.Wrap(err, "Failed to create issue")
	}
	i.store.metrics.OrmIssueMetrics.IssueCreate.Inc(1)
	return obj, nil
}

func (i *issueOps) Get(ctx context.Context, id string) (*IssueObject, error) {
	start := time.Now()
	obj := &IssueObject{}
	if err := i.store.oClient.Find(ctx, obj, id); err != nil {
		if errs.IsNotFound(err) {
			i.store.metrics.OrmIssueMetrics.IssueNotFound.Inc(1)
			return nil, err
		}
		i.store.metrics.OrmIssueMetrics.IssueGetFail.Inc(1)
		return nil, err
	}
	i.store.metrics.OrmIssueMetrics.IssueGet.Inc(1)
	i.store.metrics.OrmIssueMetrics.IssueGetDuration.Record(time.Since(start))
	return obj, nil
}

func (i *issueOps) GetMany(ctx context.Context, ids ...string) ([]*IssueObject, error) {
	found, err := i.store.oClient.FindMany(ctx, &IssueObject{}, ids...)
	if err != nil {
		i.store.metrics.OrmIssueMetrics.IssueGetFail.Inc(1)
		return nil, err
	}
	i.store.metrics.OrmIssueMetrics.IssueGet.Inc(int64(len(found)))
	return toIssues(found), nil
}

func (i *issueOps) GetAll(ctx context.Context, limit int) ([]*IssueObject, error) {
	found, err := i.store.oClient.All(ctx, &IssueObject{}, limit)
	if err != nil {
		i.store.metrics.OrmIssueMetrics.IssueGetAllFail.Inc(1)
		return nil, err
	}
	i.store.metrics.OrmIssueMetrics.IssueGetAll.Inc(1)
	return toIssues(found), nil
}

func toIssues(found []base.Entity) []*IssueObject {
	issues := make([]*IssueObject, 0, len(found))
	for _, e := range found {
		issues = append(issues, e.(*IssueObject))
	}
	return issues
}

func (i *issueOps) Update(ctx context.Context, issue *IssueObject) error {
	if err := i.store.oClient.Save(ctx, issue); err != nil {
		if errs.IsReadOnly(err) {
			i.store.metrics.OrmIssueMetrics.IssueReadOnlyFail.Inc(1)
		}
		i.store.metrics.OrmIssueMetrics.IssueUpdateFail.Inc(1)
		return err
	}
	i.store.metrics.OrmIssueMetrics.IssueUpdate.Inc(1)
	return nil
}

func (i *issueOps) Close(ctx context.Context, id string, closedOn time.Time) error {
	issue, err := i.Get(ctx, id)
	if err != nil {
		return err
	}
	if issue.Closed {
		log.WithField("issue", id).Debug("issue already closed")
		return nil
	}
	day := time.Date(closedOn.Year(), closedOn.Month(), closedOn.Day(), 0, 0, 0, 0, time.UTC)
	issue.Closed = true
	issue.ClosedOn = &day
	return i.Update(ctx, issue)
}

func (i *issueOps) Delete(ctx context.Context, id string) error {
	obj := &IssueObject{}
	obj.SetKey(id)
	if err := i.store.oClient.Destroy(ctx, obj); err != nil {
		i.store.metrics.OrmIssueMetrics.IssueDeleteFail.Inc(1)
		return err
	}

	counters := &IssueCounterObject{}
	counters.SetKey(id)
	if err := i.store.oClient.Destroy(ctx, counters); err != nil {
		i.store.metrics.OrmIssueMetrics.IssueDeleteFail.Inc(1)
		return err
	}
	i.store.metrics.OrmIssueMetrics.IssueDelete.Inc(1)
	return nil
}

func (i *issueOps) Vote(ctx context.Context, id string, delta int64) error {
	if err := i.store.oClient.Add(ctx, &IssueCounterObject{}, id, delta, VotesColumn); err != nil {
		i.store.metrics.OrmCounterMetrics.CounterAddFail.Inc(1)
		return err
	}
	i.store.metrics.OrmCounterMetrics.CounterAdd.Inc(1)
	return nil
}

func (i *issueOps) Votes(ctx context.Context, id string) (int64, error) {
	n, err := i.store.oClient.GetCounter(ctx, &IssueCounterObject{}, id, VotesColumn)
	if errs.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		i.store.metrics.OrmCounterMetrics.CounterGetFail.Inc(1)
		return 0, err
	}
	i.store.metrics.OrmCounterMetrics.CounterGet.Inc(1)
	return n, nil
}
