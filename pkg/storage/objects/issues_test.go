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
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/storage"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/objects/base"
	"github.com/sessionm/cassandra-object/pkg/storage/orm"
	ormmocks "github.com/sessionm/cassandra-object/pkg/storage/orm/mocks"
)

const testIssueID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

type IssueObjectTestSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	mockClient *ormmocks.MockClient
	scope      tally.TestScope
	ops        IssueOps
}

func TestIssueObjectSuite(t *testing.T) {
	suite.Run(t, new(IssueObjectTestSuite))
}

func (s *IssueObjectTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = ormmocks.NewMockClient(s.ctrl)
	s.scope = tally.NewTestScope("", nil)
	s.ops = NewIssueOps(&Store{
		oClient: s.mockClient,
		metrics: storage.NewMetrics(s.scope),
	})
}

func (s *IssueObjectTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *IssueObjectTestSuite) counter(name string, result string) int64 {
	for _, c := range s.scope.Snapshot().Counters() {
		if c.Name() == name && c.Tags()["result"] == result {
			return c.Value()
		}
	}
	return 0
}

// TestCreateIssue tests creating an issue with labels.
func (s *IssueObjectTestSuite) TestCreateIssue() {
	s.mockClient.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e base.Entity) error {
			issue := e.(*IssueObject)
			s.Equal("crash", issue.Title)
			s.True(issue.Labels.Contains("bug"))
			issue.SetKey(testIssueID)
			return nil
		})

	issue, err := s.ops.Create(s.ctx, "crash", "on start", decimal.RequireFromString("10.5"), "bug", "p1")
	s.NoError(err)
	s.Equal(testIssueID, issue.Key())
	s.Equal(2, issue.Labels.Cardinality())
	s.Equal(int64(1), s.counter("issue.create", "success"))
}

// TestCreateIssueFail tests failure cases due to ORM Client errors.
func (s *IssueObjectTestSuite) TestCreateIssueFail() {
	s.mockClient.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errs.Timeoutf("timed out"))

	_, err := s.ops.Create(s.ctx, "crash", "", decimal.Zero)
	s.Error(err)
	s.True(errs.IsTimeout(err))
	s.Equal(int64(1), s.counter("issue.create", "fail"))
}

func (s *IssueObjectTestSuite) TestGetIssue() {
	gomock.InOrder(
		s.mockClient.EXPECT().Find(gomock.Any(), gomock.Any(), testIssueID).
			DoAndReturn(func(_ context.Context, e base.Entity, id string) error {
				e.(*IssueObject).Title = "crash"
				return nil
			}),
		s.mockClient.EXPECT().Find(gomock.Any(), gomock.Any(), "missing").
			Return(errs.NotFoundf("missing")),
	)

	issue, err := s.ops.Get(s.ctx, testIssueID)
	s.NoError(err)
	s.Equal("crash", issue.Title)

	_, err = s.ops.Get(s.ctx, "missing")
	s.True(errs.IsNotFound(err))
	s.Equal(int64(1), s.counter("issue.get", "not_found"))
	s.Equal(int64(0), s.counter("issue.get", "fail"))
}

func (s *IssueObjectTestSuite) TestGetManyAndAll() {
	one, two := &IssueObject{Title: "one"}, &IssueObject{Title: "two"}
	s.mockClient.EXPECT().FindMany(gomock.Any(), gomock.Any(), "b", "a").
		Return([]base.Entity{two, one}, nil)
	s.mockClient.EXPECT().All(gomock.Any(), gomock.Any(), 10).
		Return([]base.Entity{one, two}, nil)

	issues, err := s.ops.GetMany(s.ctx, "b", "a")
	s.NoError(err)
	s.Equal([]*IssueObject{two, one}, issues)

	issues, err = s.ops.GetAll(s.ctx, 10)
	s.NoError(err)
	s.Equal([]*IssueObject{one, two}, issues)
}

func (s *IssueObjectTestSuite) TestCloseIssue() {
	s.mockClient.EXPECT().Find(gomock.Any(), gomock.Any(), testIssueID).Return(nil)
	s.mockClient.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e base.Entity) error {
			issue := e.(*IssueObject)
			s.True(issue.Closed)
			s.Equal(time.Date(2019, 5, 6, 0, 0, 0, 0, time.UTC), *issue.ClosedOn)
			return nil
		})

	closedOn := time.Date(2019, 5, 6, 17, 30, 0, 0, time.UTC)
	s.NoError(s.ops.Close(s.ctx, testIssueID, closedOn))
	s.Equal(int64(1), s.counter("issue.update", "success"))
}

func (s *IssueObjectTestSuite) TestUpdateReadOnlyIssue() {
	s.mockClient.EXPECT().Save(gomock.Any(), gomock.Any()).
		Return(&errs.ReadOnlyError{Key: testIssueID})

	issue := &IssueObject{}
	issue.SetReadOnly(true)
	err := s.ops.Update(s.ctx, issue)
	s.True(errs.IsReadOnly(err))
	s.Equal(int64(1), s.counter("issue.read_only", "fail"))
}

func (s *IssueObjectTestSuite) TestDeleteIssue() {
	gomock.InOrder(
		s.mockClient.EXPECT().Destroy(gomock.Any(), gomock.AssignableToTypeOf(&IssueObject{})).Return(nil),
		s.mockClient.EXPECT().Destroy(gomock.Any(), gomock.AssignableToTypeOf(&IssueCounterObject{})).Return(nil),
	)
	s.NoError(s.ops.Delete(s.ctx, testIssueID))
	s.Equal(int64(1), s.counter("issue.delete", "success"))
}

func (s *IssueObjectTestSuite) TestVotes() {
	gomock.InOrder(
		s.mockClient.EXPECT().Add(gomock.Any(), gomock.Any(), testIssueID, int64(1), VotesColumn).Return(nil),
		s.mockClient.EXPECT().GetCounter(gomock.Any(), gomock.Any(), testIssueID, VotesColumn).Return(int64(1), nil),
		s.mockClient.EXPECT().GetCounter(gomock.Any(), gomock.Any(), "other", VotesColumn).
			Return(int64(0), errs.NotFoundf("no votes")),
	)

	s.NoError(s.ops.Vote(s.ctx, testIssueID, 1))
	n, err := s.ops.Votes(s.ctx, testIssueID)
	s.NoError(err)
	s.Equal(int64(1), n)

	n, err = s.ops.Votes(s.ctx, "other")
	s.NoError(err)
	s.Equal(int64(0), n)
}

// TestIssueMigrations tests that issues stored by older releases are
// upgraded when loaded.
func (s *IssueObjectTestSuite) TestIssueMigrations() {
	client, err := orm.NewClient(nil, Objs...)
	s.Require().NoError(err)

	issue := &IssueObject{}
	err = client.Instantiate(issue, testIssueID, map[string]string{
		"summary": "crash",
		"state":   "closed",
		"worth":   "3.25",
	})
	s.NoError(err)
	s.Equal("crash", issue.Title)
	s.True(issue.Closed)
	s.Equal("3.25", issue.Worth.String())
	s.Equal(2, issue.SchemaVersion())

	err = client.Instantiate(&IssueObject{}, testIssueID, map[string]string{
		"state":          "reopened",
		"schema_version": "1",
	})
	s.Error(err)
}
