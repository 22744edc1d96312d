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

// +build !unit

package stores

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra"
	storageconfig "github.com/sessionm/cassandra-object/pkg/storage/config"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/objects"
)

// StoresTestSuite runs against the local cassandra started for integration
// tests and is skipped unless CASSANDRA_INTEGRATION is set.
type StoresTestSuite struct {
	suite.Suite
	store *objects.Store
	ops   objects.IssueOps
}

func TestStoresTestSuite(t *testing.T) {
	if os.Getenv("CASSANDRA_INTEGRATION") == "" {
		t.Skip("CASSANDRA_INTEGRATION not set")
	}
	suite.Run(t, new(StoresTestSuite))
}

func (s *StoresTestSuite) SetupSuite() {
	cfg := &storageconfig.Config{
		Cassandra:   *cassandra.GenerateTestCassandraConfig(),
		AutoMigrate: true,
	}
	s.Require().NoError(cfg.Cassandra.CreateKeyspace())
	store, err := CreateStore(cfg, tally.NoopScope)
	s.Require().NoError(err)
	s.store = store
	s.ops = objects.NewIssueOps(store)
}

func (s *StoresTestSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoresTestSuite) TestIssueLifecycle() {
	ctx := context.Background()

	issue, err := s.ops.Create(ctx, "crash on start", "stack attached", decimal.RequireFromString("2.5"), "bug")
	s.Require().NoError(err)
	s.NotEmpty(issue.Key())

	found, err := s.ops.Get(ctx, issue.Key())
	s.Require().NoError(err)
	s.Equal("crash on start", found.Title)
	s.True(found.Labels.Contains("bug"))

	s.NoError(s.ops.Vote(ctx, issue.Key(), 3))
	votes, err := s.ops.Votes(ctx, issue.Key())
	s.NoError(err)
	s.Equal(int64(3), votes)

	s.NoError(s.ops.Delete(ctx, issue.Key()))
	_, err = s.ops.Get(ctx, issue.Key())
	s.True(errs.IsNotFound(err))
}

func (s *StoresTestSuite) TestBatchedCreates() {
	ctx := context.Background()

	var keys []string
	err := s.store.Batch(ctx, func(ctx context.Context) error {
		for _, title := range []string{"first", "second"} {
			issue, err := s.ops.Create(ctx, title, "", decimal.Zero)
			if err != nil {
				return err
			}
			keys = append(keys, issue.Key())
		}
		return nil
	})
	s.Require().NoError(err)

	found, err := s.ops.GetMany(ctx, keys...)
	s.NoError(err)
	s.Len(found, 2)
	s.Equal("first", found[0].Title)
}
