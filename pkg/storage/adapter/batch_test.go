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

package adapter

import (
	"context"
	"errors"

	"github.com/golang/mock/gomock"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

const (
	insertK1 = `INSERT INTO "Issues" (key, column1, value) VALUES (0x6b31, 'a', '1')`
	insertK2 = `INSERT INTO "Issues" (key, column1, value) VALUES (0x6b32, 'b', '2')`
	deleteK3 = `DELETE FROM "Issues" WHERE key = 0x6b33`
)

func (s *AdapterSuite) insertA(ctx context.Context) error {
	return s.adapter.Insert(ctx, "Issues", "k1", map[string]interface{}{"a": "1"}, Options{})
}

func (s *AdapterSuite) insertB(ctx context.Context) error {
	return s.adapter.Insert(ctx, "Issues", "k2", map[string]interface{}{"b": "2"}, Options{})
}

func (s *AdapterSuite) TestBatchSendsOneStatement() {
	s.expectLayout("Issues")
	s.store.EXPECT().Execute(gomock.Any(),
		cql("BEGIN BATCH\n"+insertK1+"\n"+insertK2+"\n"+deleteK3+"\nAPPLY BATCH"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ qb.Statement, eo api.ExecOptions) ([]api.Row, error) {
			s.Equal(consistency.All, eo.Consistency)
			return nil, nil
		})

	err := s.adapter.Batch(s.ctx, Options{Consistency: consistency.All}, func(ctx context.Context) error {
		s.True(s.adapter.InBatch(ctx))
		if err := s.insertA(ctx); err != nil {
			return err
		}
		if err := s.insertB(ctx); err != nil {
			return err
		}
		return s.adapter.Remove(ctx, "Issues", "k3", nil, Options{})
	})
	s.NoError(err)
	s.False(s.adapter.InBatch(s.ctx))
	s.Equal(OpBatch, s.events[len(s.events)-1].Operation)
	s.Equal(3, s.events[len(s.events)-1].Keys)
}

func (s *AdapterSuite) TestNestedBatchJoinsOuter() {
	s.expectLayout("Issues")
	s.expect("BEGIN BATCH\n" + insertK1 + "\n" + insertK2 + "\nAPPLY BATCH")

	err := s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		if err := s.insertA(ctx); err != nil {
			return err
		}
		return s.adapter.Batch(ctx, Options{}, func(inner context.Context) error {
			return s.insertB(inner)
		})
	})
	s.NoError(err)
}

func (s *AdapterSuite) TestBeginEndBatch() {
	s.expectLayout("Issues")
	s.expect("BEGIN BATCH\n" + insertK1 + "\n" + insertK2 + "\nAPPLY BATCH")

	ctx, outer := s.adapter.BeginBatch(s.ctx, Options{})
	s.NoError(s.insertA(ctx))
	inner, b := s.adapter.BeginBatch(ctx, Options{})
	s.Equal(outer, b)
	s.NoError(s.insertB(inner))
	s.NoError(b.End(inner))
	s.Equal(2, outer.Len())
	s.NoError(outer.End(ctx))
	s.Equal(0, outer.Len())
	s.NoError(outer.End(ctx))
}

func (s *AdapterSuite) TestFailedBatchLeavesNothingQueued() {
	s.expectLayout("Issues")
	s.store.EXPECT().Execute(gomock.Any(),
		cql("BEGIN BATCH\n"+insertK1+"\n"+insertK2+"\nAPPLY BATCH"), gomock.Any()).
		Return(nil, errs.Timeoutf("batch timed out"))

	ctx, b := s.adapter.BeginBatch(s.ctx, Options{})
	s.NoError(s.insertA(ctx))
	s.NoError(s.insertB(ctx))
	err := b.End(ctx)
	s.True(errs.IsTimeout(err))
	s.Equal(0, b.Len())

	// the ended scope no longer captures mutations
	s.expect("BEGIN BATCH\n" + insertK1 + "\nAPPLY BATCH")
	s.NoError(s.insertA(ctx))
}

func (s *AdapterSuite) TestAfterBatchRunsOnlyOnceApplied() {
	s.expectLayout("Issues")
	s.False(s.adapter.AfterBatch(s.ctx, func() { s.Fail("no scope is open") }))

	s.store.EXPECT().Execute(gomock.Any(),
		cql("BEGIN BATCH\n"+insertK1+"\nAPPLY BATCH"), gomock.Any()).
		Return(nil, errs.Timeoutf("batch timed out"))
	var applied []string
	err := s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		s.True(s.adapter.AfterBatch(ctx, func() { applied = append(applied, "failed") }))
		return s.insertA(ctx)
	})
	s.True(errs.IsTimeout(err))
	s.Empty(applied)

	err = s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		s.adapter.AfterBatch(ctx, func() { applied = append(applied, "aborted") })
		return errors.New("boom")
	})
	s.Error(err)
	s.Empty(applied)

	s.expect("BEGIN BATCH\n" + insertK1 + "\nAPPLY BATCH")
	err = s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		if err := s.insertA(ctx); err != nil {
			return err
		}
		return s.adapter.Batch(ctx, Options{}, func(inner context.Context) error {
			s.adapter.AfterBatch(inner, func() { applied = append(applied, "inner") })
			s.Empty(applied)
			return nil
		})
	})
	s.NoError(err)
	s.Equal([]string{"inner"}, applied)
}

func (s *AdapterSuite) TestBatchFunctionErrorSendsNothing() {
	s.expectLayout("Issues")
	boom := errors.New("boom")
	err := s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		if err := s.insertA(ctx); err != nil {
			return err
		}
		return boom
	})
	s.Equal(boom, err)
}

func (s *AdapterSuite) TestEmptyBatchSendsNothing() {
	s.NoError(s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		return nil
	}))
}

func (s *AdapterSuite) TestCounterUpdatesAreNotBatched() {
	s.expectLayout("Counters")
	s.expectLayout("Issues")
	gomock.InOrder(
		s.expect(`UPDATE "Counters" SET value = value + 1 WHERE key = 0x6b32 AND column1 = 'foo'`),
		s.expect(`DELETE FROM "Counters" WHERE key = 0x6b32`),
		s.expect("BEGIN BATCH\n"+insertK1+"\nAPPLY BATCH"),
	)

	err := s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		if err := s.adapter.Add(ctx, "Counters", "k2", 1, []string{"foo"}, Options{}); err != nil {
			return err
		}
		if err := s.adapter.Remove(ctx, "Counters", "k2", nil, Options{}); err != nil {
			return err
		}
		return s.insertA(ctx)
	})
	s.NoError(err)
}

func (s *AdapterSuite) TestAsyncMutationsJoinBatch() {
	s.expectLayout("Issues")
	s.expect("BEGIN BATCH\n" + insertK1 + "\n" + deleteK3 + "\nAPPLY BATCH")

	err := s.adapter.Batch(s.ctx, Options{}, func(ctx context.Context) error {
		f := s.adapter.InsertAsync(ctx, "Issues", "k1", map[string]interface{}{"a": "1"}, Options{})
		if _, err := f.Get(ctx); err != nil {
			return err
		}
		_, err := s.adapter.RemoveAsync(ctx, "Issues", "k3", nil, Options{}).Get(ctx)
		return err
	})
	s.NoError(err)
}

func (s *AdapterSuite) TestScopesOfOtherAdaptersAreIgnored() {
	other := New(s.store, nil)
	s.expectLayout("Issues")
	s.expect("BEGIN BATCH\n" + insertK1 + "\nAPPLY BATCH")

	ctx, b := other.BeginBatch(s.ctx, Options{})
	defer b.Abort()
	s.False(s.adapter.InBatch(ctx))
	s.NoError(s.insertA(ctx))
}
