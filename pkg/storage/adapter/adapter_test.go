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
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api/mocks"
	"github.com/sessionm/cassandra-object/pkg/storage/consistency"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
	"github.com/sessionm/cassandra-object/pkg/storage/keycodec"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

// cqlMatcher matches a statement by its rendered text.
type cqlMatcher string

func (m cqlMatcher) Matches(x interface{}) bool {
	stmt, ok := x.(qb.Statement)
	if !ok {
		return false
	}
	cql, err := stmt.ToCQL()
	return err == nil && cql == string(m)
}

func (m cqlMatcher) String() string {
	return "statement " + string(m)
}

func cql(s string) gomock.Matcher {
	return cqlMatcher(s)
}

var testLayouts = map[string][]api.ColumnMetadata{
	"Issues": {
		{Name: "key", Type: "blob", Kind: api.PartitionKey},
		{Name: "column1", Type: "text", Kind: api.Clustering, ClusteringOrder: "asc"},
		{Name: "value", Type: "text", Kind: api.Regular, Position: -1},
	},
	"Counters": {
		{Name: "key", Type: "blob", Kind: api.PartitionKey},
		{Name: "column1", Type: "text", Kind: api.Clustering, ClusteringOrder: "asc"},
		{Name: "value", Type: "counter", Kind: api.Regular, Position: -1},
	},
	"Events": {
		{Name: "key", Type: "blob", Kind: api.PartitionKey},
		{Name: "column1", Type: "timeuuid", Kind: api.Clustering, ClusteringOrder: "desc"},
		{Name: "value", Type: "text", Kind: api.Regular, Position: -1},
	},
	"Composite": {
		{Name: "key1", Type: "text", Kind: api.PartitionKey},
		{Name: "key2", Type: "int", Kind: api.PartitionKey, Position: 1},
		{Name: "column1", Type: "text", Kind: api.Clustering, ClusteringOrder: "asc"},
		{Name: "value", Type: "text", Kind: api.Regular, Position: -1},
	},
}

var testOrders = map[string]string{
	"Issues":    qb.ASC,
	"Counters":  qb.ASC,
	"Events":    qb.DESC,
	"Composite": qb.ASC,
}

type AdapterSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	events  []Event
	adapter *Adapter
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.events = nil
	policy, err := consistency.NewPolicy("one", "")
	s.Require().NoError(err)
	s.adapter = New(s.store, policy, SubscriberFunc(func(_ context.Context, e Event) {
		s.events = append(s.events, e)
	}))
}

func (s *AdapterSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectLayout expects the layout of cf to be read exactly once.
func (s *AdapterSuite) expectLayout(cf string) {
	s.store.EXPECT().Columns(gomock.Any(), cf).Return(testLayouts[cf], nil)
	s.store.EXPECT().ClusteringOrder(gomock.Any(), cf).Return(testOrders[cf], nil)
}

func (s *AdapterSuite) expect(stmt string, rows ...api.Row) *gomock.Call {
	return s.store.EXPECT().Execute(gomock.Any(), cql(stmt), gomock.Any()).Return(rows, nil)
}

func (s *AdapterSuite) TestGetRow() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31`,
		api.Row{"writetime(value)": int64(10), "column1": "description", "value": "x"},
		api.Row{"writetime(value)": int64(11), "column1": "worth", "value": "1.5"},
	)

	row, err := s.adapter.GetRow(s.ctx, "Issues", "k1", Options{})
	s.NoError(err)
	s.Equal("k1", row.Key)
	s.Equal([]string{"description", "worth"}, row.Names())
	s.Equal(map[string]interface{}{"description": "x", "worth": "1.5"}, row.Map())
	c, ok := row.Cell("worth")
	s.True(ok)
	s.Equal(int64(11), c.WriteTime)

	s.Require().Len(s.events, 1)
	s.Equal(OpGet, s.events[0].Operation)
	s.Equal("Issues", s.events[0].ColumnFamily)
	s.Equal("k1", s.events[0].Key)
}

func (s *AdapterSuite) TestGetSingleColumnReturnsBareValue() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), value FROM "Issues" WHERE key = 0x6b31 AND column1 = 'worth'`,
		api.Row{"writetime(value)": int64(10), "value": "1.5"})
	s.expect(`SELECT writetime(value), value FROM "Issues" WHERE key = 0x6b31 AND column1 = 'gone'`)

	v, err := s.adapter.Get(s.ctx, "Issues", "k1", Options{}, "worth")
	s.NoError(err)
	s.Equal("1.5", v)

	v, err = s.adapter.Get(s.ctx, "Issues", "k1", Options{}, "gone")
	s.NoError(err)
	s.Nil(v)
}

func (s *AdapterSuite) TestGetSeveralColumnsReturnsRow() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31`,
		api.Row{"column1": "a", "value": "1"},
		api.Row{"column1": "b", "value": "2"},
		api.Row{"column1": "c", "value": "3"},
	)

	v, err := s.adapter.Get(s.ctx, "Issues", "k1", Options{}, "c", "a")
	s.NoError(err)
	row, ok := v.(*Row)
	s.Require().True(ok)
	s.Equal([]string{"c", "a"}, row.Names())
}

func (s *AdapterSuite) TestGetMissingRow() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31`).Times(2)

	v, err := s.adapter.Get(s.ctx, "Issues", "k1", Options{})
	s.NoError(err)
	s.Equal(0, v.(*Row).Len())

	_, err = s.adapter.GetRow(s.ctx, "Issues", "k1", Options{})
	s.True(errs.IsNotFound(err))
}

func (s *AdapterSuite) TestGetValueNotFound() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), value FROM "Issues" WHERE key = 0x6b31 AND column1 = 'gone'`)

	_, err := s.adapter.GetValue(s.ctx, "Issues", "k1", "gone", Options{})
	s.True(errs.IsNotFound(err))
}

func (s *AdapterSuite) TestGetColumnsPreservesRequestedOrder() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31 `+
		`AND column1 IN ('title', 'missing', 'body')`,
		api.Row{"column1": "body", "value": "B"},
		api.Row{"column1": "title", "value": "T"},
	)

	values, err := s.adapter.GetColumns(s.ctx, "Issues", "k1", []string{"title", "missing", "body"}, Options{})
	s.NoError(err)
	s.Equal([]interface{}{"T", nil, "B"}, values)
}

func (s *AdapterSuite) TestInsertIsOneBatchStatement() {
	s.expectLayout("Issues")
	s.store.EXPECT().Execute(gomock.Any(), cql("BEGIN BATCH\n"+
		`INSERT INTO "Issues" (key, column1, value) VALUES (0x6b31, 'description', 'it''s') USING TTL 30`+"\n"+
		`INSERT INTO "Issues" (key, column1, value) VALUES (0x6b31, 'worth', '1.5') USING TTL 30`+"\n"+
		"APPLY BATCH"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ qb.Statement, eo api.ExecOptions) ([]api.Row, error) {
			s.Equal(consistency.Quorum, eo.Consistency)
			s.Equal("Issues", eo.ColumnFamily)
			s.True(eo.Idempotent)
			return nil, nil
		})

	err := s.adapter.Insert(s.ctx, "Issues", "k1", map[string]interface{}{
		"worth":       []byte("1.5"),
		"description": "it's",
	}, Options{TTL: 30})
	s.NoError(err)
	s.Equal([]string{"description", "worth"}, s.events[0].Columns)
}

func (s *AdapterSuite) TestInsertNothing() {
	s.expectLayout("Issues")
	s.NoError(s.adapter.Insert(s.ctx, "Issues", "k1", nil, Options{}))
}

func (s *AdapterSuite) TestInsertIntoCounterFamilyFails() {
	s.expectLayout("Counters")
	err := s.adapter.Insert(s.ctx, "Counters", "k1", map[string]interface{}{"a": "1"}, Options{})
	s.True(errs.IsConfiguration(err))
}

func (s *AdapterSuite) TestInsertAsync() {
	s.expectLayout("Issues")
	s.store.EXPECT().ExecuteAsync(gomock.Any(), cql("BEGIN BATCH\n"+
		`INSERT INTO "Issues" (key, column1, value) VALUES (0x6b31, 'worth', '1.5')`+"\n"+
		"APPLY BATCH"), gomock.Any()).Return(api.Resolved(nil, nil))

	f := s.adapter.InsertAsync(s.ctx, "Issues", "k1", map[string]interface{}{"worth": "1.5"}, Options{})
	_, err := f.Get(s.ctx)
	s.NoError(err)
	s.True(s.events[0].Async)
}

func (s *AdapterSuite) TestAddIssuesOneUpdatePerColumn() {
	s.expectLayout("Counters")
	gomock.InOrder(
		s.expect(`UPDATE "Counters" SET value = value + 1 WHERE key = 0x6b32 AND column1 = 'bar'`),
		s.expect(`UPDATE "Counters" SET value = value + 1 WHERE key = 0x6b32 AND column1 = 'foo'`),
	)

	s.NoError(s.adapter.Add(s.ctx, "Counters", "k2", 1, []string{"foo", "bar"}, Options{}))
	s.Len(s.events, 2)
	s.Equal(int64(1), s.events[0].Amount)
}

func (s *AdapterSuite) TestAddMultipleAndDecrement() {
	s.expectLayout("Counters")
	gomock.InOrder(
		s.expect(`UPDATE "Counters" SET value = value - 2 WHERE key = 0x6b32 AND column1 = 'a'`),
		s.expect(`UPDATE "Counters" SET value = value + 5 WHERE key = 0x6b32 AND column1 = 'b'`),
	)
	s.NoError(s.adapter.AddMultiple(s.ctx, "Counters", "k2",
		map[string]int64{"b": 5, "a": -2}, Options{}))
}

func (s *AdapterSuite) TestAddStopsAtFirstFailure() {
	s.expectLayout("Counters")
	s.store.EXPECT().Execute(gomock.Any(),
		cql(`UPDATE "Counters" SET value = value + 1 WHERE key = 0x6b32 AND column1 = 'a'`),
		gomock.Any()).Return(nil, errs.Timeoutf("slow"))

	err := s.adapter.Add(s.ctx, "Counters", "k2", 1, []string{"a", "b"}, Options{})
	s.True(errs.IsTimeout(err))
}

func (s *AdapterSuite) TestAddToTextFamilyFails() {
	s.expectLayout("Issues")
	err := s.adapter.Add(s.ctx, "Issues", "k1", 1, []string{"a"}, Options{})
	s.True(errs.IsConfiguration(err))
}

func (s *AdapterSuite) TestGetCounter() {
	s.expectLayout("Counters")
	s.expect(`SELECT value FROM "Counters" WHERE key = 0x6b32 AND column1 = 'foo'`,
		api.Row{"value": int64(2)})
	s.expect(`SELECT value FROM "Counters" WHERE key = 0x6b32 AND column1 = 'bar'`)

	n, err := s.adapter.GetCounter(s.ctx, "Counters", "k2", "foo", Options{})
	s.NoError(err)
	s.Equal(int64(2), n)

	_, err = s.adapter.GetCounter(s.ctx, "Counters", "k2", "bar", Options{})
	s.True(errs.IsNotFound(err))
}

func (s *AdapterSuite) TestRemove() {
	s.expectLayout("Issues")
	s.expect(`DELETE FROM "Issues" WHERE key = 0x6b31`)
	s.expect(`DELETE FROM "Issues" USING TIMESTAMP 5 WHERE key = 0x6b31 AND column1 = 'title'`)

	s.NoError(s.adapter.Remove(s.ctx, "Issues", "k1", nil, Options{}))
	s.NoError(s.adapter.Remove(s.ctx, "Issues", "k1", "title", Options{Timestamp: 5}))
	s.Equal([]string{"title"}, s.events[1].Columns)
}

func (s *AdapterSuite) TestRemoveAsync() {
	s.expectLayout("Issues")
	s.store.EXPECT().ExecuteAsync(gomock.Any(), cql(`DELETE FROM "Issues" WHERE key = 0x6b31`), gomock.Any()).
		Return(api.Resolved(nil, nil))
	_, err := s.adapter.RemoveAsync(s.ctx, "Issues", "k1", nil, Options{}).Get(s.ctx)
	s.NoError(err)
}

func (s *AdapterSuite) TestMultiGetIsOneStatement() {
	s.expectLayout("Issues")
	s.expect(`SELECT key, writetime(value), column1, value FROM "Issues" WHERE key IN (0x6b31, 0x6b32)`,
		api.Row{"key": []byte("k1"), "column1": "a", "value": "1"},
		api.Row{"key": []byte("k1"), "column1": "b", "value": "2"},
		api.Row{"key": []byte("k2"), "column1": "a", "value": "3"},
	)

	rows, err := s.adapter.MultiGet(s.ctx, "Issues", []interface{}{"k1", "k2", "k1"}, Options{})
	s.NoError(err)
	s.Len(rows, 2)
	s.Equal(map[string]interface{}{"a": "1", "b": "2"}, rows["k1"].Map())
	s.Equal(map[string]interface{}{"a": "3"}, rows["k2"].Map())
}

func (s *AdapterSuite) TestMultiGetCompositeKeysDropsCrossProduct() {
	s.expectLayout("Composite")
	s.expect(`SELECT key1, key2, writetime(value), column1, value FROM "Composite" `+
		`WHERE key1 IN ('a', 'b') AND key2 IN (1, 2)`,
		api.Row{"key1": "a", "key2": 1, "column1": "x", "value": "1"},
		api.Row{"key1": "a", "key2": 2, "column1": "x", "value": "2"},
		api.Row{"key1": "b", "key2": 2, "column1": "x", "value": "3"},
	)

	rows, err := s.adapter.MultiGet(s.ctx, "Composite", []interface{}{
		keycodec.Composite{"a", 1},
		keycodec.Composite{"b", 2},
	}, Options{})
	s.NoError(err)
	s.Len(rows, 2)

	codec := keycodec.New(keycodec.Text, keycodec.Int)
	a1, err := codec.String(keycodec.Composite{"a", int32(1)})
	s.NoError(err)
	s.Equal(map[string]interface{}{"x": "1"}, rows[a1].Map())
	s.Equal(keycodec.Composite{"a", int32(1)}, rows[a1].KeyParts)
}

func (s *AdapterSuite) TestMultiGetColumns() {
	s.expectLayout("Issues")
	s.expect(`SELECT key, writetime(value), column1, value FROM "Issues" WHERE key IN (0x6b31)`,
		api.Row{"key": []byte("k1"), "column1": "a", "value": "1"},
	)
	values, err := s.adapter.MultiGetColumns(s.ctx, "Issues", []interface{}{"k1"}, []string{"b", "a"}, Options{})
	s.NoError(err)
	s.Equal(map[string][]interface{}{"k1": {nil, "1"}}, values)
}

func (s *AdapterSuite) TestGetRange() {
	s.expectLayout("Issues")
	s.expect(`SELECT DISTINCT key FROM "Issues" LIMIT 100`,
		api.Row{"key": []byte("k1")}, api.Row{"key": []byte("k2")})
	s.expect(`SELECT key, writetime(value), column1, value FROM "Issues" WHERE key IN (0x6b31, 0x6b32)`,
		api.Row{"key": []byte("k1"), "column1": "a", "value": "1"},
		api.Row{"key": []byte("k2"), "column1": "a", "value": "2"},
	)

	rows, err := s.adapter.GetRange(s.ctx, "Issues", 0, Options{})
	s.NoError(err)
	s.Len(rows, 2)
	last := s.events[len(s.events)-1]
	s.Equal(OpGetRange, last.Operation)
	s.Equal(2, last.Keys)
}

func (s *AdapterSuite) TestGetRangeEmpty() {
	s.expectLayout("Issues")
	s.expect(`SELECT DISTINCT key FROM "Issues" LIMIT 5`)
	rows, err := s.adapter.GetRange(s.ctx, "Issues", 5, Options{})
	s.NoError(err)
	s.Empty(rows)
}

func (s *AdapterSuite) TestGetSliceForward() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31 `+
		`AND column1 >= 'a' AND column1 <= 'm' LIMIT 100`,
		api.Row{"column1": "b", "value": "1"})

	row, err := s.adapter.GetSlice(s.ctx, "Issues", "k1", Slice{Start: "a", Finish: "m"}, Options{})
	s.NoError(err)
	s.Equal([]string{"b"}, row.Names())
}

func (s *AdapterSuite) TestGetSliceReversedOnAscendingFamily() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31 `+
		`AND column1 >= 'a' AND column1 <= 'm' ORDER BY column1 DESC LIMIT 3`)

	row, err := s.adapter.GetSlice(s.ctx, "Issues", "k1",
		Slice{Start: "m", Finish: "a", Count: 3, Reversed: true}, Options{})
	s.NoError(err)
	s.Equal(0, row.Len())
	s.Equal("k1", row.Key)
}

func (s *AdapterSuite) TestGetSliceReversedOnDescendingFamilyScansAscending() {
	s.expectLayout("Events")
	t1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	s.expect(`SELECT writetime(value), column1, value FROM "Events" WHERE key = 0x6576 `+
		`AND column1 >= minTimeuuid('2020-01-01 00:00:00.000+0000') `+
		`AND column1 <= maxTimeuuid('2020-01-02 00:00:00.000+0000') `+
		`ORDER BY column1 ASC LIMIT 10`)

	_, err := s.adapter.GetSlice(s.ctx, "Events", "ev",
		Slice{Start: t2, Finish: t1, Count: 10, Reversed: true}, Options{})
	s.NoError(err)
}

func (s *AdapterSuite) TestGetSliceOpenBound() {
	s.expectLayout("Issues")
	s.expect(`SELECT writetime(value), column1, value FROM "Issues" WHERE key = 0x6b31 `+
		`AND column1 >= 'c' LIMIT 100`)
	_, err := s.adapter.GetSlice(s.ctx, "Issues", "k1", Slice{Start: "c"}, Options{})
	s.NoError(err)
}

func (s *AdapterSuite) TestExists() {
	s.expectLayout("Issues")
	s.expect(`SELECT key FROM "Issues" WHERE key = 0x6b31 LIMIT 1`, api.Row{"key": []byte("k1")})
	s.expect(`SELECT key FROM "Issues" WHERE key = 0x6b32 LIMIT 1`)

	found, err := s.adapter.Exists(s.ctx, "Issues", "k1", Options{})
	s.NoError(err)
	s.True(found)
	found, err = s.adapter.Exists(s.ctx, "Issues", "k2", Options{})
	s.NoError(err)
	s.False(found)
}

func (s *AdapterSuite) TestTruncate() {
	s.expect(`TRUNCATE "Issues"`)
	s.NoError(s.adapter.Truncate(s.ctx, "Issues", Options{}))
	s.Equal(OpTruncate, s.events[0].Operation)
}

func (s *AdapterSuite) TestSchemaIsCachedUntilReload() {
	s.expectLayout("Issues")
	s.expect(`SELECT key FROM "Issues" WHERE key = 0x6b31 LIMIT 1`).Times(3)

	for i := 0; i < 2; i++ {
		_, err := s.adapter.Exists(s.ctx, "Issues", "k1", Options{})
		s.NoError(err)
	}

	s.NoError(s.adapter.ReloadSchema(s.ctx))
	s.expectLayout("Issues")
	_, err := s.adapter.Exists(s.ctx, "Issues", "k1", Options{})
	s.NoError(err)
}

func (s *AdapterSuite) TestReloadNamedColumnFamily() {
	s.expectLayout("Events")
	s.NoError(s.adapter.ReloadSchema(s.ctx, "Events"))

	cf, err := s.adapter.ColumnFamily(s.ctx, "Events")
	s.NoError(err)
	s.True(cf.Reversed)
	s.Equal(keycodec.Timeuuid, cf.ColumnFields[0].Type)
	s.Equal(keycodec.Text, cf.ValueType)
}

func (s *AdapterSuite) TestMissingColumnFamily() {
	s.store.EXPECT().Columns(gomock.Any(), "Nope").
		Return(nil, &errs.ColumnFamilyNotFoundError{Name: "Nope"})

	_, err := s.adapter.Get(s.ctx, "Nope", "k1", Options{})
	s.True(errs.IsColumnFamilyNotFound(err))
	s.Require().Len(s.events, 1)
	s.Equal(err, s.events[0].Err)
}

func (s *AdapterSuite) TestStoreErrorsPropagate() {
	s.expectLayout("Issues")
	s.store.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))
	_, err := s.adapter.GetRow(s.ctx, "Issues", "k1", Options{})
	s.EqualError(err, "boom")
}

func (s *AdapterSuite) TestUnknownConsistencyFailsEveryCall() {
	s.expectLayout("Issues")
	bad := Options{Consistency: "two"}

	_, err := s.adapter.GetRow(s.ctx, "Issues", "k1", bad)
	s.True(errs.IsConfiguration(err))
	err = s.adapter.Insert(s.ctx, "Issues", "k1", map[string]interface{}{"a": "b"}, bad)
	s.True(errs.IsConfiguration(err))
	err = s.adapter.Remove(s.ctx, "Issues", "k1", nil, Options{ClassConsistency: "lots"})
	s.True(errs.IsConfiguration(err))
	err = s.adapter.Truncate(s.ctx, "Issues", bad)
	s.True(errs.IsConfiguration(err))
}

func (s *AdapterSuite) TestConsistencyPrecedence() {
	s.expectLayout("Issues")
	var got []consistency.Level
	s.store.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ qb.Statement, eo api.ExecOptions) ([]api.Row, error) {
			got = append(got, eo.Consistency)
			return nil, nil
		}).Times(4)

	_, _ = s.adapter.Exists(s.ctx, "Issues", "k1", Options{})
	_, _ = s.adapter.Exists(s.ctx, "Issues", "k1", Options{ClassConsistency: consistency.All})
	_, _ = s.adapter.Exists(s.ctx, "Issues", "k1",
		Options{Consistency: consistency.LocalQuorum, ClassConsistency: consistency.All})
	_ = s.adapter.Remove(s.ctx, "Issues", "k1", nil, Options{})

	s.Equal([]consistency.Level{
		consistency.One,
		consistency.All,
		consistency.LocalQuorum,
		consistency.Quorum,
	}, got)
}

func (s *AdapterSuite) TestCreateAndDropColumnFamily() {
	s.expect(`CREATE TABLE "Counters" (key blob, column1 text, value counter, `+
		`PRIMARY KEY (key, column1)) WITH CLUSTERING ORDER BY (column1 DESC)`)
	s.expectLayout("Counters")
	s.NoError(s.adapter.CreateColumnFamily(s.ctx, "Counters",
		ColumnFamilyOptions{Counter: true, ClusteringOrder: qb.DESC}, Options{}))

	cf, err := s.adapter.ColumnFamily(s.ctx, "Counters")
	s.NoError(err)
	s.True(cf.IsCounter())

	s.expect(`DROP TABLE IF EXISTS "Counters"`)
	s.NoError(s.adapter.DropColumnFamily(s.ctx, "Counters", Options{}))

	s.store.EXPECT().Columns(gomock.Any(), "Counters").
		Return(nil, &errs.ColumnFamilyNotFoundError{Name: "Counters"})
	_, err = s.adapter.ColumnFamily(s.ctx, "Counters")
	s.True(errs.IsColumnFamilyNotFound(err))
}

func (s *AdapterSuite) TestMissingKey() {
	s.expectLayout("Issues")
	_, err := s.adapter.GetRow(s.ctx, "Issues", nil, Options{})
	s.True(errs.IsConfiguration(err))
}
