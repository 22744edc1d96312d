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

package errs

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ErrorsSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsSuite))
}

func (s *ErrorsSuite) TestInfraKindsSurviveWrapping() {
	nf := errors.Wrap(NotFoundf("row %s", "k1"), "find")
	s.True(IsNotFound(nf))
	s.False(IsTimeout(nf))

	to := &StoreError{Op: "get", ColumnFamily: "Issues", Err: Timeoutf("read timeout")}
	s.True(IsTimeout(to))
	s.False(IsConnection(to))

	s.True(IsConnection(errors.WithMessage(Connectionf("no hosts"), "insert")))
	s.False(IsNotFound(errors.New("boom")))
	s.False(IsNotFound(nil))
}

func (s *ErrorsSuite) TestTypedKinds() {
	s.True(IsConfiguration(NewConfigurationError("bad level %q", "two")))
	s.True(IsConfiguration(&MigrationNotFoundError{From: 1, Missing: 2}))
	s.True(IsMigrationNotFound(errors.Wrap(&MigrationNotFoundError{}, "instantiate")))
	s.False(IsMigrationNotFound(NewConfigurationError("x")))

	s.True(IsDecode(NewDecodeError("truncated")))
	s.True(IsDecode(&FormatError{Codec: "date", Input: "nope"}))
	s.True(IsTypeMismatch(&TypeMismatchError{Codec: "integer", Value: "x"}))
	s.True(IsReadOnly(&ReadOnlyError{Key: "k"}))
	s.True(IsColumnFamilyNotFound(&StoreError{
		Op:  "insert",
		Err: &ColumnFamilyNotFoundError{Name: "Missing"},
	}))
}

func (s *ErrorsSuite) TestMigrationNotFoundMessage() {
	err := &MigrationNotFoundError{From: 1, Missing: 3, Available: []int{2, 4}}
	s.Equal(
		"cannot migrate a record from version 1: no migration for version 3, migrations exist for [2, 4]",
		err.Error())
}
