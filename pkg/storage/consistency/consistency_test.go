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

package consistency

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/suite"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

type ConsistencySuite struct {
	suite.Suite
}

func TestConsistencySuite(t *testing.T) {
	suite.Run(t, new(ConsistencySuite))
}

func (s *ConsistencySuite) TestParse() {
	for in, want := range map[string]Level{
		"one":          One,
		"QUORUM":       Quorum,
		"local_quorum": LocalQuorum,
		"Each_Quorum":  EachQuorum,
		"all":          All,
		"any":          Any,
		"":             "",
	} {
		got, err := Parse(in)
		s.NoError(err, in)
		s.Equal(want, got, in)
	}

	for _, bad := range []string{"two", "local_one", "serial", "quorum!"} {
		_, err := Parse(bad)
		s.True(errs.IsConfiguration(err), bad)
	}
}

func (s *ConsistencySuite) TestGocqlMapping() {
	s.Equal(gocql.LocalQuorum, LocalQuorum.Gocql())
	s.Equal(gocql.Any, Any.Gocql())
	s.Equal(gocql.Quorum, Level("").Gocql())
}

func (s *ConsistencySuite) TestPrecedence() {
	p, err := NewPolicy("one", "local_quorum")
	s.Require().NoError(err)

	l, err := p.ResolveRead(All, EachQuorum)
	s.NoError(err)
	s.Equal(All, l)

	l, err = p.ResolveRead("", EachQuorum)
	s.NoError(err)
	s.Equal(EachQuorum, l)

	l, err = p.ResolveRead("", "")
	s.NoError(err)
	s.Equal(One, l)

	l, err = p.ResolveWrite("", "")
	s.NoError(err)
	s.Equal(LocalQuorum, l)

	empty, err := NewPolicy("", "")
	s.Require().NoError(err)
	l, err = empty.ResolveWrite("", "")
	s.NoError(err)
	s.Equal(Quorum, l)

	var unset *Policy
	l, err = unset.ResolveRead("", "")
	s.NoError(err)
	s.Equal(Quorum, l)
}

func (s *ConsistencySuite) TestInvalidLevelAlwaysFails() {
	_, err := NewPolicy("sometimes", "")
	s.True(errs.IsConfiguration(err))
	_, err = NewPolicy("", "sometimes")
	s.True(errs.IsConfiguration(err))

	p, _ := NewPolicy("", "")
	_, err = p.ResolveRead("sometimes", "")
	s.True(errs.IsConfiguration(err))
	_, err = p.ResolveWrite(Quorum, "sometimes")
	s.True(errs.IsConfiguration(err))
	s.True(errs.IsConfiguration(Level("x").Validate()))
	s.NoError(Level("").Validate())
}
