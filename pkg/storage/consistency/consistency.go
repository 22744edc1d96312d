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

// Package consistency resolves the read and write consistency level used for
// a store operation.
package consistency

import (
	"strings"

	"github.com/gocql/gocql"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// Level is a store consistency level. The empty Level means "not set".
type Level string

// Recognized levels. No other value is ever passed to the driver.
const (
	One         Level = "one"
	Quorum      Level = "quorum"
	LocalQuorum Level = "local_quorum"
	EachQuorum  Level = "each_quorum"
	All         Level = "all"
	Any         Level = "any"
)

// Default is used when neither the call, the entity class nor the process
// configuration sets a level.
const Default = Quorum

var levels = map[Level]gocql.Consistency{
	One:         gocql.One,
	Quorum:      gocql.Quorum,
	LocalQuorum: gocql.LocalQuorum,
	EachQuorum:  gocql.EachQuorum,
	All:         gocql.All,
	Any:         gocql.Any,
}

// Parse validates a level name. Matching is case insensitive. The empty
// string parses to the unset level.
func Parse(s string) (Level, error) {
	if s == "" {
		return "", nil
	}
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levels[l]; !ok {
		return "", errs.NewConfigurationError("%q is not a valid consistency level", s)
	}
	return l, nil
}

// Validate returns a ConfigurationError unless l is unset or recognized.
func (l Level) Validate() error {
	_, err := Parse(string(l))
	return err
}

// Gocql maps the level onto the driver's consistency. The unset level maps
// to the hard-coded default.
func (l Level) Gocql() gocql.Consistency {
	if c, ok := levels[l]; ok {
		return c
	}
	return levels[Default]
}

func (l Level) String() string {
	return string(l)
}

// Policy holds the process-wide default levels. It is built once from
// configuration and handed to the adapter; it is never a global.
type Policy struct {
	read  Level
	write Level
}

// NewPolicy validates the configured defaults. Empty strings fall back to
// the hard-coded default.
func NewPolicy(read, write string) (*Policy, error) {
	r, err := Parse(read)
	if err != nil {
		return nil, err
	}
	w, err := Parse(write)
	if err != nil {
		return nil, err
	}
	return &Policy{read: r, write: w}, nil
}

// ResolveRead returns the level for a read. Precedence, highest first: the
// per-call override, the per-class override, the configured default and
// finally quorum. Every non empty override is validated, even one that is
// shadowed by a higher precedence override.
func (p *Policy) ResolveRead(call, class Level) (Level, error) {
	var configured Level
	if p != nil {
		configured = p.read
	}
	return resolve(call, class, configured)
}

// ResolveWrite returns the level for a write, with the same precedence as
// ResolveRead.
func (p *Policy) ResolveWrite(call, class Level) (Level, error) {
	var configured Level
	if p != nil {
		configured = p.write
	}
	return resolve(call, class, configured)
}

func resolve(candidates ...Level) (Level, error) {
	var chosen Level
	for _, l := range candidates {
		if l == "" {
			continue
		}
		parsed, err := Parse(string(l))
		if err != nil {
			return "", err
		}
		if chosen == "" {
			chosen = parsed
		}
	}
	if chosen == "" {
		chosen = Default
	}
	return chosen, nil
}
