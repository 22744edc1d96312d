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

package keycodec

import (
	"strings"

	"github.com/pborman/uuid"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// KeyFactory generates and validates row keys for new entities.
type KeyFactory interface {
	// Next returns a fresh key.
	Next() string
	// Parse validates a caller supplied key and returns its canonical form.
	Parse(key string) (string, error)
}

// UUIDKeyFactory issues time based UUID keys in their canonical string form.
type UUIDKeyFactory struct{}

// Next returns a version 1 UUID, or a random one if the clock sequence
// cannot be read.
func (UUIDKeyFactory) Next() string {
	if u := uuid.NewUUID(); u != nil {
		return u.String()
	}
	return uuid.New()
}

// Parse accepts any UUID string form and returns it lower cased with dashes.
func (UUIDKeyFactory) Parse(key string) (string, error) {
	u := uuid.Parse(strings.TrimSpace(key))
	if u == nil {
		return "", errs.NewDecodeError("invalid uuid key %q", key)
	}
	return u.String(), nil
}

// NaturalKeyFactory accepts any non blank caller supplied key and cannot
// generate keys on its own.
type NaturalKeyFactory struct{}

// Next returns an empty key; callers must assign natural keys themselves.
func (NaturalKeyFactory) Next() string { return "" }

// Parse rejects blank keys.
func (NaturalKeyFactory) Parse(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errs.NewDecodeError("blank key")
	}
	return key, nil
}
