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

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromiseResolve(t *testing.T) {
	p := NewPromise()
	go p.Resolve([]Row{{"value": "x"}}, nil)

	rows, err := p.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []Row{{"value": "x"}}, rows)

	// later resolutions are ignored
	p.Resolve(nil, errors.New("late"))
	rows, err = p.Get(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPromiseGetHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := NewPromise().Get(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestResolved(t *testing.T) {
	p := Resolved(nil, errors.New("boom"))
	select {
	case <-p.Done():
	default:
		t.Fatal("promise should be done")
	}
	_, err := p.Get(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestContextTags(t *testing.T) {
	ctx := ContextWithTags(context.Background(), map[string]string{"table": "Issues"})
	tags, ok := TagsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "Issues", tags["table"])

	_, ok = TagsFromContext(context.Background())
	assert.False(t, ok)
}
