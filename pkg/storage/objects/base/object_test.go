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

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycle(t *testing.T) {
	var o Object
	assert.True(t, o.IsNewRecord())
	assert.False(t, o.IsPersisted())
	assert.Equal(t, "", o.Key())

	o.SetKey("k1")
	o.Saved(2, map[string][]byte{"a": []byte("1"), "b": nil})
	assert.False(t, o.IsNewRecord())
	assert.True(t, o.IsPersisted())
	assert.Equal(t, 2, o.SchemaVersion())
	assert.Equal(t, "k1", o.Key())

	o.Destroyed()
	assert.True(t, o.IsDestroyed())
	assert.False(t, o.IsPersisted())
	assert.False(t, o.IsNewRecord())

	var e Entity = &o
	assert.Equal(t, &o, e.State())
}

func TestChanged(t *testing.T) {
	var o Object
	o.Loaded("k1", 1, map[string][]byte{"a": []byte("1"), "b": []byte("")})

	assert.Empty(t, o.Changed(map[string][]byte{"a": []byte("1"), "b": []byte(""), "c": nil}))
	assert.Equal(t, []string{"a", "b", "c"}, o.Changed(map[string][]byte{
		"a": []byte("2"),
		"b": nil,
		"c": []byte("x"),
	}))

	o.MarkChanged("a")
	assert.Equal(t, []string{"a"}, o.Changed(map[string][]byte{"a": []byte("1"), "b": []byte("")}))

	o.Saved(1, map[string][]byte{"a": []byte("1")})
	assert.Empty(t, o.Changed(map[string][]byte{"a": []byte("1")}))
}

func TestReadOnly(t *testing.T) {
	var o Object
	assert.False(t, o.IsReadOnly())
	o.SetReadOnly(true)
	assert.True(t, o.IsReadOnly())
}
