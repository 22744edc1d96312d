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

package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogFieldFormatterAddsStaticFields(t *testing.T) {
	formatter := LogFieldFormatter{
		Fields:    log.Fields{AppLogField: "cqlschema"},
		Formatter: &log.JSONFormatter{},
	}
	b, err := formatter.Format(log.WithField(ColumnFamilyLogField, "Issues"))
	assert.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"app":"cqlschema"`)
	assert.Contains(t, s, `"column_family":"Issues"`)
}

func TestLogFieldFormatterEntryFieldsWin(t *testing.T) {
	formatter := LogFieldFormatter{
		Fields:    log.Fields{AppLogField: "cqlschema"},
		Formatter: &log.JSONFormatter{},
	}
	b, err := formatter.Format(log.WithField(AppLogField, "migrate"))
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"app":"migrate"`)
	assert.NotContains(t, string(b), "cqlschema")
}
