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
	"strings"

	log "github.com/sirupsen/logrus"
)

const redactedStr = "REDACTED"

// SecretsFormatter scrubs sensitive information from logs and formats logs
// into parsable json. Any field whose name mentions a password is redacted,
// and so is the statement text of any statement touching one of the
// sensitive column families.
type SecretsFormatter struct {
	*log.JSONFormatter
	// SensitiveColumnFamilies are matched against statement text.
	SensitiveColumnFamilies []string
}

// Format is called by logrus and returns the formatted string.
func (f *SecretsFormatter) Format(entry *log.Entry) ([]byte, error) {
	for k, v := range entry.Data {
		if strings.Contains(strings.ToLower(k), "password") {
			entry.Data[k] = redactedStr
			continue
		}
		stmt, ok := v.(string)
		if !ok || k != DBStmtLogField {
			continue
		}
		for _, cf := range f.SensitiveColumnFamilies {
			if strings.Contains(stmt, `"`+cf+`"`) {
				entry.Data[k] = redactedStr
				if _, ok := entry.Data[DBArgsLogField]; ok {
					entry.Data[DBArgsLogField] = redactedStr
				}
				break
			}
		}
	}
	return f.JSONFormatter.Format(entry)
}
