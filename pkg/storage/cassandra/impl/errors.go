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

package impl

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/gocql/gocql"

	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// unconfiguredTable is how the server reports a missing table.
const unconfiguredTable = "unconfigured table"

// classifyError maps driver errors onto the storage error kinds. cf is used
// to name the missing column family, if any.
func classifyError(err error, cf string) error {
	if err == nil {
		return nil
	}

	switch err.(type) {
	case *gocql.RequestErrReadTimeout, *gocql.RequestErrWriteTimeout:
		return errs.Timeoutf("%v", err)
	case *gocql.RequestErrUnavailable:
		return errs.Connectionf("%v", err)
	}

	switch {
	case err == gocql.ErrTimeoutNoResponse,
		stderrors.Is(err, context.DeadlineExceeded):
		return errs.Timeoutf("%v", err)
	case err == gocql.ErrNoConnections,
		err == gocql.ErrSessionClosed,
		err == gocql.ErrConnectionClosed,
		err == gocql.ErrNoHosts,
		err == gocql.ErrNoConnectionsStarted:
		return errs.Connectionf("%v", err)
	}

	var reqErr gocql.RequestError
	if stderrors.As(err, &reqErr) && reqErr.Code() == gocql.ErrCodeInvalid &&
		strings.Contains(strings.ToLower(reqErr.Message()), unconfiguredTable) {
		return &errs.ColumnFamilyNotFoundError{Name: cf}
	}
	return err
}

// getGocqlErrorTag returns the metric tag of a classified error.
func getGocqlErrorTag(err error) string {
	switch {
	case err == nil:
		return "none"
	case errs.IsTimeout(err):
		return "timeout"
	case errs.IsConnection(err):
		return "unavailable"
	case errs.IsColumnFamilyNotFound(err):
		return "unconfigured_table"
	}
	return "unknown"
}
