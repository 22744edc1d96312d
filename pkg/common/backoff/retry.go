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

package backoff

import (
	"context"
	"time"
)

// IsRetryable decides whether an error is worth another attempt.
type IsRetryable func(error) bool

// Retry calls f until it succeeds, the policy gives up, isRetryable rejects
// the error or ctx is done. A nil isRetryable retries every error.
func Retry(ctx context.Context, f func() error, p RetryPolicy, isRetryable IsRetryable) error {
	var err error
	var backoff time.Duration

	r := NewRetrier(p)
	for {
		// function executed successfully. no need to retry.
		if err = f(); err == nil {
			return nil
		}

		if isRetryable != nil && !isRetryable(err) {
			return err
		}

		if backoff = r.NextBackOff(); backoff == done {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
	}
}
