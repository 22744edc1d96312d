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
	"fmt"

	"github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	"github.com/sessionm/cassandra-object/pkg/storage/errs"
)

// Decorate applies decorators to ef, innermost first. Usage:
// Decorate(aFunc, Safeguard(s), Count(ctx, s, "execute"), Trace(ctx, "execute"))()
func Decorate(ef api.FuncType, decorators ...api.Decorator) api.FuncType {
	for _, decorator := range decorators {
		ef = decorator(ef)
	}
	return ef
}

// Count decorator sends success and failure count metrics, and the number
// of goroutines using the store.
func Count(ctx context.Context, s *Store, funcName string) api.Decorator {
	return func(ef api.FuncType) api.FuncType {
		return func() error {
			scope := s.scope
			if scope == nil {
				return ef()
			}
			if tags, ok := api.TagsFromContext(ctx); ok {
				scope = scope.Tagged(tags)
			}
			scope.Gauge("usage").Update(float64(s.concurrency.Load()))

			errors := scope.Counter(fmt.Sprintf("%s.errors", funcName))
			success := scope.Counter(fmt.Sprintf("%s.success", funcName))
			if err := ef(); err != nil {
				errors.Inc(1)
				return err
			}
			success.Inc(1)
			return nil
		}
	}
}

// Trace decorator starts a new span for the underlying function call
func Trace(ctx context.Context, funcName string) api.Decorator {
	return func(ef api.FuncType) api.FuncType {
		return func() error {
			span := opentracing.SpanFromContext(ctx)
			if span != nil {
				child := opentracing.StartSpan(funcName, opentracing.ChildOf(span.Context()))
				defer child.Finish()
				if err := ef(); err != nil {
					child.SetTag("error", true)
					child.LogKV("event", "error", "message", err.Error())
					return err
				}
				return nil
			}
			return ef()
		}
	}
}

// Safeguard ensures that the connection is neither closed nor overflooded.
// A zero maxConcurrency disables the capacity check.
func Safeguard(s *Store) api.Decorator {
	return func(ef api.FuncType) api.FuncType {
		return func() error {
			if s.isClosed() {
				log.Debug("store already closed")
				return errs.Connectionf("store %s is closed", s.keySpace)
			}

			n := s.concurrency.Inc()
			defer s.concurrency.Dec()
			if s.maxConcurrency > 0 && n > s.maxConcurrency {
				log.Debugf("over capacity %d", s.maxConcurrency)
				return errs.Connectionf("store %s is over capacity %d",
					s.keySpace, s.maxConcurrency)
			}
			return ef()
		}
	}
}
