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
	"sync"
)

// Future is the pending result of an asynchronous execution. There is no
// cancellation once a statement is dispatched: giving up on Get leaves the
// outcome unknown.
type Future interface {
	// Done is closed once the result is available.
	Done() <-chan struct{}
	// Get waits for the result or for ctx to be done.
	Get(ctx context.Context) ([]Row, error)
}

// Promise is a Future that is completed by calling Resolve.
type Promise struct {
	once sync.Once
	done chan struct{}
	rows []Row
	err  error
}

// NewPromise returns an unresolved promise.
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolved returns a promise that is already complete.
func Resolved(rows []Row, err error) *Promise {
	p := NewPromise()
	p.Resolve(rows, err)
	return p
}

// Resolve completes the promise. Only the first call has an effect.
func (p *Promise) Resolve(rows []Row, err error) {
	p.once.Do(func() {
		p.rows = rows
		p.err = err
		close(p.done)
	})
}

// Done is closed once the promise is resolved.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Get waits for the result or for ctx to be done.
func (p *Promise) Get(ctx context.Context) ([]Row, error) {
	select {
	case <-p.done:
		return p.rows, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
