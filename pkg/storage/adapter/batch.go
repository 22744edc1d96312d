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

package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/sessionm/cassandra-object/pkg/storage/cassandra/api"
	qb "github.com/sessionm/cassandra-object/pkg/storage/querybuilder"
)

type batchKey struct{}

// BatchScope queues mutations issued through a context and sends them as
// one BEGIN BATCH ... APPLY BATCH statement when the outermost scope ends.
// A scope belongs to one unit of work and must not be shared between
// concurrent callers.
type BatchScope struct {
	sync.Mutex
	adapter *Adapter
	opts    Options
	depth   int
	done    bool
	stmts   []qb.Statement
	applied []func()
}

// BeginBatch opens a batch scope and returns a context carrying it. When ctx
// already carries an open scope of this adapter, that scope is joined.
func (a *Adapter) BeginBatch(ctx context.Context, opts Options) (context.Context, *BatchScope) {
	if b := a.activeBatch(ctx); b != nil {
		b.Lock()
		b.depth++
		b.Unlock()
		return ctx, b
	}
	b := &BatchScope{adapter: a, opts: opts, depth: 1}
	return context.WithValue(ctx, batchKey{}, b), b
}

// Batch runs fn inside a batch scope. Mutations fn issues with the context
// it is given are sent together once fn returns. If fn fails the queued
// mutations are dropped and nothing is sent.
func (a *Adapter) Batch(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	ctx, b := a.BeginBatch(ctx, opts)
	if err := fn(ctx); err != nil {
		b.Abort()
		return err
	}
	return b.End(ctx)
}

// InBatch reports whether ctx carries an open batch scope of a.
func (a *Adapter) InBatch(ctx context.Context) bool {
	return a.activeBatch(ctx) != nil
}

func (a *Adapter) activeBatch(ctx context.Context) *BatchScope {
	b, ok := ctx.Value(batchKey{}).(*BatchScope)
	if !ok || b.adapter != a {
		return nil
	}
	b.Lock()
	defer b.Unlock()
	if b.done {
		return nil
	}
	return b
}

// AfterBatch runs fn once the batch scope carried by ctx has been applied.
// fn never runs when the scope is aborted or its batch fails. AfterBatch
// returns false, without running fn, when ctx carries no open scope.
func (a *Adapter) AfterBatch(ctx context.Context, fn func()) bool {
	b := a.activeBatch(ctx)
	if b == nil {
		return false
	}
	b.Lock()
	defer b.Unlock()
	if b.done {
		return false
	}
	b.applied = append(b.applied, fn)
	return true
}

// add queues stmts. It returns false when the scope has already ended.
func (b *BatchScope) add(stmts ...qb.Statement) bool {
	b.Lock()
	defer b.Unlock()
	if b.done {
		return false
	}
	b.stmts = append(b.stmts, stmts...)
	return true
}

// Len returns the number of queued statements.
func (b *BatchScope) Len() int {
	b.Lock()
	defer b.Unlock()
	return len(b.stmts)
}

// End leaves the scope. Leaving the outermost level sends the queued
// statements. The queue is cleared before sending, so a failed batch leaves
// nothing behind.
func (b *BatchScope) End(ctx context.Context) error {
	b.Lock()
	if b.done {
		b.Unlock()
		return nil
	}
	b.depth--
	if b.depth > 0 {
		b.Unlock()
		return nil
	}
	stmts, applied := b.stmts, b.applied
	b.stmts, b.applied = nil, nil
	b.done = true
	b.Unlock()

	if len(stmts) > 0 {
		if err := b.adapter.flush(ctx, stmts, b.opts); err != nil {
			return err
		}
	}
	for _, fn := range applied {
		fn()
	}
	return nil
}

// Abort leaves the scope. At the outermost level the queue is dropped.
func (b *BatchScope) Abort() {
	b.Lock()
	defer b.Unlock()
	if b.done {
		return
	}
	b.depth--
	if b.depth > 0 {
		return
	}
	b.stmts, b.applied = nil, nil
	b.done = true
}

func (a *Adapter) flush(ctx context.Context, stmts []qb.Statement, opts Options) error {
	start := time.Now()
	eo, err := a.writeOptions("", OpBatch, opts)
	if err != nil {
		return err
	}
	_, err = a.store.Execute(ctx, qb.NewBatch(stmts...), eo)
	a.emit(ctx, start, Event{Operation: OpBatch, Keys: len(stmts), Err: err})
	return err
}

// dispatch sends mutations of one call: queued when a batch scope is open,
// otherwise executed, wrapped in a batch when there is more than one.
func (a *Adapter) dispatch(
	ctx context.Context,
	stmts []qb.Statement,
	wrap bool,
	eo api.ExecOptions) error {
	if b := a.activeBatch(ctx); b != nil && b.add(stmts...) {
		return nil
	}
	_, err := a.store.Execute(ctx, statementOf(stmts, wrap), eo)
	return err
}

func (a *Adapter) dispatchAsync(
	ctx context.Context,
	stmts []qb.Statement,
	wrap bool,
	eo api.ExecOptions) api.Future {
	if b := a.activeBatch(ctx); b != nil && b.add(stmts...) {
		return api.Resolved(nil, nil)
	}
	return a.store.ExecuteAsync(ctx, statementOf(stmts, wrap), eo)
}

func statementOf(stmts []qb.Statement, wrap bool) qb.Statement {
	if wrap || len(stmts) > 1 {
		return qb.NewBatch(stmts...)
	}
	return stmts[0]
}
