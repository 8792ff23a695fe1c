// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/ava-labs/curvevm/state"
)

// Metrics is told, once per task, whether the task had to wait on an
// earlier conflicting task.
type Metrics interface {
	RecordBlocked()
	RecordExecutable()
}

// Executor sequences the concurrent execution of
// tasks with arbitrary conflicts on-the-fly.
//
// Executor ensures that conflicting tasks
// are executed in the order they were queued.
// Tasks with no conflicts are executed immediately.
//
// Two tasks conflict on a key when at least one of them
// may mutate it. Any number of readers may run together.
type Executor struct {
	metrics Metrics

	added int
	tasks []*task

	// [writers] holds the last task that may mutate each key and
	// [readers] the read-only tasks queued after it.
	writers map[string]int
	readers map[string][]int

	workers chan struct{}

	outstanding sync.WaitGroup

	err atomic.Error
}

// New creates a new [Executor] that accepts at most [items] tasks and
// runs at most [concurrency] of them at once.
func New(items, concurrency int, metrics Metrics) *Executor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Executor{
		metrics: metrics,
		tasks:   make([]*task, items),
		writers: make(map[string]int, items*2),
		readers: make(map[string][]int, items),
		workers: make(chan struct{}, concurrency),
	}
}

type task struct {
	f func() error

	l        sync.Mutex
	waiters  map[int]*sync.WaitGroup
	executed bool
}

// Run executes [f] after all previously enqueued [f] with
// overlapping [conflicts] are executed.
//
// Run is not safe to call concurrently.
func (e *Executor) Run(conflicts state.Keys, f func() error) {
	// Ensure too many tasks not enqueued
	if e.added >= len(e.tasks) {
		e.err.CompareAndSwap(nil, ErrTooManyTasks)
		return
	}

	// Generate task
	id := e.added
	e.added++
	t := &task{
		f:       f,
		waiters: map[int]*sync.WaitGroup{},
	}
	e.tasks[id] = t
	e.outstanding.Add(1)

	// Record dependencies
	wg := &sync.WaitGroup{}
	blocked := false
	for k, perms := range conflicts {
		if latest, ok := e.writers[k]; ok {
			blocked = e.waitOn(id, latest, wg) || blocked
		}
		if !perms.Writes() {
			e.readers[k] = append(e.readers[k], id)
			continue
		}
		for _, reader := range e.readers[k] {
			blocked = e.waitOn(id, reader, wg) || blocked
		}
		delete(e.readers, k)
		e.writers[k] = id
	}
	if e.metrics != nil {
		if blocked {
			e.metrics.RecordBlocked()
		} else {
			e.metrics.RecordExecutable()
		}
	}

	// Wait for the scheduler to execute us
	go func() {
		// Block until our dependencies have been executed
		wg.Wait()

		// Ensure we unblock our dependencies
		defer func() {
			t.l.Lock()
			for _, w := range t.waiters {
				w.Done()
			}
			t.waiters = nil
			t.executed = true
			t.l.Unlock()
			e.outstanding.Done()
		}()

		// Stop early if executor is stopped
		if e.err.Load() != nil {
			return
		}

		// Execute task once we aren't too busy
		e.workers <- struct{}{}
		defer func() { <-e.workers }()
		if err := t.f(); err != nil {
			e.err.CompareAndSwap(nil, err)
			return
		}
	}()
}

// waitOn makes [id] wait for [dep] unless [dep] already finished. A task
// never waits on itself.
func (e *Executor) waitOn(id int, dep int, wg *sync.WaitGroup) bool {
	if dep == id {
		return false
	}
	dt := e.tasks[dep]
	dt.l.Lock()
	defer dt.l.Unlock()

	if dt.executed {
		return false
	}
	if _, ok := dt.waiters[id]; ok {
		return true
	}
	wg.Add(1)
	dt.waiters[id] = wg
	return true
}

func (e *Executor) Stop() {
	e.err.CompareAndSwap(nil, ErrStopped)
}

// Wait returns as soon as all enqueued [f] are executed.
//
// You should not call [Run] after [Wait] is called.
func (e *Executor) Wait() error {
	e.outstanding.Wait()
	return e.err.Load()
}
