// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/ava-labs/curvevm/state"
)

// Run several times to catch non-determinism
const numIterations = 10

type countingMetrics struct {
	blocked    atomic.Int64
	executable atomic.Int64
}

func (m *countingMetrics) RecordBlocked()    { m.blocked.Inc() }
func (m *countingMetrics) RecordExecutable() { m.executable.Inc() }

func randomKeys(n int, perms state.Permissions) state.Keys {
	s := make(state.Keys, n+1)
	for k := 0; k < n; k++ {
		s.Add(ids.GenerateTestID().String(), perms)
	}
	return s
}

func TestExecutorNoConflicts(t *testing.T) {
	var (
		require   = require.New(t)
		l         sync.Mutex
		completed = make([]int, 0, 100)
		e         = New(100, 4, nil)
	)
	for i := 0; i < 100; i++ {
		ti := i
		e.Run(randomKeys(i+1, state.Write), func() error {
			l.Lock()
			completed = append(completed, ti)
			l.Unlock()
			return nil
		})
	}
	require.NoError(e.Wait())
	require.Len(completed, 100)
}

func TestExecutorSimpleConflict(t *testing.T) {
	var (
		require     = require.New(t)
		conflictKey = ids.GenerateTestID().String()
		l           sync.Mutex
		completed   = make([]int, 0, 100)
		e           = New(100, 4, nil)
		slow        = make(chan struct{})
	)
	for i := 0; i < 100; i++ {
		s := randomKeys(i+1, state.Write)
		if i%10 == 0 {
			s.Add(conflictKey, state.Write)
		}
		ti := i
		e.Run(s, func() error {
			if ti == 0 {
				<-slow
			}

			l.Lock()
			completed = append(completed, ti)
			if len(completed) == 90 {
				close(slow)
			}
			l.Unlock()
			return nil
		})
	}
	require.NoError(e.Wait())
	require.Equal([]int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, completed[90:])
}

// W->W->W->...
func TestManyWrites(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			l           sync.Mutex
			completed   = make([]int, 0, 100)
			answer      = make([]int, 0, 100)
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			answer = append(answer, i)
			s := randomKeys(i+1, state.Write)
			s.Add(conflictKey, state.Write)
			ti := i
			e.Run(s, func() error {
				if ti == 0 {
					<-slow
				}

				l.Lock()
				completed = append(completed, ti)
				l.Unlock()
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Equal(answer, completed)
	}
}

// R->R->R->... must not be serialized: every reader waits for all the
// others before returning.
func TestReadersRunTogether(t *testing.T) {
	var (
		require     = require.New(t)
		conflictKey = ids.GenerateTestID().String()
		readers     = 4
		e           = New(readers, readers, nil)
		arrived     sync.WaitGroup
	)
	arrived.Add(readers)
	for i := 0; i < readers; i++ {
		s := randomKeys(1, state.Write)
		s.Add(conflictKey, state.Read)
		e.Run(s, func() error {
			arrived.Done()
			arrived.Wait()
			return nil
		})
	}
	require.NoError(e.Wait())
}

// R->R->W->R...
func TestReadThenWrite(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			l           sync.Mutex
			completed   = make([]int, 0, 100)
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			s := randomKeys(i+1, state.Write)
			if i == 10 {
				s.Add(conflictKey, state.Write)
			} else {
				s.Add(conflictKey, state.Read)
			}
			ti := i
			e.Run(s, func() error {
				// the write (and every read after it) waits for this read
				if ti == 9 {
					<-slow
				}

				l.Lock()
				completed = append(completed, ti)
				l.Unlock()
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Equal(10, completed[10])
		require.Len(completed, 100)
	}
}

// W->R->R->...W->R->R->...
func TestWriteThenReadRepeated(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			l           sync.Mutex
			completed   = make([]int, 0, 100)
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			s := randomKeys(i+1, state.Write)
			if i == 0 || i == 49 {
				s.Add(conflictKey, state.Write)
			} else {
				s.Add(conflictKey, state.Read)
			}
			ti := i
			e.Run(s, func() error {
				if ti == 0 {
					<-slow
				}

				l.Lock()
				completed = append(completed, ti)
				l.Unlock()
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Equal(0, completed[0])
		require.Equal(49, completed[49])
		require.Len(completed, 100)
	}
}

func TestExecutorMetrics(t *testing.T) {
	var (
		require     = require.New(t)
		conflictKey = ids.GenerateTestID().String()
		metrics     = &countingMetrics{}
		e           = New(3, 2, metrics)
		slow        = make(chan struct{})
	)

	first := randomKeys(1, state.Write)
	first.Add(conflictKey, state.Write)
	e.Run(first, func() error {
		<-slow
		return nil
	})
	second := randomKeys(1, state.Write)
	second.Add(conflictKey, state.Read)
	e.Run(second, func() error { return nil })
	e.Run(randomKeys(2, state.Write), func() error { return nil })

	close(slow)
	require.NoError(e.Wait())
	require.Equal(int64(1), metrics.blocked.Load())
	require.Equal(int64(2), metrics.executable.Load())
}

func TestEarlyExit(t *testing.T) {
	var (
		require   = require.New(t)
		l         sync.Mutex
		completed = make([]int, 0, 500)
		e         = New(500, 4, nil)
		terr      = errors.New("uh oh")
	)
	for i := 0; i < 500; i++ {
		ti := i
		e.Run(randomKeys(i+1, state.Write), func() error {
			l.Lock()
			completed = append(completed, ti)
			l.Unlock()
			if ti == 200 {
				return terr
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), terr)
	require.Less(len(completed), 500)
}

func TestStop(t *testing.T) {
	var (
		require   = require.New(t)
		l         sync.Mutex
		completed = make([]int, 0, 500)
		e         = New(500, 4, nil)
	)
	for i := 0; i < 500; i++ {
		ti := i
		e.Run(randomKeys(i+1, state.Write), func() error {
			l.Lock()
			completed = append(completed, ti)
			l.Unlock()
			if ti == 200 {
				e.Stop()
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), ErrStopped)
	require.Less(len(completed), 500)
}

func TestTooManyTasks(t *testing.T) {
	require := require.New(t)

	e := New(1, 1, nil)
	e.Run(randomKeys(1, state.Write), func() error { return nil })
	e.Run(randomKeys(1, state.Write), func() error { return nil })
	require.ErrorIs(e.Wait(), ErrTooManyTasks)
}
