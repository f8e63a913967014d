/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"sync"
	"time"
)

// timerSet owns every piece of scheduled work belonging to one session.
// Handles are tracked until they fire so that StopAll can cancel whatever
// is still pending, and a stopped set refuses new work, so a callback that
// reschedules itself cannot outlive its session.
type timerSet struct {
	mu      sync.Mutex
	stopped bool
	next    int
	pending map[int]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{pending: make(map[int]*time.Timer)}
}

// Schedule runs f after d on its own goroutine. A no-op once the set has
// been stopped, including for timers that were already in flight when
// StopAll ran but had not yet fired.
func (ts *timerSet) Schedule(d time.Duration, f func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.stopped {
		return
	}

	id := ts.next
	ts.next++

	ts.pending[id] = time.AfterFunc(d, func() {
		ts.mu.Lock()
		delete(ts.pending, id)
		stopped := ts.stopped
		ts.mu.Unlock()

		if stopped {
			return
		}
		f()
	})
}

// StopAll cancels every pending handle and marks the set stopped. Safe to
// call more than once, and safe against handles that already fired or were
// already cancelled.
func (ts *timerSet) StopAll() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.stopped = true
	for id, t := range ts.pending {
		t.Stop()
		delete(ts.pending, id)
	}
}
