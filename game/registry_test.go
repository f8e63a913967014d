/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterCreatesOnFirstJoin(t *testing.T) {
	r := NewRegistry(quietSettings())
	out := newRecorder()

	s := r.Register("roomA", "conn1", out)
	require.NotNil(t, s)
	assert.Equal(t, StateIdle, s.View().State)
	assert.Equal(t, 1, s.View().NumConns)

	// Same room, same session.
	assert.Same(t, s, r.Register("roomA", "conn2", out))
	assert.Equal(t, 2, s.View().NumConns)

	// Idempotent per connection.
	r.Register("roomA", "conn1", out)
	assert.Equal(t, 2, s.View().NumConns)
}

func TestRegistry_GetUnknownRoomReturnsNil(t *testing.T) {
	r := NewRegistry(quietSettings())
	assert.Nil(t, r.Get("nope"))
}

func TestRegistry_RemoveTearsDownEmptyRooms(t *testing.T) {
	r := NewRegistry(quietSettings())
	out := newRecorder()

	s := r.Register("roomA", "conn1", out)
	r.Register("roomA", "conn2", out)

	assert.Empty(t, r.Remove("conn1"))
	assert.NotNil(t, r.Get("roomA"))

	removed := r.Remove("conn2")
	assert.Equal(t, []string{"roomA"}, removed)
	assert.Nil(t, r.Get("roomA"))
	assert.Equal(t, StateEnded, s.View().State)
}

func TestRegistry_RemoveUnknownConnIsNoOp(t *testing.T) {
	r := NewRegistry(quietSettings())
	out := newRecorder()

	r.Register("roomA", "conn1", out)
	assert.Empty(t, r.Remove("ghost"))
	assert.NotNil(t, r.Get("roomA"))
}

// The core teardown guarantee: once the last connection leaves, no event
// for that room is ever emitted again, even with timers in flight.
func TestRegistry_TeardownSilencesInFlightTimers(t *testing.T) {
	settings := quietSettings()
	settings.Countdown = 1000
	settings.TickInterval = 2 * time.Millisecond
	settings.SpeechMin = 2 * time.Millisecond
	settings.SpeechMax = 4 * time.Millisecond
	settings.BarkPeriod = 2 * time.Millisecond
	settings.BarkChance = 1.0

	r := NewRegistry(settings)
	out := newRecorder()

	s := r.Register("roomA", "conn1", out)
	s.Start(ModeEasy, RoleMom)

	// Let the task cluster run hot for a bit.
	recvMsg(t, out.msgs, time.Second)
	time.Sleep(20 * time.Millisecond)

	r.Remove("conn1")

	// Anything emitted before teardown completed may still be buffered;
	// after draining, the room must stay silent forever.
	drain(out.msgs)
	recvNoMsg(t, out.msgs, 100*time.Millisecond)
	assert.Equal(t, StateEnded, s.View().State)
}
