/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry maps room ids to sessions and owns their lifecycle: a session
// is created on the first join to a room id and torn down the moment its
// last connection leaves. It is the only state shared across connections,
// and it is only ever mutated through Register and Remove.
type Registry struct {
	mu       sync.Mutex
	rooms    map[string]*Session
	settings Settings
}

func NewRegistry(settings Settings) *Registry {
	return &Registry{
		rooms:    make(map[string]*Session),
		settings: settings,
	}
}

// Register returns the session for roomID, creating an idle one wired to
// out if absent, and adds connID to its membership. Idempotent per
// connection; out is only consulted on creation.
func (r *Registry) Register(roomID, connID string, out Broadcaster) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rooms[roomID]
	if !ok {
		s = NewSession(roomID, out, r.settings, nil)
		r.rooms[roomID] = s
		log.Debug().Str("room", roomID).Msg("session created")
	}

	s.addConn(connID)
	return s
}

// Remove drops connID from whichever rooms contain it. A room left with no
// connections has its timers cancelled synchronously and is deleted; no
// timer callback for it can observe or mutate state afterwards. Returns
// the ids of rooms torn down so the transport can discard its fan-out.
func (r *Registry) Remove(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for roomID, s := range r.rooms {
		if s.removeConn(connID) == 0 {
			s.teardown()
			delete(r.rooms, roomID)
			removed = append(removed, roomID)
			log.Debug().Str("room", roomID).Msg("session torn down")
		}
	}

	return removed
}

// Get looks up a room id. Unknown rooms return nil, never an error.
func (r *Registry) Get(roomID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[roomID]
}
