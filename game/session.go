/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// State is the session lifecycle. Idle until an explicit start, Active
// while the clock runs, Ended forever after.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
	StateEnded  State = "ended"
)

// Session owns one room's game: its state machine, scores, clock, and the
// timer set driving the rival and the ambient interruptions. All mutation
// happens under one mutex, so no two callbacks for the same session ever
// interleave; sessions for different rooms are fully independent.
type Session struct {
	mu sync.Mutex

	id            string
	state         State
	mode          Mode
	playerRole    Role
	opponentRole  Role
	scores        Scores
	timeRemaining int

	conns    map[string]bool
	timers   *timerSet
	rng      *rand.Rand
	out      Broadcaster
	settings Settings
}

// NewSession creates an idle session for roomID. Events fan out through
// out; rng drives every probability draw and may be seeded by tests. A nil
// rng gets a time-seeded one.
func NewSession(roomID string, out Broadcaster, settings Settings, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Session{
		id:       roomID,
		state:    StateIdle,
		conns:    make(map[string]bool),
		timers:   newTimerSet(),
		rng:      rng,
		out:      out,
		settings: settings,
	}
}

// ID returns the room id this session is keyed under.
func (s *Session) ID() string {
	return s.id
}

// Joined builds the acknowledgement for a join request.
func (s *Session) Joined() JoinedMessage {
	return JoinedMessage{Type: msgJoined, RoomID: s.id}
}

// Start transitions Idle to Active: assigns the opponent the complement
// role, resets scores and the clock, schedules the full task cluster, and
// broadcasts the initial state. Ignored unless Idle, and ignored for
// malformed input.
func (s *Session) Start(mode Mode, playerRole Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		log.Debug().Str("room", s.id).Str("state", string(s.state)).Msg("start ignored")
		return
	}
	if !mode.Valid() || !playerRole.Valid() {
		log.Debug().Str("room", s.id).Msg("start ignored: bad mode or role")
		return
	}

	s.state = StateActive
	s.mode = mode
	s.playerRole = playerRole
	s.opponentRole = playerRole.Complement()
	s.scores = Scores{}
	s.timeRemaining = s.settings.Countdown

	s.timers.Schedule(s.settings.TickInterval, s.tick)
	s.timers.Schedule(s.speechDelay(), s.opponentSpeak)
	s.timers.Schedule(s.settings.BarkPeriod, s.barkCheck)
	s.timers.Schedule(s.interruptDelay(), s.interruptAppear)

	log.Info().Str("room", s.id).Str("mode", string(mode)).Str("player", string(playerRole)).Msg("session started")

	s.out.Broadcast(StateUpdateMessage{Type: msgStateUpdate, TimeRemaining: s.timeRemaining, Scores: s.scores})
}

// SubmitText scores a free-text submission against the player's role and
// folds the delta into the player score. A no-op unless Active or when the
// text is empty.
func (s *Session) SubmitText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive || text == "" {
		return
	}

	delta := Score(text, s.playerRole)
	s.scores.Player += delta

	s.out.Broadcast(PlayerSpeechMessage{
		Type:   msgPlayerSpeech,
		Role:   s.playerRole,
		Text:   text,
		Delta:  delta,
		Scores: s.scores,
	})
}

// SubmitChoice relays a structured-choice submission: the delta was bound
// to the phrase when the options were dealt, so it is applied as-is apart
// from being clamped back to the legal set.
func (s *Session) SubmitChoice(text string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive || text == "" {
		return
	}

	if delta > 1 {
		delta = 1
	} else if delta < -1 {
		delta = -1
	}
	s.scores.Player += delta

	s.out.Broadcast(PlayerSpeechMessage{
		Type:   msgPlayerSpeech,
		Role:   s.playerRole,
		Text:   text,
		Delta:  delta,
		Scores: s.scores,
	})
}

// EasyOptions deals three phrases for role, drawn without replacement,
// each bound to one of the deltas {+1, 0, -1} in randomized order. The
// reply goes to the requesting connection only, so the caller sends it
// rather than the session broadcasting it.
func (s *Session) EasyOptions(role Role) (EasyOptionsMessage, bool) {
	if !role.Valid() {
		return EasyOptionsMessage{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := easyLines[role]
	picks := s.rng.Perm(len(lines))[:3]
	deltas := []int{1, 0, -1}
	s.rng.Shuffle(len(deltas), func(i, j int) {
		deltas[i], deltas[j] = deltas[j], deltas[i]
	})

	options := make([]Option, 0, 3)
	for i, p := range picks {
		options = append(options, Option{Text: lines[p], Delta: deltas[i]})
	}

	return EasyOptionsMessage{Type: msgEasyOptions, Options: options}, true
}

// End forces the Active to Ended transition, resolving the outcome as if
// the clock had run out.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}
	s.endLocked()
}

// tick drives the countdown. Each tick decrements once; reaching zero
// performs the single Ended transition instead of another state update.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.endLocked()
		return
	}

	s.out.Broadcast(StateUpdateMessage{Type: msgStateUpdate, TimeRemaining: s.timeRemaining, Scores: s.scores})
	s.timers.Schedule(s.settings.TickInterval, s.tick)
}

// opponentSpeak fires on the rival cadence: pick a line for the opponent
// role, maybe gain points, broadcast, and re-randomize the next firing.
func (s *Session) opponentSpeak() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	lines := opponentLines[s.opponentRole]
	text := lines[s.rng.Intn(len(lines))]

	if s.rng.Float64() < s.settings.SpeechGainChance {
		s.scores.Opponent += 1 + s.rng.Intn(s.settings.SpeechGainMax)
	}

	s.out.Broadcast(OpponentSpeechMessage{
		Type:   msgOpponentSpeech,
		Role:   s.opponentRole,
		Text:   text,
		Scores: s.scores,
	})

	s.timers.Schedule(s.speechDelay(), s.opponentSpeak)
}

// barkCheck flips the dog's coin once per period.
func (s *Session) barkCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	if s.rng.Float64() < s.settings.BarkChance {
		s.out.Broadcast(BarkMessage{Type: msgBark, Text: barkText})

		if s.rng.Float64() < s.settings.BarkEchoChance {
			s.out.Broadcast(BabySpeechMessage{Type: msgBabySpeech, Text: barkEchoText})
		}
	}

	s.timers.Schedule(s.settings.BarkPeriod, s.barkCheck)
}

// interruptAppear is the one-shot weird uncle. He announces himself, then
// speaks after a short fixed delay.
func (s *Session) interruptAppear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	s.out.Broadcast(InterruptAppearMessage{Type: msgInterruptAppear})
	s.timers.Schedule(s.settings.InterruptSpeechDelay, s.interruptSpeak)
}

func (s *Session) interruptSpeak() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	s.out.Broadcast(InterruptSpeechMessage{Type: msgInterruptSpeech, Text: interruptText})

	if s.rng.Float64() < s.settings.InterruptEchoChance {
		s.timers.Schedule(s.settings.InterruptEchoDelay, s.interruptEcho)
	}
}

func (s *Session) interruptEcho() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}

	s.out.Broadcast(BabySpeechMessage{Type: msgBabySpeech, Text: interruptEchoText})
}

// endLocked performs the single Active to Ended transition: cancel every
// owned timer, resolve the outcome once, and broadcast the end event.
// Callers hold s.mu.
func (s *Session) endLocked() {
	s.state = StateEnded
	s.timers.StopAll()

	outcome := Resolve(s.scores, s.playerRole, s.opponentRole, s.mode, s.settings.HardThreshold, s.rng)

	log.Info().
		Str("room", s.id).
		Str("winner", string(outcome.Winner)).
		Str("firstWord", outcome.FirstWord).
		Int("player", s.scores.Player).
		Int("opponent", s.scores.Opponent).
		Msg("session ended")

	s.out.Broadcast(SessionEndMessage{
		Type:        msgSessionEnd,
		Winner:      outcome.Winner,
		FirstWord:   outcome.FirstWord,
		FinalScores: s.scores,
	})
}

// teardown is the registry-driven shutdown when the last connection
// leaves: cancel everything synchronously and seal the session without
// emitting. Any timer already in flight will find StateEnded and no-op.
func (s *Session) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateEnded
	s.timers.StopAll()
}

func (s *Session) addConn(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[connID] = true
}

// removeConn drops connID and reports how many connections remain.
func (s *Session) removeConn(connID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, connID)
	return len(s.conns)
}

func (s *Session) speechDelay() time.Duration {
	return s.randBetween(s.settings.SpeechMin, s.settings.SpeechMax)
}

func (s *Session) interruptDelay() time.Duration {
	return s.randBetween(s.settings.InterruptMin, s.settings.InterruptMax)
}

// randBetween draws uniformly from [min, max]. Callers hold s.mu.
func (s *Session) randBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}

// View is a test-facing copy of the session's observable state.
type View struct {
	State         State
	Mode          Mode
	PlayerRole    Role
	OpponentRole  Role
	Scores        Scores
	TimeRemaining int
	NumConns      int
}

// View snapshots the session without exposing internals.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		State:         s.state,
		Mode:          s.mode,
		PlayerRole:    s.playerRole,
		OpponentRole:  s.opponentRole,
		Scores:        s.scores,
		TimeRemaining: s.timeRemaining,
		NumConns:      len(s.conns),
	}
}
