/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

// Broadcaster fans a message out to every connection in a room. The
// network layer supplies one per session; the session never learns who is
// listening. Messages are handed over in emission order, one at a time,
// under the session lock, so the transport may rely on that order per
// room. Messages already broadcast may still be in flight when a session
// ends, but nothing new is handed over afterwards.
type Broadcaster interface {
	Broadcast(msg any)
}

// Scores tracks both sides of a session. Choice-mode deltas can drive the
// player side negative.
type Scores struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// JoinedMessage acknowledges a join request.
type JoinedMessage struct {
	Type   string `json:"type"` // "joined"
	RoomID string `json:"roomId"`
}

// StateUpdateMessage is broadcast on start and once per countdown tick.
type StateUpdateMessage struct {
	Type          string `json:"type"` // "state-update"
	TimeRemaining int    `json:"timeRemaining"`
	Scores        Scores `json:"scores"`
}

// PlayerSpeechMessage echoes a player submission with its scored delta.
type PlayerSpeechMessage struct {
	Type   string `json:"type"` // "player-speech"
	Role   Role   `json:"role"`
	Text   string `json:"text"`
	Delta  int    `json:"delta"`
	Scores Scores `json:"scores"`
}

// OpponentSpeechMessage carries one scripted rival callout.
type OpponentSpeechMessage struct {
	Type   string `json:"type"` // "opponent-speech"
	Role   Role   `json:"role"`
	Text   string `json:"text"`
	Scores Scores `json:"scores"`
}

// Option is one easy-mode phrase with its pre-bound delta.
type Option struct {
	Text  string `json:"text"`
	Delta int    `json:"delta"`
}

// EasyOptionsMessage is sent to a single requesting connection, not
// broadcast.
type EasyOptionsMessage struct {
	Type    string   `json:"type"` // "easy-options"
	Options []Option `json:"options"`
}

// BarkMessage is the ambient dog interruption.
type BarkMessage struct {
	Type string `json:"type"` // "ambient-bark"
	Text string `json:"text"`
}

// InterruptAppearMessage announces the one-shot ambient interrupt.
type InterruptAppearMessage struct {
	Type string `json:"type"` // "ambient-interrupt-appear"
}

// InterruptSpeechMessage follows the appearance after a short delay.
type InterruptSpeechMessage struct {
	Type string `json:"type"` // "ambient-interrupt-speech"
	Text string `json:"text"`
}

// BabySpeechMessage is a reactive follow-up to an ambient event.
type BabySpeechMessage struct {
	Type string `json:"type"` // "baby-speech"
	Text string `json:"text"`
}

// SessionEndMessage is emitted exactly once per session.
type SessionEndMessage struct {
	Type        string `json:"type"` // "session-end"
	Winner      Winner `json:"winner"`
	FirstWord   string `json:"firstWord"`
	FinalScores Scores `json:"finalScores"`
}

const (
	msgJoined          = "joined"
	msgStateUpdate     = "state-update"
	msgPlayerSpeech    = "player-speech"
	msgOpponentSpeech  = "opponent-speech"
	msgEasyOptions     = "easy-options"
	msgBark            = "ambient-bark"
	msgInterruptAppear = "ambient-interrupt-appear"
	msgInterruptSpeech = "ambient-interrupt-speech"
	msgBabySpeech      = "baby-speech"
	msgSessionEnd      = "session-end"
)
