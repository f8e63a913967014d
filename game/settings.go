/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "time"

// Settings holds every pacing and probability knob for a session. Earlier
// generations of the game disagreed on several of these (20 vs 60 second
// rounds, different ambient offsets), so nothing here is hard-wired; the
// defaults follow the networked variant.
type Settings struct {
	// Countdown is the starting value of the clock in ticks, and
	// TickInterval how often it decrements. One tick per second unless a
	// test compresses time.
	Countdown    int
	TickInterval time.Duration

	// Opponent speech fires on a cadence re-randomized after every firing,
	// drawn uniformly from [SpeechMin, SpeechMax]. Each firing gains the
	// opponent 1..SpeechGainMax points with probability SpeechGainChance.
	SpeechMin        time.Duration
	SpeechMax        time.Duration
	SpeechGainChance float64
	SpeechGainMax    int

	// The dog checks in every BarkPeriod and barks with probability
	// BarkChance; a bark has a BarkEchoChance of the baby echoing it.
	BarkPeriod     time.Duration
	BarkChance     float64
	BarkEchoChance float64

	// The weird uncle shows up once, after a delay drawn uniformly from
	// [InterruptMin, InterruptMax]. He speaks InterruptSpeechDelay after
	// appearing, and the baby reacts with probability InterruptEchoChance
	// another InterruptEchoDelay later.
	InterruptMin         time.Duration
	InterruptMax         time.Duration
	InterruptSpeechDelay time.Duration
	InterruptEchoChance  float64
	InterruptEchoDelay   time.Duration

	// HardThreshold is the minimum score required to win in hard mode.
	HardThreshold int
}

// DefaultSettings returns the canonical pacing: a 60 second round, rival
// speech every 3-5 seconds, a bark check every 5 seconds at 30%, and the
// uncle somewhere between 30 and 50 seconds in.
func DefaultSettings() Settings {
	return Settings{
		Countdown:    60,
		TickInterval: time.Second,

		SpeechMin:        3 * time.Second,
		SpeechMax:        5 * time.Second,
		SpeechGainChance: 0.7,
		SpeechGainMax:    3,

		BarkPeriod:     5 * time.Second,
		BarkChance:     0.3,
		BarkEchoChance: 0.2,

		InterruptMin:         30 * time.Second,
		InterruptMax:         50 * time.Second,
		InterruptSpeechDelay: 500 * time.Millisecond,
		InterruptEchoChance:  0.3,
		InterruptEchoDelay:   1500 * time.Millisecond,

		HardThreshold: 20,
	}
}
