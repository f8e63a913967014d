/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestResolve_HardMode(t *testing.T) {
	tests := []struct {
		name       string
		scores     Scores
		wantWinner Winner
		wantWord   string
	}{
		{
			name:       "player over threshold and ahead",
			scores:     Scores{Player: 22, Opponent: 10},
			wantWinner: WinnerPlayer,
			wantWord:   "ママ",
		},
		{
			name:       "opponent over threshold and ahead",
			scores:     Scores{Player: 5, Opponent: 31},
			wantWinner: WinnerOpponent,
			wantWord:   "パパ",
		},
		{
			name:       "ahead but below threshold is a draw",
			scores:     Scores{Player: 18, Opponent: 5},
			wantWinner: WinnerTie,
		},
		{
			name:       "tie above threshold is a draw",
			scores:     Scores{Player: 25, Opponent: 25},
			wantWinner: WinnerTie,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.scores, RoleMom, RoleDad, ModeHard, 20, testRNG())
			assert.Equal(t, tc.wantWinner, got.Winner)
			if tc.wantWord != "" {
				assert.Equal(t, tc.wantWord, got.FirstWord)
			} else {
				assert.Contains(t, tieWords, got.FirstWord)
			}
		})
	}
}

func TestResolve_EasyMode(t *testing.T) {
	got := Resolve(Scores{Player: 5, Opponent: 2}, RoleDad, RoleMom, ModeEasy, 20, testRNG())
	assert.Equal(t, WinnerPlayer, got.Winner)
	assert.Equal(t, "パパ", got.FirstWord)

	got = Resolve(Scores{Player: 2, Opponent: 5}, RoleDad, RoleMom, ModeEasy, 20, testRNG())
	assert.Equal(t, WinnerOpponent, got.Winner)
	assert.Equal(t, "ママ", got.FirstWord)

	got = Resolve(Scores{Player: 3, Opponent: 3}, RoleMom, RoleDad, ModeEasy, 20, testRNG())
	assert.Equal(t, WinnerTie, got.Winner)
	assert.Contains(t, tieWords, got.FirstWord)
}

func TestResolve_TieWordIsStable(t *testing.T) {
	// Same seed, same draw.
	a := Resolve(Scores{}, RoleMom, RoleDad, ModeEasy, 20, rand.New(rand.NewSource(42)))
	b := Resolve(Scores{}, RoleMom, RoleDad, ModeEasy, 20, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}
