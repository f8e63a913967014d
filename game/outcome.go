/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "math/rand"

// Winner identifies which side the baby's first word went to.
type Winner string

const (
	WinnerPlayer   Winner = "player"
	WinnerOpponent Winner = "opponent"
	WinnerTie      Winner = "tie"
)

// Outcome is the resolved end of a session.
type Outcome struct {
	Winner    Winner
	FirstWord string
}

// Resolve maps final scores to an outcome. Easy mode: higher score wins.
// Hard mode: a side wins only with at least threshold points and strictly
// more than the other side. Any other case is a tie, and the baby's first
// word is drawn uniformly from the tie-word table instead of a name.
func Resolve(scores Scores, playerRole, opponentRole Role, mode Mode, threshold int, rng *rand.Rand) Outcome {
	playerWins := scores.Player > scores.Opponent
	opponentWins := scores.Opponent > scores.Player

	if mode == ModeHard {
		playerWins = playerWins && scores.Player >= threshold
		opponentWins = opponentWins && scores.Opponent >= threshold
	}

	switch {
	case playerWins:
		return Outcome{Winner: WinnerPlayer, FirstWord: playerRole.NameToken()}
	case opponentWins:
		return Outcome{Winner: WinnerOpponent, FirstWord: opponentRole.NameToken()}
	default:
		return Outcome{Winner: WinnerTie, FirstWord: tieWords[rng.Intn(len(tieWords))]}
	}
}
