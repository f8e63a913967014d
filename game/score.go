/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "strings"

// Score rates a hard-mode submission for the given role. Two points for
// containing the role's name token, one more for every positive word that
// appears as a substring. Matching is literal and case-sensitive; a word
// containing another listed word counts both. Never negative.
func Score(text string, role Role) int {
	score := 0

	if strings.Contains(text, role.NameToken()) {
		score += 2
	}

	for _, word := range positiveWords {
		if strings.Contains(text, word) {
			score++
		}
	}

	return score
}
