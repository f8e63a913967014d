/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		role Role
		want int
	}{
		{
			// ママ → +2, 好き → +1, 大好き → +1
			name: "name token plus nested positive words",
			text: "ママ大好き",
			role: RoleMom,
			want: 4,
		},
		{
			name: "name token alone",
			text: "ママ",
			role: RoleMom,
			want: 2,
		},
		{
			name: "wrong role name scores nothing",
			text: "パパ",
			role: RoleMom,
			want: 0,
		},
		{
			name: "dad with two positive words",
			text: "パパと遊ぶの楽しい",
			role: RoleDad,
			want: 4,
		},
		{
			name: "positive word without name token",
			text: "だっこして",
			role: RoleDad,
			want: 1,
		},
		{
			name: "empty text",
			text: "",
			role: RoleMom,
			want: 0,
		},
		{
			name: "unrelated text",
			text: "こんにちは",
			role: RoleDad,
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.text, tc.role))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, 4, Score("ママ大好き", RoleMom))
	}
}

func TestRole_Complement(t *testing.T) {
	assert.Equal(t, RoleDad, RoleMom.Complement())
	assert.Equal(t, RoleMom, RoleDad.Complement())
	assert.Equal(t, "ママ", RoleMom.NameToken())
	assert.Equal(t, "パパ", RoleDad.NameToken())
}
