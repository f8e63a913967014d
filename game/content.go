/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package game implements the firstword session core: per-room state
// machine, scheduled rival/ambient events, scoring, and outcome resolution.
// Transport and rendering live elsewhere; this package only emits typed
// messages through a Broadcaster.
package game

// Role is one of the two characters contesting the baby's first word.
type Role string

const (
	RoleMom Role = "mom"
	RoleDad Role = "dad"
)

// Valid reports whether r is one of the two playable roles.
func (r Role) Valid() bool {
	return r == RoleMom || r == RoleDad
}

// Complement returns the other role.
func (r Role) Complement() Role {
	if r == RoleMom {
		return RoleDad
	}
	return RoleMom
}

// NameToken is the literal name the baby would say for this role.
// It is both scored against and revealed as the winning first word.
func (r Role) NameToken() string {
	if r == RoleMom {
		return "ママ"
	}
	return "パパ"
}

// Mode selects the input style and the outcome policy.
type Mode string

const (
	ModeEasy Mode = "easy"
	ModeHard Mode = "hard"
)

func (m Mode) Valid() bool {
	return m == ModeEasy || m == ModeHard
}

// The content table below is the single source for everything the game
// says or scores. The scorer and the event emitters both read from it, so
// a phrase shown to a player is always scored consistently.

// opponentLines are what the scripted rival calls out on its cadence.
var opponentLines = map[Role][]string{
	RoleMom: {
		"ママよ〜！ママって言って〜！",
		"ママのことが大好きでしょ？",
		"ママはいつもそばにいるよ〜",
		"ママって呼んでくれたら抱っこしてあげる！",
		"ママの声が聞こえる？ママよ〜",
	},
	RoleDad: {
		"パパだよ〜！パパって言ってごらん！",
		"パパと遊ぼう！楽しいよ〜",
		"パパがいちばん好きでしょ？",
		"パパって言えたらたかいたかいしてあげる！",
		"パパの声わかるかな？パパだよ〜",
	},
}

// easyLines are the candidate phrases offered in easy mode. Deltas are
// bound per draw, not per phrase; see Session.EasyOptions.
var easyLines = map[Role][]string{
	RoleMom: {
		"ママ大好き！ママって言って！",
		"ママのおっぱい美味しいでしょ？",
		"ママと一緒にねんねしようね",
		"ママのお歌聞きたい？",
		"ママのぬくもりが一番でしょ？",
	},
	RoleDad: {
		"パパと遊ぼう！楽しいよ！",
		"パパの肩車は高いぞ〜",
		"パパとお風呂入ろうね",
		"パパのひげ、ちくちくする？",
		"パパの大きな手、つかまえて！",
	},
}

// positiveWords each add one point when present in a hard-mode submission.
var positiveWords = []string{"好き", "大好き", "愛", "だっこ", "遊ぶ", "楽しい"}

// tieWords are the first words the baby falls back on when nobody wins.
var tieWords = []string{"ワンワン", "おじさん", "まんま"}

const (
	barkText          = "ワンワン！"
	barkEchoText      = "ワンワン！"
	interruptText     = "おじさんだよ〜！"
	interruptEchoText = "おじさん！"
)
