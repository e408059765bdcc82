package scorecarddomain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// PlayerInitials splits name on whitespace and joins the uppercased first
// character of each token. A blank name yields "".
func PlayerInitials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// holeWinner returns the index of the player with the unique lowest numeric
// entry on hole, or -1 when nobody is eligible or the lowest score is shared.
func (r Round) holeWinner(hole int) int {
	winner := -1
	best := 0
	tied := false
	for p := range r.Players {
		if p >= len(r.Scores) || hole >= len(r.Scores[p]) {
			continue
		}
		v, ok := r.Scores[p][hole].Value()
		if !ok {
			continue
		}
		switch {
		case winner < 0 || v < best:
			winner, best, tied = p, v, false
		case v == best:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return winner
}

// Skins returns, per hole, the initials of the skin winner or "".
func (r Round) Skins() []string {
	out := make([]string, coursedomain.HoleCount)
	for hole := range out {
		if w := r.holeWinner(hole); w >= 0 {
			out[hole] = PlayerInitials(r.Players[w])
		}
	}
	return out
}

// SkinsWon counts the skins won by each player.
func (r Round) SkinsWon() []int {
	counts := make([]int, len(r.Players))
	for hole := 0; hole < coursedomain.HoleCount; hole++ {
		if w := r.holeWinner(hole); w >= 0 {
			counts[w]++
		}
	}
	return counts
}
