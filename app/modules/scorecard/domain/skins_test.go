package scorecarddomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Al B", "AB"},
		{"  cy   d  ", "CD"},
		{"Mary Jane Watson", "MJW"},
		{"", ""},
		{"   ", ""},
		{"émile zola", "ÉZ"},
		{"Jo", "J"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerInitials(tt.name))
		})
	}
}

func roundWithHole(t *testing.T, players []string, hole int, entries ...string) Round {
	t.Helper()
	r := NewRound("c", players)
	for p, raw := range entries {
		_, err := r.SetScore(p, hole, raw)
		require.NoError(t, err)
	}
	return r
}

func TestSkins(t *testing.T) {
	players := []string{"Al B", "Cy D", "Ed F"}

	tests := []struct {
		name    string
		entries []string
		want    string
	}{
		{name: "single winner", entries: []string{"3", "4", "5"}, want: "AB"},
		{name: "winner last", entries: []string{"5", "4", "3"}, want: "EF"},
		{name: "shared minimum", entries: []string{"3", "3", "5"}, want: ""},
		{name: "shared minimum after higher", entries: []string{"5", "3", "3"}, want: ""},
		{name: "all unset", entries: []string{"", "", ""}, want: ""},
		{name: "one eligible", entries: []string{"", "6", ""}, want: "CD"},
		{name: "overflow is not eligible", entries: []string{"99999999999999999999999", "6", "7"}, want: "CD"},
		{name: "zero counts", entries: []string{"0", "1", ""}, want: "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := roundWithHole(t, players, 7, tt.entries...)
			skins := r.Skins()
			require.Len(t, skins, 18)
			assert.Equal(t, tt.want, skins[7])
			for h, s := range skins {
				if h != 7 {
					assert.Empty(t, s, "hole %d", h)
				}
			}
		})
	}
}

func TestSkins_BlankWinnerName(t *testing.T) {
	r := roundWithHole(t, []string{"", "Cy D"}, 0, "2", "4")
	assert.Equal(t, "", r.Skins()[0])
	assert.Equal(t, []int{1, 0}, r.SkinsWon())
}

func TestSkinsWon(t *testing.T) {
	r := NewRound("c", []string{"Al B", "Cy D"})
	for h, pair := range [][2]string{{"3", "4"}, {"4", "3"}, {"3", "3"}, {"2", ""}} {
		_, _ = r.SetScore(0, h, pair[0])
		_, _ = r.SetScore(1, h, pair[1])
	}
	assert.Equal(t, []int{2, 1}, r.SkinsWon())
}
