package scorecarddomain

import (
	"testing"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScorecard(t *testing.T) {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4}
	course := coursedomain.Course{ID: "riverside", Name: "Riverside", Pars: pars, Yardages: pars}

	r := NewRound(course.ID, []string{"Al B", "Cy D"})
	_, _ = r.SetScore(0, 0, "3")
	_, _ = r.SetScore(1, 0, "5")
	_, _ = r.SetScore(0, 10, "6")

	card := BuildScorecard("RI_Saved_Game1_riverside", course, r, "save failed")

	assert.Equal(t, "RI_Saved_Game1_riverside", card.SlotKey)
	assert.Equal(t, 72, card.ParTotals.Total)
	assert.Equal(t, "save failed", card.SaveWarning)
	require.Len(t, card.Players, 2)
	assert.Equal(t, coursedomain.Totals{Front: 3, Back: 6, Total: 9}, card.Players[0].Totals)
	assert.Equal(t, 1, card.Players[0].ToPar)
	assert.Equal(t, 2, card.Players[0].Skins)
	assert.Equal(t, 1, card.Players[1].ToPar)
	assert.Equal(t, "AB", card.Skins[0])
	assert.Equal(t, "AB", card.Skins[10])

	card.Players[0].Scores[0] = "9"
	assert.Equal(t, Entry("3"), r.Scores[0][0])
}
