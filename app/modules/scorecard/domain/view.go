package scorecarddomain

import (
	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// PlayerCard is one player's row of the scorecard view.
type PlayerCard struct {
	Index    int                 `json:"index"`
	Name     string              `json:"name"`
	Initials string              `json:"initials"`
	Scores   []Entry             `json:"scores"`
	Totals   coursedomain.Totals `json:"totals"`
	ToPar    int                 `json:"toPar"`
	Skins    int                 `json:"skins"`
}

// Scorecard is the read model returned after every scorecard operation.
type Scorecard struct {
	SlotKey       string               `json:"slotKey"`
	Course        coursedomain.Summary `json:"course"`
	Pars          []int                `json:"pars"`
	Yardages      []int                `json:"yardages"`
	ParTotals     coursedomain.Totals  `json:"parTotals"`
	YardageTotals coursedomain.Totals  `json:"yardageTotals"`
	Players       []PlayerCard         `json:"players"`
	Skins         []string             `json:"skins"`
	SaveWarning   string               `json:"saveWarning,omitempty"`
}

// BuildScorecard derives totals and skins for the view.
func BuildScorecard(slotKey string, course coursedomain.Course, r Round, saveWarning string) Scorecard {
	parTotals := course.ParTotals()
	skinsWon := r.SkinsWon()

	players := make([]PlayerCard, len(r.Players))
	for i, name := range r.Players {
		totals, _ := r.Totals(i)
		players[i] = PlayerCard{
			Index:    i,
			Name:     name,
			Initials: PlayerInitials(name),
			Scores:   append([]Entry(nil), r.Scores[i]...),
			Totals:   totals,
			ToPar:    strokesToPar(course, r.Scores[i]),
			Skins:    skinsWon[i],
		}
	}

	return Scorecard{
		SlotKey:       slotKey,
		Course:        course.Summarize(),
		Pars:          course.Pars,
		Yardages:      course.Yardages,
		ParTotals:     parTotals,
		YardageTotals: course.YardageTotals(),
		Players:       players,
		Skins:         r.Skins(),
		SaveWarning:   saveWarning,
	}
}

// strokesToPar compares strokes against par over the holes that have a score.
func strokesToPar(course coursedomain.Course, row []Entry) int {
	diff := 0
	for h, e := range row {
		v, ok := e.Value()
		if !ok || h >= len(course.Pars) {
			continue
		}
		diff += v - course.Pars[h]
	}
	return diff
}
