package scorecarddomain

import (
	"fmt"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// MaxPlayers is the most players a round can hold.
const MaxPlayers = 4

// Round is the state of one game: up to four players and one row of 18 entries
// per player.
type Round struct {
	CourseID string
	Players  []string
	Scores   [][]Entry
}

// NewRound creates a round with every score unset.
func NewRound(courseID string, players []string) Round {
	r := Round{
		CourseID: courseID,
		Players:  append([]string(nil), players...),
		Scores:   make([][]Entry, len(players)),
	}
	for i := range r.Scores {
		r.Scores[i] = make([]Entry, coursedomain.HoleCount)
	}
	return r
}

// DefaultRound is the round used when a save cannot be decoded: four blank
// players with every score unset.
func DefaultRound(courseID string) Round {
	return NewRound(courseID, make([]string, MaxPlayers))
}

// Clone returns a deep copy of r.
func (r Round) Clone() Round {
	out := Round{
		CourseID: r.CourseID,
		Players:  append([]string(nil), r.Players...),
		Scores:   make([][]Entry, len(r.Scores)),
	}
	for i, row := range r.Scores {
		out.Scores[i] = append([]Entry(nil), row...)
	}
	return out
}

func (r Round) checkPlayer(player int) error {
	if player < 0 || player >= len(r.Players) {
		return fmt.Errorf("%w: %d (round has %d players)", ErrPlayerOutOfRange, player, len(r.Players))
	}
	return nil
}

// SetScore stores the digits of raw at (player, hole). A raw value with no
// digits clears the entry.
func (r *Round) SetScore(player, hole int, raw string) (Entry, error) {
	if err := r.checkPlayer(player); err != nil {
		return Unset, err
	}
	if hole < 0 || hole >= coursedomain.HoleCount {
		return Unset, fmt.Errorf("%w: %d", ErrHoleOutOfRange, hole)
	}
	entry := SanitizeEntry(raw)
	r.Scores[player][hole] = entry
	return entry, nil
}

// RenamePlayer replaces a player's name. Names are not trimmed and need not be
// unique.
func (r *Round) RenamePlayer(player int, name string) error {
	if err := r.checkPlayer(player); err != nil {
		return err
	}
	r.Players[player] = name
	return nil
}

// Total sums a player's strokes over the hole range.
func (r Round) Total(player int, holes coursedomain.HoleRange) (int, error) {
	if err := r.checkPlayer(player); err != nil {
		return 0, err
	}
	row := r.Scores[player]
	holes = holes.Clamp(len(row))
	total := 0
	for _, e := range row[holes.Start:holes.End] {
		total += e.Strokes()
	}
	return total, nil
}

// Totals returns front, back and full sums for a player.
func (r Round) Totals(player int) (coursedomain.Totals, error) {
	if err := r.checkPlayer(player); err != nil {
		return coursedomain.Totals{}, err
	}
	front, _ := r.Total(player, coursedomain.FrontNine)
	back, _ := r.Total(player, coursedomain.BackNine)
	full, _ := r.Total(player, coursedomain.FullRound)
	return coursedomain.Totals{Front: front, Back: back, Total: full}, nil
}

// normalize enforces the shape invariants on a decoded round.
func (r *Round) normalize() {
	if len(r.Players) > MaxPlayers {
		r.Players = r.Players[:MaxPlayers]
	}
	rows := make([][]Entry, len(r.Players))
	for i := range rows {
		row := make([]Entry, coursedomain.HoleCount)
		if i < len(r.Scores) {
			for h := 0; h < coursedomain.HoleCount && h < len(r.Scores[i]); h++ {
				row[h] = SanitizeEntry(string(r.Scores[i][h]))
			}
		}
		rows[i] = row
	}
	r.Scores = rows
}
