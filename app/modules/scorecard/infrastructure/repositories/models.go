package scorecarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// SavedGame is one row of the saved_games table.
type SavedGame struct {
	bun.BaseModel `bun:"table:saved_games,alias:sg"`

	Key       string    `bun:"slot_key,pk"`
	Payload   string    `bun:"payload,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
