// Package scorecardevents defines the topics and payloads the scorecard
// service publishes after each successful change.
package scorecardevents

import (
	"time"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
)

const (
	// RoundStartedV1 is published when a new round is written to a free slot.
	RoundStartedV1 = "scorecard.round.started.v1"
	// ScoreUpdatedV1 is published after a hole entry changes.
	ScoreUpdatedV1 = "scorecard.score.updated.v1"
	// PlayerRenamedV1 is published after a player's name changes.
	PlayerRenamedV1 = "scorecard.player.renamed.v1"
	// RoundDeletedV1 is published after a save slot is cleared.
	RoundDeletedV1 = "scorecard.round.deleted.v1"
)

// Topics lists every scorecard topic.
var Topics = []string{RoundStartedV1, ScoreUpdatedV1, PlayerRenamedV1, RoundDeletedV1}

// RoundEventPayloadV1 is the payload of every scorecard topic. Fields that do
// not apply to a topic are omitted.
type RoundEventPayloadV1 struct {
	SlotKey    string                     `json:"slotKey"`
	CourseID   string                     `json:"courseId"`
	Player     *int                       `json:"player,omitempty"`
	Hole       *int                       `json:"hole,omitempty"`
	Value      *scorecarddomain.Entry     `json:"value,omitempty"`
	Name       *string                    `json:"name,omitempty"`
	Scorecard  *scorecarddomain.Scorecard `json:"scorecard,omitempty"`
	OccurredAt time.Time                  `json:"occurredAt"`
}
