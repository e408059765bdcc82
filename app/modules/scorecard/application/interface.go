package scorecardservice

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
)

// CourseLookup resolves course ids.
type CourseLookup interface {
	Get(id string) (coursedomain.Course, error)
}

// Service drives the save slot lifecycle and the scorecard engine. Every
// mutation writes the whole round back to the save store.
type Service interface {
	// ListSlots reports both save slots of a course.
	ListSlots(ctx context.Context, courseID string) ([]scorecarddomain.Slot, error)

	// StartNewRound writes a fresh round to the first free slot of a course.
	StartNewRound(ctx context.Context, courseID string, playerNames []string) (*scorecarddomain.Scorecard, error)

	// ContinueRound opens the round stored under slotKey.
	ContinueRound(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error)

	// SetScore stores the digits of raw for a player and hole.
	SetScore(ctx context.Context, slotKey string, player, hole int, raw string) (*scorecarddomain.Scorecard, error)

	// RenamePlayer changes a player's name.
	RenamePlayer(ctx context.Context, slotKey string, player int, name string) (*scorecarddomain.Scorecard, error)

	// RetrySave writes the open round again after a failed save.
	RetrySave(ctx context.Context, slotKey string) (*scorecarddomain.Scorecard, error)

	// DeleteRound clears a save slot. confirmed must be true.
	DeleteRound(ctx context.Context, slotKey string, confirmed bool) error
}
