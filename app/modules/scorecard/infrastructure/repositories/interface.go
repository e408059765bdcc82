package scorecarddb

import (
	"context"
	"errors"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
)

// ErrKeyNotFound is returned by a Store when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value capability the save slots are persisted in.
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Repository persists rounds under save slot keys.
type Repository interface {
	// LoadRound reads and decodes the round stored under slotKey.
	// Missing keys yield scorecarddomain.ErrSaveNotFound.
	LoadRound(ctx context.Context, slotKey, courseID string) (scorecarddomain.Round, error)

	// SaveRound writes the whole round under slotKey.
	SaveRound(ctx context.Context, slotKey string, round scorecarddomain.Round) error

	// DeleteRound removes the round stored under slotKey.
	DeleteRound(ctx context.Context, slotKey string) error

	// RoundExists reports whether a save record is stored under slotKey.
	RoundExists(ctx context.Context, slotKey string) (bool, error)
}
