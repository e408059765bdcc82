package scorecarddb

import (
	"context"
	"errors"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
)

// RoundRepository implements Repository on top of any Store.
type RoundRepository struct {
	store Store
}

// NewRoundRepository creates a new round repository.
func NewRoundRepository(store Store) *RoundRepository {
	return &RoundRepository{store: store}
}

// LoadRound reads a save record. Decode failures are returned as
// *scorecarddomain.MalformedSaveDataError.
func (r *RoundRepository) LoadRound(ctx context.Context, slotKey, courseID string) (scorecarddomain.Round, error) {
	data, err := r.store.Get(ctx, slotKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return scorecarddomain.Round{}, scorecarddomain.ErrSaveNotFound
		}
		return scorecarddomain.Round{}, &scorecarddomain.StoreReadError{Key: slotKey, Err: err}
	}
	return scorecarddomain.DecodeRound(slotKey, data, courseID)
}

// SaveRound encodes and writes a save record.
func (r *RoundRepository) SaveRound(ctx context.Context, slotKey string, round scorecarddomain.Round) error {
	data, err := scorecarddomain.EncodeRound(round)
	if err != nil {
		return &scorecarddomain.StoreWriteError{Key: slotKey, Err: err}
	}
	if err := r.store.Put(ctx, slotKey, data); err != nil {
		return &scorecarddomain.StoreWriteError{Key: slotKey, Err: err}
	}
	return nil
}

// DeleteRound removes a save record.
func (r *RoundRepository) DeleteRound(ctx context.Context, slotKey string) error {
	if err := r.store.Delete(ctx, slotKey); err != nil {
		return &scorecarddomain.StoreWriteError{Key: slotKey, Err: err}
	}
	return nil
}

// RoundExists reports whether anything is stored under slotKey. A value that
// fails to decode still occupies the slot.
func (r *RoundRepository) RoundExists(ctx context.Context, slotKey string) (bool, error) {
	_, err := r.store.Get(ctx, slotKey)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrKeyNotFound):
		return false, nil
	default:
		return false, &scorecarddomain.StoreReadError{Key: slotKey, Err: err}
	}
}

var _ Repository = (*RoundRepository)(nil)
