package scorecarddomain

import (
	"errors"
	"fmt"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

var (
	// ErrNoPlayers is returned when every submitted player name is blank.
	ErrNoPlayers = errors.New("at least one player name is required")
	// ErrSlotsExhausted is returned when both save slots of a course are occupied.
	ErrSlotsExhausted = errors.New("both save slots for this course are in use")
	// ErrTooManyPlayers is returned when more than MaxPlayers names remain after filtering.
	ErrTooManyPlayers = fmt.Errorf("a round holds at most %d players", MaxPlayers)
	// ErrSaveNotFound is returned when no save record exists under a slot key.
	ErrSaveNotFound = errors.New("saved round not found")
	// ErrPlayerOutOfRange is returned for a player index outside the round.
	ErrPlayerOutOfRange = errors.New("player index out of range")
	// ErrHoleOutOfRange is returned for a hole index outside [0, 18).
	ErrHoleOutOfRange = errors.New("hole index out of range")
	// ErrConfirmationRequired is returned when a delete is not confirmed.
	ErrConfirmationRequired = errors.New("delete must be confirmed")
	// ErrInvalidSlotKey is returned for keys that do not follow the slot key format.
	ErrInvalidSlotKey = errors.New("invalid save slot key")
	// ErrStoreUnavailable matches both StoreReadError and StoreWriteError.
	ErrStoreUnavailable = errors.New("save store unavailable")

	// ErrCourseNotFound is re-exported so callers need only this package.
	ErrCourseNotFound = coursedomain.ErrCourseNotFound
)

// StoreReadError reports a failed read from the save store.
type StoreReadError struct {
	Key string
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("failed to read save %q: %v", e.Key, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

func (e *StoreReadError) Is(target error) bool { return target == ErrStoreUnavailable }

// StoreWriteError reports a failed write to the save store.
type StoreWriteError struct {
	Key string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to write save %q: %v", e.Key, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

func (e *StoreWriteError) Is(target error) bool { return target == ErrStoreUnavailable }

// MalformedSaveDataError reports a save record that could not be decoded.
type MalformedSaveDataError struct {
	Key string
	Err error
}

func (e *MalformedSaveDataError) Error() string {
	return fmt.Sprintf("malformed save data under %q: %v", e.Key, e.Err)
}

func (e *MalformedSaveDataError) Unwrap() error { return e.Err }
