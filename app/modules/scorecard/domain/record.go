package scorecarddomain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SaveRecord is the persisted form of a round.
type SaveRecord struct {
	Players   []string  `json:"players"`
	Scores    [][]Entry `json:"scores"`
	CourseKey string    `json:"courseKey"`
}

// EncodeRound serialises r as a SaveRecord.
func EncodeRound(r Round) ([]byte, error) {
	rec := SaveRecord{
		Players:   r.Players,
		Scores:    r.Scores,
		CourseKey: r.CourseID,
	}
	if rec.Players == nil {
		rec.Players = []string{}
	}
	if rec.Scores == nil {
		rec.Scores = [][]Entry{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save record: %w", err)
	}
	return data, nil
}

// DecodeRound parses a SaveRecord stored under key and normalises its shape:
// at most four players, exactly one row of 18 sanitised entries per player.
// courseID fills in the course when the record does not name one.
func DecodeRound(key string, data []byte, courseID string) (Round, error) {
	var rec SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Round{}, &MalformedSaveDataError{Key: key, Err: err}
	}
	if rec.Players == nil {
		return Round{}, &MalformedSaveDataError{Key: key, Err: errors.New("players missing")}
	}

	r := Round{
		CourseID: rec.CourseKey,
		Players:  rec.Players,
		Scores:   rec.Scores,
	}
	if r.CourseID == "" {
		r.CourseID = courseID
	}
	r.normalize()
	return r, nil
}
