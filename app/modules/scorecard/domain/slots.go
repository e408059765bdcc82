package scorecarddomain

import (
	"fmt"
	"regexp"
	"strconv"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// SlotCount is the number of save slots per course.
const SlotCount = 2

var slotKeyPattern = regexp.MustCompile(`^([A-Z0-9]{1,2})_Saved_Game([1-9][0-9]*)_([a-z0-9_-]+)$`)

// SlotKey builds the store key of a course's save slot (1-based).
func SlotKey(course coursedomain.Course, slot int) string {
	return fmt.Sprintf("%s_Saved_Game%d_%s", course.Initials(), slot, course.ID)
}

// SlotKeys returns every slot key of a course in preference order.
func SlotKeys(course coursedomain.Course) []string {
	keys := make([]string, SlotCount)
	for i := range keys {
		keys[i] = SlotKey(course, i+1)
	}
	return keys
}

// SlotRef is a parsed slot key.
type SlotRef struct {
	Initials string
	Slot     int
	CourseID string
}

// ParseSlotKey splits a slot key into its parts.
func ParseSlotKey(key string) (SlotRef, error) {
	m := slotKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return SlotRef{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	slot, err := strconv.Atoi(m[2])
	if err != nil || slot > SlotCount {
		return SlotRef{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	return SlotRef{Initials: m[1], Slot: slot, CourseID: m[3]}, nil
}

// Slot describes one save slot of a course.
type Slot struct {
	Key      string   `json:"key"`
	Number   int      `json:"number"`
	Occupied bool     `json:"occupied"`
	Players  []string `json:"players,omitempty"`
}
