package scorecarddomain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one hole score: "" when unset, otherwise a string of ASCII digits.
type Entry string

// Unset is the empty entry.
const Unset Entry = ""

// SanitizeEntry keeps only the ASCII digits of raw.
func SanitizeEntry(raw string) Entry {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return Entry(b.String())
}

// IsSet reports whether the entry holds any digits.
func (e Entry) IsSet() bool { return e != Unset }

// Value returns the numeric value. ok is false for unset entries and for digit
// strings that overflow an int.
func (e Entry) Value() (int, bool) {
	if e == Unset {
		return 0, false
	}
	n, err := strconv.Atoi(string(e))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Strokes is the value used in totals: unset and non-numeric entries count 0.
func (e Entry) Strokes() int {
	n, _ := e.Value()
	return n
}

// UnmarshalJSON accepts strings, non-negative integers and null. Strings are
// sanitised on the way in.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*e = Unset
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = SanitizeEntry(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("score entry must be a string, number or null: %w", err)
	}
	v, err := n.Int64()
	if err != nil || v < 0 {
		*e = Unset
		return nil
	}
	*e = Entry(strconv.FormatInt(v, 10))
	return nil
}
