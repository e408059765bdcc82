package scorecarddomain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEntry(t *testing.T) {
	tests := []struct {
		raw  string
		want Entry
	}{
		{"4", "4"},
		{"a4b", "4"},
		{"1x2", "12"},
		{"", Unset},
		{"abc", Unset},
		{" 5 ", "5"},
		{"-3", "3"},
		{"٣", Unset}, // non-ASCII digit
		{"007", "007"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeEntry(tt.raw))
		})
	}
}

func TestEntry_Value(t *testing.T) {
	tests := []struct {
		name   string
		entry  Entry
		want   int
		wantOK bool
	}{
		{name: "unset", entry: Unset},
		{name: "simple", entry: "5", want: 5, wantOK: true},
		{name: "leading zeros", entry: "007", want: 7, wantOK: true},
		{name: "zero", entry: "0", want: 0, wantOK: true},
		{name: "overflow", entry: "99999999999999999999999"},
		{name: "garbage", entry: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.entry.Value()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, tt.entry.Strokes())
		})
	}
}

func TestEntry_UnmarshalJSON(t *testing.T) {
	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(`["4", "a5", "", null, 6, -2, 3.5]`), &entries))
	assert.Equal(t, []Entry{"4", "5", Unset, Unset, "6", Unset, Unset}, entries)

	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`true`), &e))
}
