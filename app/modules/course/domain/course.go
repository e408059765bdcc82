package coursedomain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// HoleCount is the number of holes on every course the catalog accepts.
	HoleCount = 18
	// NineHoles splits the front nine from the back nine.
	NineHoles = 9
)

// ErrCourseNotFound is returned when a course id is not in the catalog.
var ErrCourseNotFound = errors.New("course not found")

var courseIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// GreenFees are the published weekday and weekend rates.
type GreenFees struct {
	Weekday float64 `yaml:"weekday" json:"weekday"`
	Weekend float64 `yaml:"weekend" json:"weekend"`
}

// Course is an immutable catalog entry. Optional display fields stay nil/empty
// when the catalog does not provide them.
type Course struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Pars     []int  `yaml:"pars" json:"pars"`
	Yardages []int  `yaml:"yardages" json:"yardages"`

	Address     string     `yaml:"address,omitempty" json:"address,omitempty"`
	City        string     `yaml:"city,omitempty" json:"city,omitempty"`
	Province    string     `yaml:"province,omitempty" json:"province,omitempty"`
	State       string     `yaml:"state,omitempty" json:"state,omitempty"`
	Country     string     `yaml:"country,omitempty" json:"country,omitempty"`
	Phone       string     `yaml:"phone,omitempty" json:"phone,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Rating      *float64   `yaml:"rating,omitempty" json:"rating,omitempty"`
	Slope       *int       `yaml:"slope,omitempty" json:"slope,omitempty"`
	Distance    *float64   `yaml:"distance,omitempty" json:"distance,omitempty"`
	GreenFees   *GreenFees `yaml:"greenFees,omitempty" json:"greenFees,omitempty"`
	Facilities  []string   `yaml:"facilities,omitempty" json:"facilities,omitempty"`
}

// Validate checks the catalog invariants: a store-safe id, a name, and exactly
// 18 positive pars and yardages.
func (c Course) Validate() error {
	if !courseIDPattern.MatchString(c.ID) {
		return fmt.Errorf("course %q: id must match %s", c.ID, courseIDPattern.String())
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("course %q: name is required", c.ID)
	}
	if len(c.Pars) != HoleCount {
		return fmt.Errorf("course %q: expected %d pars, got %d", c.ID, HoleCount, len(c.Pars))
	}
	if len(c.Yardages) != HoleCount {
		return fmt.Errorf("course %q: expected %d yardages, got %d", c.ID, HoleCount, len(c.Yardages))
	}
	for i := 0; i < HoleCount; i++ {
		if c.Pars[i] <= 0 {
			return fmt.Errorf("course %q: par for hole %d must be positive", c.ID, i+1)
		}
		if c.Yardages[i] <= 0 {
			return fmt.Errorf("course %q: yardage for hole %d must be positive", c.ID, i+1)
		}
	}
	return nil
}

// HoleRange is a half-open range of 0-based hole indices.
type HoleRange struct {
	Start int
	End   int
}

var (
	FrontNine = HoleRange{Start: 0, End: NineHoles}
	BackNine  = HoleRange{Start: NineHoles, End: HoleCount}
	FullRound = HoleRange{Start: 0, End: HoleCount}
)

// Clamp restricts r to [0, n).
func (r HoleRange) Clamp(n int) HoleRange {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Start > n {
		r.Start = n
	}
	if r.End > n {
		r.End = n
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// SumInts adds values[start:end], clamping the range to the slice.
func SumInts(values []int, r HoleRange) int {
	r = r.Clamp(len(values))
	total := 0
	for _, v := range values[r.Start:r.End] {
		total += v
	}
	return total
}

// Totals holds front/back/full sums of a per-hole series.
type Totals struct {
	Front int `json:"front"`
	Back  int `json:"back"`
	Total int `json:"total"`
}

// TotalsOf sums a per-hole series over the front nine, back nine and full round.
func TotalsOf(values []int) Totals {
	return Totals{
		Front: SumInts(values, FrontNine),
		Back:  SumInts(values, BackNine),
		Total: SumInts(values, FullRound),
	}
}

// ParTotals returns the par sums of the course.
func (c Course) ParTotals() Totals { return TotalsOf(c.Pars) }

// YardageTotals returns the yardage sums of the course.
func (c Course) YardageTotals() Totals { return TotalsOf(c.Yardages) }

// Initials is the two-character course prefix used in save slot keys: the first
// two characters of the name, uppercased. Anything outside [A-Z0-9] becomes X so
// the key stays valid for every store driver. An empty name yields "XX".
func (c Course) Initials() string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(c.Name)))
	if len(runes) == 0 {
		return "XX"
	}
	if len(runes) > 2 {
		runes = runes[:2]
	}
	var b strings.Builder
	for _, r := range runes {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('X')
		}
	}
	return b.String()
}

// Summary is the list view of a course.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	Par      int    `json:"par"`
	Yardage  int    `json:"yardage"`
	Initials string `json:"initials"`
}

// Summarize builds the list view of c.
func (c Course) Summarize() Summary {
	return Summary{
		ID:       c.ID,
		Name:     c.Name,
		City:     c.City,
		Par:      c.ParTotals().Total,
		Yardage:  c.YardageTotals().Total,
		Initials: c.Initials(),
	}
}
