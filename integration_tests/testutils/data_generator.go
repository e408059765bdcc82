package testutils

import (
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// PlayerNames returns count distinct "First Last" names.
func (g *TestDataGenerator) PlayerNames(count int) []string {
	seen := make(map[string]bool, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := g.faker.FirstName() + " " + g.faker.LastName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Strokes returns a plausible hole score for the given par.
func (g *TestDataGenerator) Strokes(par int) string {
	return strconv.Itoa(g.faker.Number(max(1, par-1), par+3))
}
