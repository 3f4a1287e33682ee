package tests

import (
	"math/rand"
	"time"
)

// Randomizer is a seeded source for property-style tests. The seed is
// exposed so a failing run can be replayed.
type Randomizer struct {
	Seed    int64
	Float64 func() float64
	Intn    func(n int) int
	Bool    func() bool
}

func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().UnixNano())
}

func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Seed:    seed,
		Float64: random.Float64,
		Intn:    random.Intn,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
	}
}
