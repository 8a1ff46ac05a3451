package testutil

import "github.com/roach88/recsel/internal/store"

var _ store.IDGenerator = (*StaticIDGenerator)(nil)

// StaticIDGenerator returns the same store ID every time.
//
// Unlike store.FixedGenerator, which hands out a list of IDs in order and
// panics when it runs out, this generator never runs out. Scenario runs use
// it so every store they create logs under a predictable ID.
//
// Thread-safety: StaticIDGenerator is stateless and safe for concurrent use.
type StaticIDGenerator struct {
	id string
}

// NewStaticIDGenerator creates a generator for id.
// If id is empty, Generate() returns "test-store-default".
func NewStaticIDGenerator(id string) *StaticIDGenerator {
	if id == "" {
		id = "test-store-default"
	}
	return &StaticIDGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *StaticIDGenerator) Generate() string {
	return g.id
}
