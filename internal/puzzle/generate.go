// internal/puzzle/generate.go
//
// Top-level puzzle construction: a Hamiltonian path plus checkpoints placed
// along it, sized by a difficulty tier.

package puzzle

import (
	"fmt"
	"math/rand"
	"time"
)

// Generate builds a fresh puzzle for tier using rng. Passing a fixed-seed
// rng makes generation reproducible (daily boards, tests); New wraps this
// with a time-seeded source for ordinary play.
func Generate(tier Tier, rng *rand.Rand) (*Config, error) {
	p, ok := tiers[tier]
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}
	path := GeneratePath(p.width, p.height, p.rewires(), rng)
	cps := PlaceCheckpoints(path, p.checkpoints, p.minGap, rng)
	return &Config{
		Width:       p.width,
		Height:      p.height,
		Checkpoints: cps,
		Solution:    path,
	}, nil
}

// New generates a puzzle with a time-seeded random source.
func New(tier Tier) (*Config, error) {
	return Generate(tier, rand.New(rand.NewSource(time.Now().UnixNano())))
}
