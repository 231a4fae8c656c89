// internal/puzzle/types.go
//
// Core type definitions for the trail puzzle engine.
// Defines:
//   - Config: one immutable generated puzzle (dimensions, checkpoints, solution).
//   - Tier: named difficulty presets selecting board size and checkpoint density.

package puzzle

import "github.com/gridtrail/go-server/internal/grid"

// Config describes a single puzzle. It is created once by Generate and
// treated as read-only afterwards: the validator, classifier and pathfinders
// never mutate it.
type Config struct {
	Width       int                // board width, > 0
	Height      int                // board height, > 0
	Checkpoints map[grid.Point]int // cell -> rank, ranks are contiguous 1..N
	Solution    []grid.Point       // generated Hamiltonian path; bookkeeping only,
	// never consulted when judging a player's path
}

// Cells returns the number of cells on the board.
func (c *Config) Cells() int { return c.Width * c.Height }

// MaxRank returns the highest checkpoint rank. Ranks are contiguous starting
// at 1, so this is just the checkpoint count.
func (c *Config) MaxRank() int { return len(c.Checkpoints) }

// Start returns the rank-1 checkpoint cell, where every player path begins.
func (c *Config) Start() grid.Point {
	for p, r := range c.Checkpoints {
		if r == 1 {
			return p
		}
	}
	return grid.Point{}
}

// RankAt returns the checkpoint rank at p, or 0 if p carries no checkpoint.
func (c *Config) RankAt(p grid.Point) int { return c.Checkpoints[p] }

// Tier selects a difficulty preset.
type Tier string

const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
)

// tierParams are the generation knobs behind each tier.
type tierParams struct {
	width, height int
	checkpoints   int
	minGap        int // minimum path-index distance between checkpoints
}

var tiers = map[Tier]tierParams{
	TierSmall:  {width: 6, height: 6, checkpoints: 4, minGap: 4},
	TierMedium: {width: 8, height: 8, checkpoints: 6, minGap: 5},
	TierLarge:  {width: 10, height: 10, checkpoints: 9, minGap: 6},
}

// rewires scales the rewiring effort with board area so larger boards drift
// further from the deterministic serpentine seed.
func (p tierParams) rewires() int { return 10 * p.width * p.height }

// Tiers lists the known tier names. Handy for diagnostics endpoints.
func Tiers() []Tier { return []Tier{TierSmall, TierMedium, TierLarge} }
