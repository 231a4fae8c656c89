// internal/puzzle/validate.go
//
// Move legality and end-state classification for a player path.
// Everything here is a pure predicate over (path, config): no mutation,
// no errors. Illegal input simply yields false.

package puzzle

import "github.com/gridtrail/go-server/internal/grid"

// IsValidMove reports whether next is a legal extension of path.
//
// A move is legal when all of the following hold:
//  1. next is orthogonally adjacent to the path head.
//  2. next is on the board.
//  3. next has not been visited by path.
//  4. If next carries a checkpoint, its rank is exactly one more than the
//     highest rank already visited. Un-numbered cells impose no ordering.
//
// Callers are expected to pass a non-empty path (a seeded start cell always
// exists); an empty path yields false rather than a panic.
func IsValidMove(path []grid.Point, next grid.Point, cfg *Config) bool {
	if len(path) == 0 {
		return false
	}
	head := path[len(path)-1]
	if !head.Adjacent(next) {
		return false
	}
	if !next.In(cfg.Width, cfg.Height) {
		return false
	}
	for _, p := range path {
		if p == next {
			return false
		}
	}
	if rank := cfg.RankAt(next); rank != 0 {
		if rank != MaxVisitedRank(path, cfg)+1 {
			return false
		}
	}
	return true
}

// MaxVisitedRank returns the highest checkpoint rank present in path,
// or 0 if path touches no checkpoint.
func MaxVisitedRank(path []grid.Point, cfg *Config) int {
	max := 0
	for _, p := range path {
		if r := cfg.RankAt(p); r > max {
			max = r
		}
	}
	return max
}

// IsWin reports whether path solves the puzzle: every cell covered and the
// final cell holds the highest-numbered checkpoint.
func IsWin(path []grid.Point, cfg *Config) bool {
	if len(path) != cfg.Cells() {
		return false
	}
	return cfg.RankAt(path[len(path)-1]) == cfg.MaxRank()
}

// IsFullMiss reports whether path covers the whole board but ends somewhere
// other than the final checkpoint.
func IsFullMiss(path []grid.Point, cfg *Config) bool {
	if len(path) != cfg.Cells() {
		return false
	}
	return cfg.RankAt(path[len(path)-1]) != cfg.MaxRank()
}

// IsSaturated reports whether path has visited every checkpoint while the
// board is still incomplete. This is surfaced to the player as a likely
// dead-end, not enforced as a game-over: moves remain accepted.
func IsSaturated(path []grid.Point, cfg *Config) bool {
	if len(path) >= cfg.Cells() {
		return false
	}
	return MaxVisitedRank(path, cfg) == cfg.MaxRank()
}
