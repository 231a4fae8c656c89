// internal/puzzle/checkpoints.go
//
// Checkpoint placement along a generated solution path. Two phases: a
// bounded rejection-sampling phase that honors the minimum spacing, then a
// deterministic shuffled fallback that waives spacing so placement always
// terminates with as many checkpoints as the path can hold.

package puzzle

import (
	"math/rand"
	"sort"

	"github.com/gridtrail/go-server/internal/grid"
)

// placeAttempts bounds the rejection-sampling phase.
const placeAttempts = 1000

// PlaceCheckpoints picks count indices along path, always including the
// first and last, and assigns ranks 1..count in path order. Interior picks
// keep at least minGap path-index distance from every other pick while the
// attempt budget lasts; fallback picks may sit closer. Because ranks are
// assigned in ascending index order, the rank sequence along the path is
// strictly increasing by construction.
func PlaceCheckpoints(path []grid.Point, count, minGap int, rng *rand.Rand) map[grid.Point]int {
	n := len(path)
	if n == 0 {
		return map[grid.Point]int{}
	}
	if count > n {
		count = n
	}
	if count < 2 && n >= 2 {
		count = 2
	}

	chosen := map[int]bool{0: true, n - 1: true}
	if n > 2 {
		for tries := 0; tries < placeAttempts && len(chosen) < count; tries++ {
			idx := 1 + rng.Intn(n-2)
			if chosen[idx] {
				continue
			}
			spaced := true
			for c := range chosen {
				if dist(c, idx) < minGap {
					spaced = false
					break
				}
			}
			if spaced {
				chosen[idx] = true
			}
		}
	}

	// Fallback: complete from the remaining interior indices in shuffled
	// order, ignoring the gap constraint.
	if len(chosen) < count {
		var rest []int
		for i := 1; i < n-1; i++ {
			if !chosen[i] {
				rest = append(rest, i)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		for _, idx := range rest {
			if len(chosen) >= count {
				break
			}
			chosen[idx] = true
		}
	}

	idxs := make([]int, 0, len(chosen))
	for i := range chosen {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	cps := make(map[grid.Point]int, len(idxs))
	for rank, idx := range idxs {
		cps[path[idx]] = rank + 1
	}
	return cps
}

func dist(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
