// internal/puzzle/hamiltonian.go
//
// Random full-coverage path generation. A deterministic serpentine path is
// a Hamiltonian path on any rectangular grid; repeated backbiting rewires
// then randomize its structure. Every rewire is path-preserving, so the
// result is always a valid Hamiltonian path regardless of iteration count.

package puzzle

import (
	"math/rand"

	"github.com/gridtrail/go-server/internal/grid"
)

// GeneratePath returns a random Hamiltonian path on a width x height grid:
// length width*height, every cell exactly once, consecutive cells adjacent.
// rng drives endpoint and target selection; rewires controls how far the
// result drifts from the serpentine seed.
func GeneratePath(width, height, rewires int, rng *rand.Rand) []grid.Point {
	path := serpentine(width, height)
	n := len(path)
	if n < 3 {
		return path
	}

	// Reverse index: cell -> position in path. Kept in sync after each rewire.
	index := make(map[grid.Point]int, n)
	for i, p := range path {
		index[p] = i
	}

	for it := 0; it < rewires; it++ {
		// Work on the tail or the head with equal probability.
		fromTail := rng.Intn(2) == 0
		var endpoint, anchor grid.Point
		if fromTail {
			endpoint, anchor = path[n-1], path[n-2]
		} else {
			endpoint, anchor = path[0], path[1]
		}

		// Candidate reconnection targets: in-bounds grid neighbors of the
		// endpoint, excluding the cell it is already attached to.
		var cands []grid.Point
		for _, nb := range endpoint.Neighbors() {
			if nb.In(width, height) && nb != anchor {
				cands = append(cands, nb)
			}
		}
		if len(cands) == 0 {
			continue
		}
		target := cands[rng.Intn(len(cands))]
		ti := index[target]

		// Classic backbite: cut the edge on the far side of target and
		// reverse the segment between target and the endpoint. The segment's
		// outer junctions stay grid-adjacent by construction, so the result
		// is again a simple path covering all cells.
		if fromTail {
			reverseRange(path, ti+1, n-1)
			for i := ti + 1; i < n; i++ {
				index[path[i]] = i
			}
		} else {
			reverseRange(path, 0, ti-1)
			for i := 0; i < ti; i++ {
				index[path[i]] = i
			}
		}
	}
	return path
}

// serpentine builds the boustrophedon seed path: row 0 left to right,
// row 1 right to left, and so on.
func serpentine(width, height int) []grid.Point {
	path := make([]grid.Point, 0, width*height)
	for y := 0; y < height; y++ {
		if y%2 == 0 {
			for x := 0; x < width; x++ {
				path = append(path, grid.Point{X: x, Y: y})
			}
		} else {
			for x := width - 1; x >= 0; x-- {
				path = append(path, grid.Point{X: x, Y: y})
			}
		}
	}
	return path
}

// reverseRange reverses path[lo..hi] in place, inclusive on both ends.
func reverseRange(path []grid.Point, lo, hi int) {
	for lo < hi {
		path[lo], path[hi] = path[hi], path[lo]
		lo++
		hi--
	}
}
