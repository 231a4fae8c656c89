// internal/puzzle/pathfind.go
//
// Path extension search used for click/drag-to-cell moves: the caller tries
// the cheap straight-line walk first and falls back to a breadth-first
// search. Both honor exactly the same legality rules as IsValidMove and
// never mutate the player's path.

package puzzle

import "github.com/gridtrail/go-server/internal/grid"

// FindStraightLinePath walks one step at a time from start toward target
// along a shared row or column, validating every step against path plus the
// steps accumulated so far. Returns the cells after start up to and
// including target, or nil if start and target are not aligned or any step
// is illegal. No partial extension is ever returned.
func FindStraightLinePath(start, target grid.Point, path []grid.Point, cfg *Config) []grid.Point {
	if start == target {
		return nil
	}
	if start.X != target.X && start.Y != target.Y {
		return nil
	}
	dx := sign(target.X - start.X)
	dy := sign(target.Y - start.Y)

	walk := append([]grid.Point(nil), path...)
	var ext []grid.Point
	cur := start
	for cur != target {
		cur = grid.Point{X: cur.X + dx, Y: cur.Y + dy}
		if !IsValidMove(walk, cur, cfg) {
			return nil
		}
		walk = append(walk, cur)
		ext = append(ext, cur)
	}
	return ext
}

// FindShortestPath runs a breadth-first search from start (the path head)
// to target through unvisited cells. Cells already on path are impassable,
// so the search never crosses or touches the drawn trail. Each frontier
// entry carries its accumulated extension; a neighbor is admitted only when
// IsValidMove accepts it against path plus that extension. The first time
// target is dequeued its extension is returned, which BFS guarantees is a
// shortest legal one in cell count. Returns nil when target is unreachable.
func FindShortestPath(start, target grid.Point, path []grid.Point, cfg *Config) []grid.Point {
	type node struct {
		at  grid.Point
		ext []grid.Point
	}

	visited := make(map[grid.Point]bool, len(path))
	for _, p := range path {
		visited[p] = true
	}
	visited[start] = true

	queue := []node{{at: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.at == target {
			return cur.ext
		}
		trail := append(append([]grid.Point(nil), path...), cur.ext...)
		for _, nb := range cur.at.Neighbors() {
			if visited[nb] || !IsValidMove(trail, nb, cfg) {
				continue
			}
			visited[nb] = true
			ext := make([]grid.Point, len(cur.ext), len(cur.ext)+1)
			copy(ext, cur.ext)
			queue = append(queue, node{at: nb, ext: append(ext, nb)})
		}
	}
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
