package puzzle

import (
	"testing"

	"github.com/gridtrail/go-server/internal/grid"
)

func TestFindStraightLinePath(t *testing.T) {
	cfg := openConfig(5, 5)
	path := []grid.Point{{X: 0, Y: 0}}

	got := FindStraightLinePath(grid.Point{X: 0, Y: 0}, grid.Point{X: 0, Y: 3}, path, cfg)
	want := []grid.Point{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindStraightLinePathRejectsUnaligned(t *testing.T) {
	cfg := openConfig(5, 5)
	path := []grid.Point{{X: 0, Y: 0}}
	if got := FindStraightLinePath(grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 3}, path, cfg); got != nil {
		t.Fatalf("unaligned target must return nil, got %v", got)
	}
}

func TestFindStraightLinePathNoPartialResult(t *testing.T) {
	cfg := openConfig(5, 5)
	// Trail occupies (0,2); a walk from (0,0) to (0,3) must fail whole.
	path := []grid.Point{{X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	if got := FindStraightLinePath(grid.Point{X: 0, Y: 0}, grid.Point{X: 0, Y: 3}, path, cfg); got != nil {
		t.Fatalf("blocked line must return nil, got %v", got)
	}
}

func TestFindShortestPathLength(t *testing.T) {
	cfg := openConfig(3, 3)
	path := []grid.Point{{X: 0, Y: 0}}
	got := FindShortestPath(grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 2}, path, cfg)
	if len(got) != 4 {
		t.Fatalf("expected a 4-step extension, got %v", got)
	}
	if got[len(got)-1] != (grid.Point{X: 2, Y: 2}) {
		t.Fatalf("extension must end on the target, got %v", got)
	}
}

func TestFindShortestPathWalledOff(t *testing.T) {
	cfg := openConfig(3, 3)
	// Trail (1,0)-(1,1)-(0,1)-(0,2) covers both neighbors of (0,0),
	// sealing it away from the head (0,2).
	path := []grid.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	if got := FindShortestPath(grid.Point{X: 0, Y: 2}, grid.Point{X: 0, Y: 0}, path, cfg); got != nil {
		t.Fatalf("unreachable target must return nil, got %v", got)
	}
}

func TestFindShortestPathHonorsCheckpointOrder(t *testing.T) {
	cfg := &Config{Width: 3, Height: 3, Checkpoints: map[grid.Point]int{
		{X: 0, Y: 0}: 1,
		{X: 2, Y: 0}: 2,
		{X: 2, Y: 2}: 3,
	}}
	path := []grid.Point{{X: 0, Y: 0}}

	got := FindShortestPath(grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 2}, path, cfg)
	if len(got) != 4 {
		t.Fatalf("expected a 4-step extension, got %v", got)
	}
	through := false
	for _, p := range got {
		if p == (grid.Point{X: 2, Y: 0}) {
			through = true
		}
	}
	if !through {
		t.Fatalf("route to rank 3 must pass rank 2 first, got %v", got)
	}
}

func TestPathfindersDoNotMutateInputs(t *testing.T) {
	cfg := openConfig(4, 4)
	path := []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	_ = FindStraightLinePath(grid.Point{X: 1, Y: 0}, grid.Point{X: 3, Y: 0}, path, cfg)
	_ = FindShortestPath(grid.Point{X: 1, Y: 0}, grid.Point{X: 3, Y: 3}, path, cfg)
	if len(path) != 2 || path[0] != (grid.Point{X: 0, Y: 0}) || path[1] != (grid.Point{X: 1, Y: 0}) {
		t.Fatalf("pathfinders mutated the player path: %v", path)
	}
}
