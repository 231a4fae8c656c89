// internal/grid/grid.go
//
// Small value types shared by the puzzle engine and the HTTP layer.
// A Point is an immutable 0-indexed cell coordinate; equality is structural,
// so Point works directly as a map key (checkpoint lookups, visited sets).

package grid

// Point is a cell coordinate on a rectangular grid.
// X grows rightward in [0,width), Y grows downward in [0,height).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// In reports whether p lies inside a width x height grid.
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Adjacent reports whether q is exactly one orthogonal step from p.
// Diagonals are not adjacent.
func (p Point) Adjacent(q Point) bool {
	dx := abs(p.X - q.X)
	dy := abs(p.Y - q.Y)
	return dx+dy == 1
}

// Neighbors returns the four orthogonal neighbors of p.
// Callers filter for bounds themselves.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
