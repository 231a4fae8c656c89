// internal/session/session.go
//
// One player's attempt at one puzzle. The session owns the mutable state
// the pure engine deliberately does not: the drawn path, the undo history
// and the attempt clock. All path mutations go through MoveTo/Undo/Clear so
// the no-revisit and adjacency invariants can never be broken from outside.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gridtrail/go-server/internal/grid"
	"github.com/gridtrail/go-server/internal/puzzle"
)

// Status is the coarse game state reported after every mutation.
type Status string

const (
	// StatusPlaying: the attempt is in progress.
	StatusPlaying Status = "playing"
	// StatusWon: board full and the path ends on the final checkpoint.
	StatusWon Status = "won"
	// StatusFullMiss: board full but the path ends on the wrong cell.
	StatusFullMiss Status = "full_miss"
	// StatusAllCheckpoints: every checkpoint visited with the board still
	// incomplete. Reported as a warning; moves stay accepted.
	StatusAllCheckpoints Status = "all_checkpoints"
)

// Session holds the state of a single puzzle attempt.
type Session struct {
	ID        string
	Config    *puzzle.Config
	Path      []grid.Point
	Moves     int // accepted MoveTo calls
	StartedAt time.Time

	history [][]grid.Point
}

// New starts an attempt on cfg with the path seeded at the rank-1 cell.
func New(cfg *puzzle.Config) *Session {
	return &Session{
		ID:        randomID(),
		Config:    cfg,
		Path:      []grid.Point{cfg.Start()},
		StartedAt: time.Now(),
	}
}

// MoveTo moves the path toward target and reports whether anything changed.
//
// Resolution order:
//  1. target already on the path -> retract: truncate back to target.
//  2. target is a legal single step -> append it.
//  3. straight-line extension along target's row/column, if legal end to end.
//  4. shortest-path extension through unvisited cells.
//
// An unreachable or illegal target is a no-op, not an error.
func (s *Session) MoveTo(target grid.Point) bool {
	for i, p := range s.Path {
		if p == target {
			if i == len(s.Path)-1 {
				return false
			}
			s.push()
			s.Path = clone(s.Path[:i+1])
			s.Moves++
			return true
		}
	}

	head := s.Path[len(s.Path)-1]
	if puzzle.IsValidMove(s.Path, target, s.Config) {
		s.push()
		s.Path = append(clone(s.Path), target)
		s.Moves++
		return true
	}
	ext := puzzle.FindStraightLinePath(head, target, s.Path, s.Config)
	if ext == nil {
		ext = puzzle.FindShortestPath(head, target, s.Path, s.Config)
	}
	if ext == nil {
		return false
	}
	s.push()
	s.Path = append(clone(s.Path), ext...)
	s.Moves++
	return true
}

// Undo restores the path as it was before the last accepted move.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	s.Path = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return true
}

// Clear resets the path to the starting cell and drops the history.
func (s *Session) Clear() {
	s.Path = []grid.Point{s.Config.Start()}
	s.history = nil
}

// Status classifies the current path.
func (s *Session) Status() Status {
	switch {
	case puzzle.IsWin(s.Path, s.Config):
		return StatusWon
	case puzzle.IsFullMiss(s.Path, s.Config):
		return StatusFullMiss
	case puzzle.IsSaturated(s.Path, s.Config):
		return StatusAllCheckpoints
	}
	return StatusPlaying
}

// Elapsed returns time since the attempt started.
func (s *Session) Elapsed() time.Duration { return time.Since(s.StartedAt) }

// Clock returns the attempt clock formatted for display.
func (s *Session) Clock() string { return FormatTime(int(s.Elapsed().Seconds())) }

// FormatTime renders whole seconds as "MM:SS" (65 -> "01:05").
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// push snapshots the current path onto the undo stack.
func (s *Session) push() {
	s.history = append(s.history, clone(s.Path))
}

func clone(path []grid.Point) []grid.Point {
	out := make([]grid.Point, len(path))
	copy(out, path)
	return out
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
