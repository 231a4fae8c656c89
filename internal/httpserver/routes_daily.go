// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Board" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's board (creates or reuses session)
//   - POST /daily/move        → move on today's board
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can finish once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// Board generation is deterministic: the HMAC of date + salt seeds the
// generator, so everyone races the same layout.

package httpserver

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gridtrail/go-server/internal/daily"
	"github.com/gridtrail/go-server/internal/grid"
	"github.com/gridtrail/go-server/internal/puzzle"
	"github.com/gridtrail/go-server/internal/session"
)

// dailyTier is the board size everyone plays each day.
const dailyTier = puzzle.TierMedium

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily board.
type dailySession struct {
	Sess     *session.Session
	UserID   string
	Date     string
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/move", dd.handleMove)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// boardForToday returns today's date key and a freshly built copy of the
// day's board. Generation is pure given the seed, so every call yields the
// same layout.
func (d *dailyServer) boardForToday() (date string, cfg *puzzle.Config) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	rng := rand.New(rand.NewSource(daily.Seed(now, d.salt)))
	cfg, err := puzzle.Generate(dailyTier, rng)
	if err != nil {
		// dailyTier is a known constant; Generate cannot reject it.
		log.Error().Err(err).Msg("daily generate")
	}
	return date, cfg
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Board  *stateRes `json:"board,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return the board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, cfg := d.boardForToday()
	if cfg == nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	if !ok {
		ds = &dailySession{Sess: session.New(cfg), UserID: uid, Date: date}
		d.sessions[key] = ds
	}
	d.mu.Unlock()

	snap := snapshot(ds.Sess)
	_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: false, Board: &snap})
}

// -----------------------------------------------------------------------------
// /daily/move

// dailyMoveReq is the request payload for /daily/move.
type dailyMoveReq struct {
	SessionID string `json:"sessionId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// handleMove applies a move to today's daily session.
// - Rejects if no session or a mismatched session ID.
// - A finished session is locked against further moves.
// - Persists result to DB on win.
func (d *dailyServer) handleMove(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyMoveReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now().UTC())

	// Find the session and apply the move under the lock: the session is
	// shared across requests for the same user and day.
	key := uid + "|" + date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	if !ok || ds.Sess.ID != p.SessionID {
		d.mu.Unlock()
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if ds.Finished {
		d.mu.Unlock()
		http.Error(w, `{"error":"locked"}`, http.StatusConflict)
		return
	}

	moved := ds.Sess.MoveTo(grid.Point{X: p.X, Y: p.Y})
	won := ds.Sess.Status() == session.StatusWon
	if won {
		ds.Finished = true
	}
	snap := snapshot(ds.Sess)
	movesTaken := ds.Sess.Moves
	elapsed := int(ds.Sess.Elapsed().Milliseconds())
	d.mu.Unlock()

	if won {
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, Moves: movesTaken, ElapsedMs: elapsed,
		})
	}

	_ = json.NewEncoder(w).Encode(moveRes{Moved: moved, stateRes: snap})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
