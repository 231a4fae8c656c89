package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gridtrail/go-server/internal/store"
)

// testSchema mirrors sql/001_init.sql closely enough for handler tests.
const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL, puzzles_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0, streak INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE puzzles (
    id TEXT PRIMARY KEY, user_id TEXT, anonymous_id TEXT, tier TEXT NOT NULL,
    width INTEGER NOT NULL, height INTEGER NOT NULL, started_at TEXT NOT NULL,
    finished_at TEXT, status TEXT NOT NULL DEFAULT 'playing', moves INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL, date TEXT NOT NULL, moves INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL, created_at TEXT NOT NULL DEFAULT '',
    UNIQUE(user_id, date)
);`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return New(store.NewMemoryStore(), db)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doJSONWith is doJSON plus request cookies, for flows spanning requests.
func doJSONWith(t *testing.T, h http.Handler, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
}

func TestPuzzleFlow(t *testing.T) {
	s := newTestServer(t)
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/puzzle/new", map[string]string{"tier": "small"})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/new = %d: %s", rec.Code, rec.Body.String())
	}
	var board stateRes
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if board.Width != 6 || board.Height != 6 {
		t.Fatalf("small tier dims = %dx%d", board.Width, board.Height)
	}
	if len(board.Checkpoints) != 4 {
		t.Fatalf("small tier checkpoints = %d", len(board.Checkpoints))
	}
	if len(board.Path) != 1 {
		t.Fatalf("fresh board path length = %d", len(board.Path))
	}
	if board.Checkpoints[0].Rank != 1 {
		t.Fatalf("checkpoints not rank-sorted: %+v", board.Checkpoints)
	}
	start := board.Path[0]
	if board.Checkpoints[0].X != start.X || board.Checkpoints[0].Y != start.Y {
		t.Fatal("path must start on the rank-1 checkpoint")
	}

	// Moving onto the head is a valid request that changes nothing.
	rec = doJSON(t, r, http.MethodPost, "/puzzle/move", map[string]any{
		"sessionId": board.SessionID, "x": start.X, "y": start.Y,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/move = %d: %s", rec.Code, rec.Body.String())
	}
	var mv moveRes
	if err := json.Unmarshal(rec.Body.Bytes(), &mv); err != nil {
		t.Fatalf("decode move: %v", err)
	}
	if mv.Moved {
		t.Fatal("moving onto the head must report moved=false")
	}
	if mv.Status != "playing" {
		t.Fatalf("status = %s", mv.Status)
	}

	// Snapshot endpoint agrees with the move response.
	rec = doJSON(t, r, http.MethodGet, "/puzzle/"+board.SessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /puzzle/{id} = %d", rec.Code)
	}

	// Undo with no history and clear both succeed.
	rec = doJSON(t, r, http.MethodPost, "/puzzle/undo", map[string]string{"sessionId": board.SessionID})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/undo = %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/puzzle/clear", map[string]string{"sessionId": board.SessionID})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/clear = %d", rec.Code)
	}
}

func TestUnknownTierRejected(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodPost, "/puzzle/new", map[string]string{"tier": "enormous"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown tier = %d, want 400", rec.Code)
	}
}

func TestMoveUnknownSession(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodPost, "/puzzle/move", map[string]any{
		"sessionId": "nope", "x": 0, "y": 0,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session = %d, want 404", rec.Code)
	}
}

func TestMoveMintsNoAnonCookieForUsers(t *testing.T) {
	s := newTestServer(t)
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"Username": "pathdrawer", "Password": "longenough",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup = %d: %s", rec.Code, rec.Body.String())
	}
	token := cookieNamed(rec.Result().Cookies(), "gridtrail_token")
	if token == nil {
		t.Fatal("signup did not set the auth cookie")
	}
	auth := []*http.Cookie{token}

	rec = doJSONWith(t, r, http.MethodPost, "/puzzle/new", map[string]string{"tier": "small"}, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/new = %d: %s", rec.Code, rec.Body.String())
	}
	var board stateRes
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}

	rec = doJSONWith(t, r, http.MethodPost, "/puzzle/move", map[string]any{
		"sessionId": board.SessionID, "x": board.Path[0].X, "y": board.Path[0].Y,
	}, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /puzzle/move = %d: %s", rec.Code, rec.Body.String())
	}
	if c := cookieNamed(rec.Result().Cookies(), "gridtrail_anon"); c != nil {
		t.Fatal("authenticated move must not mint an anonymous cookie")
	}
}

func TestDailyMoveConcurrent(t *testing.T) {
	s := newTestServer(t)
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/daily/new", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /daily/new = %d: %s", rec.Code, rec.Body.String())
	}
	anon := cookieNamed(rec.Result().Cookies(), "gridtrail_anon")
	if anon == nil {
		t.Fatal("daily new did not set the anon cookie")
	}
	var opened struct {
		Played bool      `json:"played"`
		Board  *stateRes `json:"board"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode daily new: %v", err)
	}
	if opened.Played || opened.Board == nil {
		t.Fatalf("expected a fresh board, got %+v", opened)
	}

	// Hammer the same daily session; the handler must serialize access.
	start := opened.Board.Path[0]
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := doJSONWith(t, r, http.MethodPost, "/daily/move", map[string]any{
				"sessionId": opened.Board.SessionID, "x": start.X, "y": start.Y,
			}, []*http.Cookie{anon})
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()
	for i, code := range codes {
		if code != http.StatusOK {
			t.Fatalf("concurrent move %d = %d", i, code)
		}
	}
}

func TestSignupLoginFlow(t *testing.T) {
	s := newTestServer(t)
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"Username": "trailfan", "Password": "longenough",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup = %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, r, http.MethodPost, "/auth/signup", map[string]string{
		"Username": "trailfan", "Password": "longenough",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup = %d, want 409", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"Username": "trailfan", "Password": "wrongpassword",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"Username": "trailfan", "Password": "longenough",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
}
