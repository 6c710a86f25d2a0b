// Package remotetest provides an in-process fake of the remote record store.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mcoot/cornhole/internal/model"
)

// Server is a fake record store. Fields may be changed between requests
// through the setter methods; recorded requests are read with the getters.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	roster       []model.RosterEntry
	passcodes    map[string]string
	tokens       map[string]string
	uploadStatus int
	rosterStatus int
	uploads      [][]model.GameRecord
	uploadKeys   []string
	boards       map[model.PlayerID]string
	block        chan struct{}
	arrived      chan struct{}
}

// New starts a fake record store that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		passcodes: make(map[string]string),
		tokens:    make(map[string]string),
		boards:    make(map[model.PlayerID]string),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/api/users", s.users).Methods(http.MethodGet)
	r.HandleFunc("/api/users/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{id}/board", s.board).Methods(http.MethodPut)
	r.HandleFunc("/api/Update/DB", s.upload).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddUser registers a player who can log in with passcode and receives token
func (s *Server) AddUser(entry model.RosterEntry, passcode, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = append(s.roster, entry)
	s.passcodes[entry.Name] = passcode
	s.tokens[entry.Name] = token
}

// FailUploads makes upload requests answer with status; 0 restores success
func (s *Server) FailUploads(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadStatus = status
}

// FailRoster makes roster requests answer with status; 0 restores success
func (s *Server) FailRoster(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosterStatus = status
}

// Block holds every login and upload request until the returned function is
// called
func (s *Server) Block() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.block = ch
	s.arrived = make(chan struct{}, 16)
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Uploads returns every game list received so far
func (s *Server) Uploads() [][]model.GameRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]model.GameRecord(nil), s.uploads...)
}

// UploadKeys returns the idempotency keys of received uploads
func (s *Server) UploadKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploadKeys...)
}

// Board returns the last board stored for a player
func (s *Server) Board(id model.PlayerID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards[id]
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) users(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rosterStatus != 0 {
		http.Error(w, "roster unavailable", s.rosterStatus)
		return
	}
	roster := s.roster
	if roster == nil {
		roster = []model.RosterEntry{}
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.wait()

	var req struct {
		Name     string `json:"name"`
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.passcodes[req.Name]
	if !ok || want != req.Passcode {
		http.Error(w, "invalid passcode", http.StatusUnauthorized)
		return
	}

	for _, u := range s.roster {
		if u.Name == req.Name {
			board := u.Board
			if b, ok := s.boards[u.ID]; ok {
				board = b
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"id":    string(u.ID),
				"name":  u.Name,
				"board": board,
				"token": s.tokens[u.Name],
			})
			return
		}
	}
	http.Error(w, "player not found", http.StatusNotFound)
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req struct {
		Board string `json:"board"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.roster {
		if u.ID == id {
			s.boards[id] = req.Board
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "player not found", http.StatusNotFound)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	s.wait()

	var req struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var games []model.GameRecord
	if err := json.Unmarshal([]byte(req.Data), &games); err != nil {
		http.Error(w, "invalid game data", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadStatus != 0 {
		http.Error(w, "upload rejected", s.uploadStatus)
		return
	}
	s.uploads = append(s.uploads, games)
	s.uploadKeys = append(s.uploadKeys, r.Header.Get("Idempotency-Key"))
	writeJSON(w, http.StatusOK, games)
}

// Arrived receives once for each request held by Block
func (s *Server) Arrived() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arrived
}

func (s *Server) wait() {
	s.mu.Lock()
	block, arrived := s.block, s.arrived
	s.mu.Unlock()
	if block == nil {
		return
	}
	select {
	case arrived <- struct{}{}:
	default:
	}
	<-block
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
