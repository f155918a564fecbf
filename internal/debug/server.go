// Package debug serves a read-only JSON view of the editor state over HTTP.
package debug

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

// Snapshot is the editor state as published after an update.
type Snapshot struct {
	Filename string   `json:"filename"`
	Mode     string   `json:"mode"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Data     []string `json:"data"`
}

// Server answers GET requests with the latest published Snapshot.
type Server struct {
	mu   sync.RWMutex
	snap Snapshot

	srv *http.Server
}

// New returns a Server with an empty snapshot.
func New() *Server {
	s := &Server{snap: Snapshot{Data: []string{}}}
	mux := http.NewServeMux()
	mux.Handle("/", s)
	mux.Handle("/buffer", s)
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Publish replaces the served snapshot. The caller must not modify
// snap.Data afterwards.
func (s *Server) Publish(snap Snapshot) {
	if snap.Data == nil {
		snap.Data = []string{}
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Current returns the served snapshot.
func (s *Server) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/buffer" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Current()); err != nil {
		log.Printf("[debug] encode snapshot: %v", err)
	}
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr has port 0.
func (s *Server) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[debug] serve: %v", err)
		}
	}()
	log.Printf("[debug] listening on %s", ln.Addr())
	return ln.Addr(), nil
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
