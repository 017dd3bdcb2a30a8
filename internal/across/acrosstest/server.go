// Package acrosstest runs a fake ACROSS API for tests.
package acrosstest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Request is a request the server received.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is an httptest server with a chi router. Routes without a handler
// answer 404 with a FastAPI style detail.
type Server struct {
	*httptest.Server

	router chi.Router
	mu     sync.Mutex
	reqs   []Request
}

// New starts a server. It is closed when the test ends.
func New(t interface{ Cleanup(func()) }) *Server {
	s := &Server{router: chi.NewRouter()}
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Handle answers method on path with a fixed status and JSON body.
func (s *Server) Handle(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		JSON(w, status, body)
	})
}

// HandleFunc routes method on path to h. Paths use chi patterns.
func (s *Server) HandleFunc(method, path string, h http.HandlerFunc) {
	s.router.MethodFunc(method, path, h)
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.reqs...)
}

// Hits returns the number of requests received.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

// Last returns the most recent request, or false if there was none.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reqs) == 0 {
		return Request{}, false
	}
	return s.reqs[len(s.reqs)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.reqs = append(s.reqs, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
