// Package api exposes the optimizer's diagnostics over HTTP for operational
// dashboards. The surface is read-only and has no core-logic dependency.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/genetic"
	"github.com/Ayush1298567/central-computer-sar-drone-swarm-sub002/internal/pattern"
)

// Source is the diagnostics view the server reads. *genetic.Optimizer
// satisfies it.
type Source interface {
	Diagnostics() genetic.Diagnostics
	History() []float64
	Best() (pattern.SearchPattern, bool)
}

// Server serves the diagnostics API.
type Server struct {
	source Source
	router *mux.Router
}

// NewServer wires the routes around a diagnostics source.
func NewServer(source Source) *Server {
	s := &Server{
		source: source,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/v1/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/api/v1/history", s.handleHistory).Methods("GET")
	s.router.HandleFunc("/api/v1/best", s.handleBest).Methods("GET")

	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router.
func (s *Server) Router() *mux.Router {
	return s.router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.source.Diagnostics())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"best_fitness_per_generation": s.source.History(),
	})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	best, ok := s.source.Best()
	if !ok {
		respondError(w, http.StatusNotFound, "no generation scored yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    best.Kind,
		"params":  best.Params(),
		"fitness": best.Fitness,
		"scores":  best.Scores,
	})
}
