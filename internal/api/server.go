// Package api provides the HTTP surface of the Vita tracker. The core makes
// no UI decisions — the API returns unlock lists and lets the client render
// them.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalog/vita/internal/app/tracker"
	"github.com/vitalog/vita/internal/domain"
)

// Server is the Vita HTTP API server.
type Server struct {
	tracker        *tracker.Service
	metricsEnabled bool
}

// NewServer creates a new API server around the tracker service.
func NewServer(svc *tracker.Service) *Server {
	return &Server{tracker: svc}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/activity", s.handleLogActivity)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/stats", s.handleStats)
		r.Post("/reset", s.handleReset)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// logActivityRequest is the wire form of one activity log call. Events
// arrive fully resolved — any camera/barcode/network lookup happened on the
// client before this request.
type logActivityRequest struct {
	Domain     domain.ActivityDomain `json:"domain"`
	Value      float64               `json:"value"`
	Category   string                `json:"category,omitempty"`
	OccurredAt time.Time             `json:"occurred_at"`
}

type logActivityResponse struct {
	Unlocked []tracker.Achievement `json:"unlocked"`
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}

	unlocked, err := s.tracker.LogActivity(r.Context(), domain.ActivityEvent{
		Domain:     req.Domain,
		Value:      req.Value,
		Category:   req.Category,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) ||
			errors.Is(err, domain.ErrFutureEvent) ||
			errors.Is(err, domain.ErrUnknownDomain) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Join the unlock list with the stamped state for accurate timestamps.
	newIDs := make(map[string]bool, len(unlocked))
	for _, def := range unlocked {
		newIDs[def.ID] = true
	}
	resp := logActivityResponse{Unlocked: []tracker.Achievement{}}
	for _, a := range s.tracker.List() {
		if newIDs[a.ID] {
			resp.Unlocked = append(resp.Unlocked, a)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, total := s.tracker.Progress()
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": s.tracker.List(),
		"unlocked":     unlocked,
		"total":        total,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
