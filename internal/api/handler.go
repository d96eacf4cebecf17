// Package api provides the HTTP status endpoints served alongside the bot.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anonm/ticketbot/internal/session"
	"github.com/anonm/ticketbot/internal/store"
)

// Handler serves operational status for the running bot.
type Handler struct {
	repo      store.Repository
	sessions  *session.Store
	startTime time.Time
}

// NewHandler creates a status handler.
func NewHandler(repo store.Repository, sessions *session.Store) *Handler {
	return &Handler{
		repo:      repo,
		sessions:  sessions,
		startTime: time.Now(),
	}
}

// RegisterRoutes mounts the status endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.handleStatus)
}

type statusResponse struct {
	Status       string `json:"status"`
	UptimeSecs   int64  `json:"uptime_seconds"`
	LiveSessions int    `json:"live_sessions"`
	History      string `json:"history"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	history := "ok"
	if err := h.repo.Ping(r.Context()); err != nil {
		history = "unavailable"
	}

	JSON(w, http.StatusOK, statusResponse{
		Status:       "ok",
		UptimeSecs:   int64(time.Since(h.startTime).Seconds()),
		LiveSessions: h.sessions.Len(),
		History:      history,
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}
