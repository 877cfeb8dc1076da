// Package http exposes the conversation engine over REST and websocket.
package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fielddesk/fielddesk-agent/internal/app/agent"
	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

// Handler serves the agent API.
type Handler struct {
	engine *agent.Engine
}

func NewHandler(engine *agent.Engine) *Handler {
	return &Handler{engine: engine}
}

// Router assembles the full route tree, middleware included.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestContext)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/agent", func(r chi.Router) {
		r.Post("/process", h.process)
		r.Get("/status/{userID}", h.status)
		r.Post("/reset", h.reset)
		r.Get("/ws", h.websocket)
	})
	return r
}

type processRequest struct {
	UserID   string `json:"user_id"`
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp := h.engine.ProcessRequest(r.Context(), domain.UserID(req.UserID), req.Prompt, req.Language)
	status := http.StatusOK
	if resp.Type == agent.ResponseError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userID is required")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.GetStatus(domain.UserID(userID)))
}

type resetRequest struct {
	UserID   string `json:"user_id"`
	Language string `json:"language"`
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := h.engine.Reset(domain.UserID(req.UserID), req.Language)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("reset failed",
			"user_id", req.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
