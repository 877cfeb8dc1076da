package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

// wsTurnTimeout bounds one prompt round-trip, model call included.
const wsTurnTimeout = 90 * time.Second

type wsMessage struct {
	UserID   string `json:"user_id"`
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

type wsError struct {
	Error string `json:"error"`
}

// websocket runs a prompt/response loop over one connection. The user id
// and language come from query parameters or from the first message;
// whichever arrives first sticks for the connection.
func (h *Handler) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "server closing")

	log := observability.LoggerFromContext(r.Context())
	userID := domain.UserID(strings.TrimSpace(r.URL.Query().Get("user_id")))
	language := r.URL.Query().Get("language")

	for {
		var msg wsMessage
		if err := wsjson.Read(r.Context(), conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			log.Warn("websocket read failed", "error", err)
			return
		}

		if msg.UserID != "" {
			userID = domain.UserID(strings.TrimSpace(msg.UserID))
		}
		if msg.Language != "" {
			language = msg.Language
		}
		if userID == "" {
			_ = wsjson.Write(r.Context(), conn, wsError{Error: "user_id is required"})
			continue
		}
		if strings.TrimSpace(msg.Prompt) == "" {
			_ = wsjson.Write(r.Context(), conn, wsError{Error: "prompt is required"})
			continue
		}

		turnCtx, cancel := context.WithTimeout(r.Context(), wsTurnTimeout)
		resp := h.engine.ProcessRequest(turnCtx, userID, msg.Prompt, language)
		cancel()

		if err := wsjson.Write(r.Context(), conn, resp); err != nil {
			log.Warn("websocket write failed", "error", err)
			return
		}
	}
}
