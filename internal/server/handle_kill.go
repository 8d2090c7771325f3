package server

import (
	"net/http"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// KillRequest is the body of POST /api/killsession.
type KillRequest struct {
	SessionID int64 `json:"sessionid"`
}

func handleKillSession(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req KillRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Idempotent: killing an unknown session is fine, the client calls
		// this on teardown when the session may already be gone.
		if err := engine.KillSession(r.Context(), req.SessionID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
