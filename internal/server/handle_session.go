package server

import (
	"errors"
	"net/http"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// SessionResponse is the body of a successful POST /api/getsession.
type SessionResponse struct {
	SessionID int64 `json:"sessionid"`
}

func handleGetSession(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params game.Params
		if err := readJSON(r, &params); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id, err := engine.NewSession(r.Context(), params)
		switch {
		case errors.Is(err, game.ErrBadParams):
			writeError(w, http.StatusBadRequest, "malformed session parameters")
			return
		case errors.Is(err, game.ErrNoLocation):
			writeError(w, http.StatusConflict, "no location matches the requested filters")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{SessionID: id})
	}
}
