package server

import (
	"errors"
	"net/http"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// GuessRequest is the body of POST /api/submitguess. Coordinates are on the
// internal grid; the server does not bounds-check them, so a forced guess at
// the origin scores like any other.
type GuessRequest struct {
	SessionID int64 `json:"sessionid"`
	X         int64 `json:"xpos"`
	Y         int64 `json:"ypos"`
}

// GuessResponse reveals the true location (null at impossible difficulty),
// the distance in whole kilometers rounded up, and the updated score and
// round. In endless mode score is the remaining health.
type GuessResponse struct {
	X         *int64 `json:"xpos"`
	Y         *int64 `json:"ypos"`
	Distance  int64  `json:"distance"`
	Score     int64  `json:"score"`
	CurrRound int64  `json:"curr_round"`
}

func handleSubmitGuess(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := engine.SubmitGuess(r.Context(), req.SessionID, req.X, req.Y)
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid session id")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			X:         res.X,
			Y:         res.Y,
			Distance:  res.DistanceKM,
			Score:     res.Score,
			CurrRound: res.Round,
		})
	}
}
