package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// PictureRequest is the body of POST /api/getpicture.
type PictureRequest struct {
	SessionID int64 `json:"sessionid"`
}

// handleGetPicture streams the photo for the session's current location.
// A catalog entry whose image file went missing gets the ERROR placeholder
// rather than a broken round.
func handleGetPicture(engine *game.Engine, imageDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PictureRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		locID, err := engine.PictureLocation(r.Context(), req.SessionID)
		if errors.Is(err, game.ErrSessionNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid session id")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		path := filepath.Join(imageDir, fmt.Sprintf("%d.jpg", locID))
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(imageDir, "ERROR.jpg")
		}
		http.ServeFile(w, r, path)
	}
}
