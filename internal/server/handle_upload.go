package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/YaBoiMega0/monguessr/internal/game"
	"github.com/YaBoiMega0/monguessr/internal/geo"
)

// maxUploadBytes caps a picture upload; photos are preprocessed client-side
// to 1920x1080 JPEG and never come close to this.
const maxUploadBytes = 20 << 20

// UploadSettings is the JSON "settings" part of the multipart upload.
type UploadSettings struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Tags       []game.Tag      `json:"tags"`
	X          int64           `json:"xpos"`
	Y          int64           `json:"ypos"`
}

// UploadResponse returns the id of the newly created location.
type UploadResponse struct {
	ID int64 `json:"id"`
}

func handleUploadPicture(logger *slog.Logger, catalog LocationAdder, imageDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		var settings UploadSettings
		if err := json.Unmarshal([]byte(r.FormValue("settings")), &settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings")
			return
		}
		if !game.ValidDifficulty(settings.Difficulty) {
			writeError(w, http.StatusBadRequest, "unknown difficulty")
			return
		}
		if settings.X < 0 || settings.X > geo.GridMax || settings.Y < 0 || settings.Y > geo.GridMax {
			writeError(w, http.StatusBadRequest, "coordinates outside the campus boundary")
			return
		}

		loc := game.Location{
			Difficulty: settings.Difficulty,
			Tags:       settings.Tags,
			X:          settings.X,
			Y:          settings.Y,
		}

		img, _, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "image is required")
			return
		}
		defer img.Close()

		id, err := catalog.AddLocation(r.Context(), loc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		path := filepath.Join(imageDir, fmt.Sprintf("%d.jpg", id))
		out, err := os.Create(path)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		defer out.Close()
		if _, err := io.Copy(out, img); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("picture uploaded",
			"locationid", id,
			"difficulty", settings.Difficulty,
		)
		writeJSON(w, http.StatusOK, UploadResponse{ID: id})
	}
}
