package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

func uploadRequest(t *testing.T, settings UploadSettings, image []byte, pass string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	enc, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("encoding settings: %v", err)
	}
	if err := mw.WriteField("settings", string(enc)); err != nil {
		t.Fatalf("writing settings field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	if err != nil {
		t.Fatalf("creating image part: %v", err)
	}
	fw.Write(image)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploadpicture", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if pass != "" {
		req.Header.Set(adminPassHeader, pass)
	}
	return req
}

func TestUploadPicture(t *testing.T) {
	app := setupApp(t)

	settings := UploadSettings{
		Difficulty: game.DifficultyMedium,
		Tags:       []game.Tag{game.TagOutdoor},
		X:          150000,
		Y:          950000,
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, uploadRequest(t, settings, []byte("jpegdata"), testAdminPass))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp UploadResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.ID <= 0 {
		t.Fatalf("bad location id %d", resp.ID)
	}

	// The image landed on disk under the new id.
	data, err := os.ReadFile(filepath.Join(app.dir, fmt.Sprintf("%d.jpg", resp.ID)))
	if err != nil {
		t.Fatalf("reading stored image: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("stored image = %q, want original bytes", data)
	}

	// And the location is playable.
	app.newSession(t, game.Params{Mode: game.ModeStandard, Difficulty: game.DifficultyMedium})
}

func TestUploadPictureRequiresCredential(t *testing.T) {
	app := setupApp(t)
	settings := UploadSettings{Difficulty: game.DifficultyEasy, X: 1, Y: 1}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, uploadRequest(t, settings, []byte("x"), ""))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no credential: expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, uploadRequest(t, settings, []byte("x"), "wrong"))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong credential: expected 401, got %d", w.Code)
	}
}

func TestUploadPictureRejectsOffGridCoordinates(t *testing.T) {
	app := setupApp(t)

	for _, settings := range []UploadSettings{
		{Difficulty: game.DifficultyEasy, X: -1, Y: 0},
		{Difficulty: game.DifficultyEasy, X: 0, Y: 2_000_001},
	} {
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, uploadRequest(t, settings, []byte("x"), testAdminPass))
		if w.Code != http.StatusBadRequest {
			t.Errorf("coords (%d, %d): expected 400, got %d", settings.X, settings.Y, w.Code)
		}
	}
}

func TestUploadPictureRejectsUnknownDifficulty(t *testing.T) {
	app := setupApp(t)

	settings := UploadSettings{Difficulty: "nightmare", X: 1, Y: 1}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, uploadRequest(t, settings, []byte("x"), testAdminPass))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
