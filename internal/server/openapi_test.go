package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAPISpecIsServed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	handleOpenAPI()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decoding spec: %v", err)
	}
	if spec.OpenAPI == "" {
		t.Error("missing openapi version")
	}

	for _, path := range []string{
		"/healthz",
		"/api/getsession",
		"/api/submitguess",
		"/api/killsession",
		"/api/getpicture",
		"/api/admin/uploadpicture",
	} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("path %q missing from spec", path)
		}
	}
}
