package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "MonGuessr API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Backend API for the MonGuessr campus location-guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/getsession
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/getsession")
	postSession.SetSummary("Create session")
	postSession.SetDescription("Start a new game session. Standard requests carry gamemode and difficulty; " +
		"custom requests carry gamemode, gamemodeParam, timerSeconds, difficulties, and tags.")
	postSession.AddReqStructure(game.Params{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSession)

	// POST /api/submitguess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/submitguess")
	postGuess.SetSummary("Submit guess")
	postGuess.SetDescription("Score a guess against the current location and advance or end the session. " +
		"The true location is null at impossible difficulty.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postGuess)

	// POST /api/killsession
	postKill, _ := r.NewOperationContext(http.MethodPost, "/api/killsession")
	postKill.SetSummary("Kill session")
	postKill.SetDescription("Delete a session. Idempotent: unknown ids succeed.")
	postKill.AddReqStructure(KillRequest{})
	postKill.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postKill)

	// POST /api/getpicture
	postPicture, _ := r.NewOperationContext(http.MethodPost, "/api/getpicture")
	postPicture.SetSummary("Get picture")
	postPicture.SetDescription("Returns the photo for the session's current location.")
	postPicture.AddReqStructure(PictureRequest{})
	postPicture.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/jpeg"))
	postPicture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postPicture)

	// POST /api/admin/uploadpicture
	postUpload, _ := r.NewOperationContext(http.MethodPost, "/api/admin/uploadpicture")
	postUpload.SetSummary("Upload picture")
	postUpload.SetDescription("Add a location with its photo to the catalog. Multipart form with a " +
		"settings JSON part and an image part. Requires the X-Admin-Password header.")
	postUpload.AddRespStructure(UploadResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postUpload.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postUpload.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postUpload)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
