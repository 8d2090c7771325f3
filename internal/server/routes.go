package server

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

// LocationAdder is the write half of the catalog, used by the admin upload
// endpoint.
type LocationAdder interface {
	AddLocation(ctx context.Context, loc game.Location) (int64, error)
}

// Deps carries everything the routes need.
type Deps struct {
	Engine  *game.Engine
	Catalog LocationAdder
	DB      *sql.DB

	// ImageDir holds one <locationid>.jpg per catalog entry plus ERROR.jpg
	// as the placeholder for missing files.
	ImageDir string

	// AdminPassHash gates the admin routes; empty disables them.
	AdminPassHash string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("MonGuessr API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	r.Route("/api", func(r chi.Router) {
		r.Post("/getsession", handleGetSession(deps.Engine))
		r.Post("/submitguess", handleSubmitGuess(deps.Engine))
		r.Post("/killsession", handleKillSession(deps.Engine))
		r.Post("/getpicture", handleGetPicture(deps.Engine, deps.ImageDir))
	})

	if deps.AdminPassHash != "" {
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(adminAuthMiddleware(deps.AdminPassHash))
			r.Post("/uploadpicture", handleUploadPicture(logger, deps.Catalog, deps.ImageDir))
		})
	} else {
		logger.Warn("no admin credential configured, admin routes disabled")
	}
}
