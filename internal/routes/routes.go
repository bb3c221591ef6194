package routes

import (
	"net/http"

	"github.com/skyboxlabs/skybox/internal/app"
	"github.com/skyboxlabs/skybox/internal/handler"
	"github.com/skyboxlabs/skybox/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	file := handler.NewFileHandler(app.FileService, app.Cfg.MaxFileSize)

	mux := http.NewServeMux()

	// Reads are unauthenticated by design.
	mux.HandleFunc("GET /{$}", home.Ping)
	mux.HandleFunc("GET /info/{file_id}", file.Info)
	mux.HandleFunc("GET /get/{file_id}", file.Get)

	// Uploads require the shared secret and are rate limited per IP.
	rateLimiter := middleware.RateLimitUpload()
	mux.HandleFunc("POST /save", rateLimiter(middleware.RequireToken(app.Cfg.PrivateToken)(file.Save)))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
	)
}
