package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/huseyinozgul/docvault/internal/logging"
)

// NewRouter mounts the API:
//
//	GET    /health
//	POST   /auth/register, /auth/login
//	POST   /folders            GET /folders/root
//	GET    /folders/{id}       PATCH, DELETE /folders/{id}
//	POST   /files              GET /files/{id}, /files/{id}/download
//	PATCH  /files/{id}         DELETE /files/{id}
//
// Everything under /folders and /files needs a bearer token.
func NewRouter(h *Handler, corsOrigins []string, l logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(l))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(corsOrigins)))

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/folders", func(r chi.Router) {
			r.Post("/", h.createFolder)
			r.Get("/root", h.rootContents)
			r.Get("/{folderID}", h.folderContents)
			r.Patch("/{folderID}", h.renameFolder)
			r.Delete("/{folderID}", h.deleteFolder)
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/", h.createFile)
			r.Get("/{fileID}", h.getFile)
			r.Get("/{fileID}/download", h.downloadFile)
			r.Patch("/{fileID}", h.updateFile)
			r.Delete("/{fileID}", h.deleteFile)
		})
	})

	return r
}

// corsOptions allows credentialed requests. Browsers reject a literal "*"
// next to Allow-Credentials, so a wildcard list echoes the request origin.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 1 && origins[0] == "*" {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return opts
}
