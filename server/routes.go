package server

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

func SetupRoutes(a *API) *chi.Mux {
	r := chi.NewRouter()

	// standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", a.handleIndex)
	r.Get("/ui/styles.css", a.handleStyles)
	r.Get("/ui/app.js", a.handleScript)

	r.Route("/api", func(r chi.Router) {
		r.Get("/endpoints", a.handleListEndpoints)
		r.Get("/endpoints/{id}", a.handleGetEndpoint)
		r.Post("/call/{id}", a.handleCall)
	})

	r.Route("/blobs", func(r chi.Router) {
		r.Get("/{id}", a.handleGetBlob)
		r.Delete("/{id}", a.handleDeleteBlob)
	})

	return r
}
