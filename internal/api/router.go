package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/noteservice"
)

// NewRouter creates a chi router with all API routes. Share reads are public;
// everything else requires a credential accepted by resolver. CORS is left to
// the router this one is mounted on.
func NewRouter(svc *noteservice.Service, resolver *auth.Resolver) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	r.Get("/share/{publicID}", h.ReadShare)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(resolver))
		r.Post("/save", h.Save)
		r.Get("/list", h.List)
		r.Post("/delete", h.Delete)
		r.Post("/ai-sum", h.Summarize)
	})

	return r
}
