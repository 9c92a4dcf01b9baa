package authfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/web-rebel/devlink/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogin)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/", h.HandleCurrentUser)
	})
	return r
}
