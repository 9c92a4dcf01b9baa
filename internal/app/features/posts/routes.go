package posts

import (
	"github.com/go-chi/chi/v5"

	"github.com/web-rebel/devlink/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Delete("/{id}", h.HandleDelete)

	r.Put("/like/{id}", h.HandleToggleLike)

	r.Post("/comment/{id}", h.HandleAddComment)
	r.Delete("/comment/{id}/{comment_id}", h.HandleRemoveComment)

	return r
}
