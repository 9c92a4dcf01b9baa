package profiles

import (
	"github.com/go-chi/chi/v5"

	"github.com/web-rebel/devlink/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public.
	r.Get("/", h.HandleList)
	r.Get("/user/{user_id}", h.HandleByUser)
	r.Get("/github/{username}", h.HandleGithubRepos)

	// Private.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/me", h.HandleMe)
		r.Post("/", h.HandleUpsert)
		r.Delete("/", h.HandleDeleteAccount)

		r.Put("/experience", h.HandleAddExperience)
		r.Put("/experience/{exp_id}", h.HandleUpdateExperience)
		r.Delete("/experience/{exp_id}", h.HandleRemoveExperience)

		r.Put("/education", h.HandleAddEducation)
		r.Put("/education/{edu_id}", h.HandleUpdateEducation)
		r.Delete("/education/{edu_id}", h.HandleRemoveEducation)
	})

	return r
}
