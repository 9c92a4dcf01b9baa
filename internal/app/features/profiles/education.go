package profiles

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/web-rebel/devlink/internal/app/system/htmlsanitize"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/domain/models"
	"github.com/web-rebel/devlink/internal/domain/mutate"
)

type educationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (in educationInput) toModel(w http.ResponseWriter) (models.Education, bool) {
	from, to, ok := parseDateRange(w, in.From, in.To)
	if !ok {
		return models.Education{}, false
	}
	return models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  htmlsanitize.Sanitize(in.Description),
	}, true
}

// HandleAddEducation handles PUT /api/profile/education.
func (h *Handler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		var in educationInput
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
			return false
		}
		entry, ok := in.toModel(w)
		if !ok {
			return false
		}
		return h.writeMutationError(w, mutate.AddEducation(p, entry))
	})
}

// HandleUpdateEducation handles PUT /api/profile/education/{edu_id}.
func (h *Handler) HandleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		var in educationInput
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
			return false
		}
		entry, ok := in.toModel(w)
		if !ok {
			return false
		}
		return h.writeMutationError(w, mutate.UpdateEducation(p, chi.URLParam(r, "edu_id"), entry))
	})
}

// HandleRemoveEducation handles DELETE /api/profile/education/{edu_id}.
func (h *Handler) HandleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		return h.writeMutationError(w, mutate.RemoveEducation(p, chi.URLParam(r, "edu_id")))
	})
}
