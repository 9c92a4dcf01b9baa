package profiles

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	profilestore "github.com/web-rebel/devlink/internal/app/store/profiles"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/htmlsanitize"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
	"github.com/web-rebel/devlink/internal/domain/models"
	"github.com/web-rebel/devlink/internal/domain/mutate"
)

type experienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (in experienceInput) toModel(w http.ResponseWriter) (models.Experience, bool) {
	from, to, ok := parseDateRange(w, in.From, in.To)
	if !ok {
		return models.Experience{}, false
	}
	return models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: htmlsanitize.Sanitize(in.Description),
	}, true
}

// HandleAddExperience handles PUT /api/profile/experience.
func (h *Handler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		var in experienceInput
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
			return false
		}
		entry, ok := in.toModel(w)
		if !ok {
			return false
		}
		return h.writeMutationError(w, mutate.AddExperience(p, entry))
	})
}

// HandleUpdateExperience handles PUT /api/profile/experience/{exp_id}.
func (h *Handler) HandleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		var in experienceInput
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
			return false
		}
		entry, ok := in.toModel(w)
		if !ok {
			return false
		}
		return h.writeMutationError(w, mutate.UpdateExperience(p, chi.URLParam(r, "exp_id"), entry))
	})
}

// HandleRemoveExperience handles DELETE /api/profile/experience/{exp_id}.
func (h *Handler) HandleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	h.mutateOwnProfile(w, r, func(w http.ResponseWriter, r *http.Request, p *models.Profile) bool {
		return h.writeMutationError(w, mutate.RemoveExperience(p, chi.URLParam(r, "exp_id")))
	})
}

// mutateOwnProfile loads the caller's profile, applies fn to the in-memory
// aggregate, and persists it wholesale when fn reports success. fn writes its
// own error response when it returns false.
func (h *Handler) mutateOwnProfile(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request, *models.Profile) bool) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profile, ok := h.loadOwnProfile(ctx, w, caller)
	if !ok {
		return
	}
	if !fn(w, r, profile) {
		return
	}

	if err := profilestore.New(h.DB).Replace(ctx, profile); err != nil {
		h.Log.Error("profile replace failed", zap.Error(err), zap.String("user_id", caller.ID.Hex()))
		httpjson.ServerError(w)
		return
	}
	httpjson.Write(w, http.StatusOK, profile)
}

// writeMutationError maps a mutation engine error onto the wire and reports
// whether the mutation succeeded.
func (h *Handler) writeMutationError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return true
	}
	if ve, ok := mutate.AsValidation(err); ok {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: ve.Msg, Param: ve.Param})
		return false
	}
	if mutate.IsNotFound(err) {
		httpjson.Msg(w, http.StatusNotFound, "Entry not found")
		return false
	}
	h.Log.Error("profile mutation failed", zap.Error(err))
	httpjson.ServerError(w)
	return false
}

// parseDateRange parses from/to strings, accepting RFC 3339 or bare
// YYYY-MM-DD. An unparseable value writes a 400 and returns ok=false; an
// empty "to" is an open-ended range.
func parseDateRange(w http.ResponseWriter, fromStr, toStr string) (time.Time, *time.Time, bool) {
	var from time.Time
	if fromStr != "" {
		parsed, err := parseDate(fromStr)
		if err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid from date", Param: "from"})
			return time.Time{}, nil, false
		}
		from = parsed
	}

	var to *time.Time
	if toStr != "" {
		parsed, err := parseDate(toStr)
		if err != nil {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid to date", Param: "to"})
			return time.Time{}, nil, false
		}
		to = &parsed
	}
	return from, to, true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
