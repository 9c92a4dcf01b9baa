// Package profiles implements the /api/profile surface: the caller's own
// profile, the public directory, experience/education sub-collections, the
// GitHub repo proxy, and account deletion.
package profiles

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	poststore "github.com/web-rebel/devlink/internal/app/store/posts"
	profilestore "github.com/web-rebel/devlink/internal/app/store/profiles"
	userstore "github.com/web-rebel/devlink/internal/app/store/users"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/htmlsanitize"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/inputval"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
	"github.com/web-rebel/devlink/internal/domain/models"
)

// Handler owns the profile endpoints.
type Handler struct {
	DB     *mongo.Database
	Github GithubClient
	Log    *zap.Logger
}

// NewHandler constructs a profiles Handler. github may be nil in tests that
// never hit the GitHub route.
func NewHandler(db *mongo.Database, github GithubClient, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Github: github, Log: logger}
}

const msgNoProfile = "There is no profile for this user"

// HandleMe handles GET /api/profile/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profile, err := profilestore.New(h.DB).GetByUserID(ctx, caller.ID)
	if err != nil {
		if err == profilestore.ErrNotFound {
			httpjson.Msg(w, http.StatusBadRequest, msgNoProfile)
			return
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, profile)
}

type upsertInput struct {
	Company        string      `json:"company"`
	Website        string      `json:"website"`
	Location       string      `json:"location"`
	Status         string      `json:"status" validate:"required" label:"Status"`
	Skills         skillsField `json:"skills" validate:"required" label:"Skills"`
	Bio            string      `json:"bio"`
	GithubUsername string      `json:"githubusername"`
	Youtube        string      `json:"youtube"`
	Twitter        string      `json:"twitter"`
	Facebook       string      `json:"facebook"`
	Linkedin       string      `json:"linkedin"`
	Instagram      string      `json:"instagram"`
}

// HandleUpsert handles POST /api/profile: create the caller's profile or
// overwrite its scalar fields. Sub-collections are preserved across updates.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	var in upsertInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
		return
	}

	if result := inputval.Validate(in); result.HasErrors() {
		httpjson.ValidationErrors(w, toFieldErrors(result)...)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stored, err := profilestore.New(h.DB).Upsert(ctx, models.Profile{
		UserID:         caller.ID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         []string(in.Skills),
		Bio:            htmlsanitize.Sanitize(in.Bio),
		GithubUsername: in.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			Linkedin:  in.Linkedin,
			Instagram: in.Instagram,
		},
	})
	if err != nil {
		h.Log.Error("profile upsert failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, stored)
}

// HandleList handles GET /api/profile.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profiles, err := profilestore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("profile list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	httpjson.Write(w, http.StatusOK, profiles)
}

// HandleByUser handles GET /api/profile/user/{user_id}. A malformed id gets
// the same 400 as a missing profile so the route does not leak id shape.
func (h *Handler) HandleByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "user_id"))
	if err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Profile not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profile, err := profilestore.New(h.DB).GetByUserID(ctx, userID)
	if err != nil {
		if err == profilestore.ErrNotFound {
			httpjson.Msg(w, http.StatusBadRequest, "Profile not found")
			return
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, profile)
}

// HandleDeleteAccount handles DELETE /api/profile: removes the caller's
// posts, profile, and user record, in that order.
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	removed, err := poststore.New(h.DB).DeleteByUserID(ctx, caller.ID)
	if err != nil {
		h.Log.Error("post cascade failed", zap.Error(err), zap.String("user_id", caller.ID.Hex()))
		httpjson.ServerError(w)
		return
	}
	if err := profilestore.New(h.DB).DeleteByUserID(ctx, caller.ID); err != nil {
		h.Log.Error("profile delete failed", zap.Error(err), zap.String("user_id", caller.ID.Hex()))
		httpjson.ServerError(w)
		return
	}
	if err := userstore.New(h.DB).Delete(ctx, caller.ID); err != nil && err != userstore.ErrNotFound {
		h.Log.Error("user delete failed", zap.Error(err), zap.String("user_id", caller.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("account deleted",
		zap.String("user_id", caller.ID.Hex()),
		zap.Int64("posts_removed", removed))
	httpjson.Msg(w, http.StatusOK, "User deleted")
}

// loadOwnProfile fetches the caller's profile for a sub-collection mutation,
// writing the 400 response itself when the profile is missing.
func (h *Handler) loadOwnProfile(ctx context.Context, w http.ResponseWriter, caller *auth.TokenUser) (*models.Profile, bool) {
	profile, err := profilestore.New(h.DB).GetByUserID(ctx, caller.ID)
	if err != nil {
		if err == profilestore.ErrNotFound {
			httpjson.Msg(w, http.StatusBadRequest, msgNoProfile)
			return nil, false
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return nil, false
	}
	return profile, true
}

func toFieldErrors(result inputval.Result) []httpjson.FieldError {
	out := make([]httpjson.FieldError, 0, len(result.Errors))
	for _, e := range result.Errors {
		out = append(out, httpjson.FieldError{Msg: e.Msg, Param: e.Param})
	}
	return out
}

// skillsField accepts either a JSON array of strings or a single
// comma-separated string, normalizing to a trimmed slice.
type skillsField []string

func (s *skillsField) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = cleanSkills(list)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = cleanSkills(strings.Split(raw, ","))
	return nil
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
