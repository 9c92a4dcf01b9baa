// Package users implements registration: POST /api/users creates an account
// and returns a signed token.
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/web-rebel/devlink/internal/app/store/users"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/avatar"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/inputval"
	"github.com/web-rebel/devlink/internal/app/system/ratelimit"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
	"github.com/web-rebel/devlink/internal/domain/models"
)

// Handler owns the registration endpoint.
type Handler struct {
	DB         *mongo.Database
	Tokens     *auth.Tokens
	Limiter    *ratelimit.CredentialLimiter
	BcryptCost int
	AvatarBase string
	Log        *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(db *mongo.Database, tokens *auth.Tokens, limiter *ratelimit.CredentialLimiter, bcryptCost int, avatarBase string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Tokens:     tokens,
		Limiter:    limiter,
		BcryptCost: bcryptCost,
		AvatarBase: avatarBase,
		Log:        logger,
	}
}

type registerInput struct {
	Name     string `json:"name" validate:"required" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
}

// HandleRegister handles POST /api/users.
//
// On success: 200 and {"token": …}. Validation failures and duplicate emails
// return 400 with field-level messages.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
		return
	}

	if result := inputval.Validate(in); result.HasErrors() {
		httpjson.ValidationErrors(w, toFieldErrors(result)...)
		return
	}

	// Registration is rate limited by IP only; the email window is reserved
	// for login attempts.
	if allowed, reason := h.Limiter.Check(r, ""); !allowed {
		httpjson.Msg(w, http.StatusTooManyRequests, reason)
		return
	}

	hash, err := auth.HashPassword(in.Password, h.BcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   avatar.URL(h.AvatarBase, in.Email),
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "User already exists", Param: "email"})
			return
		}
		h.Log.Error("user create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	token, err := h.Tokens.Issue(created.ID)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", created.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"token": token})
}

func toFieldErrors(result inputval.Result) []httpjson.FieldError {
	out := make([]httpjson.FieldError, 0, len(result.Errors))
	for _, e := range result.Errors {
		out = append(out, httpjson.FieldError{Msg: e.Msg, Param: e.Param})
	}
	return out
}
