// Package authfeature implements login and caller lookup: POST /api/auth
// exchanges credentials for a token, GET /api/auth returns the signed-in
// user.
package authfeature

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/web-rebel/devlink/internal/app/store/users"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/inputval"
	"github.com/web-rebel/devlink/internal/app/system/ratelimit"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
)

// Handler owns the login and current-user endpoints.
type Handler struct {
	DB      *mongo.Database
	Tokens  *auth.Tokens
	Limiter *ratelimit.CredentialLimiter
	Log     *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, tokens *auth.Tokens, limiter *ratelimit.CredentialLimiter, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Tokens: tokens, Limiter: limiter, Log: logger}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// HandleLogin handles POST /api/auth.
//
// Unknown email and wrong password produce the same 400 body so the endpoint
// does not confirm which addresses have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
		return
	}

	if result := inputval.Validate(in); result.HasErrors() {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: result.First()})
		return
	}

	if allowed, reason := h.Limiter.Check(r, in.Email); !allowed {
		httpjson.Msg(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid credentials"})
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	h.Limiter.ResetEmail(in.Email)
	httpjson.Write(w, http.StatusOK, map[string]string{"token": token})
}

// HandleCurrentUser handles GET /api/auth. The password field is excluded by
// the model's JSON tags.
func (h *Handler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByID(ctx, caller.ID)
	if err != nil {
		if err == userstore.ErrNotFound {
			// Valid token for a deleted account.
			httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		h.Log.Error("current-user lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}
