package posts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	poststore "github.com/web-rebel/devlink/internal/app/store/posts"
	userstore "github.com/web-rebel/devlink/internal/app/store/users"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/htmlsanitize"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
	"github.com/web-rebel/devlink/internal/domain/models"
	"github.com/web-rebel/devlink/internal/domain/mutate"
)

type commentInput struct {
	Text string `json:"text"`
}

// HandleAddComment handles POST /api/posts/comment/{id}. Responds with the
// resulting comments collection.
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	var in commentInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, ok := h.loadPost(ctx, w, r)
	if !ok {
		return
	}

	author, err := userstore.New(h.DB).GetByID(ctx, caller.ID)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		h.Log.Error("author lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	err = mutate.AddComment(post, models.Comment{
		UserID: caller.ID,
		Text:   htmlsanitize.Sanitize(in.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
	})
	if err != nil {
		if ve, isValidation := mutate.AsValidation(err); isValidation {
			httpjson.ValidationErrors(w, httpjson.FieldError{Msg: ve.Msg, Param: ve.Param})
			return
		}
		h.Log.Error("comment add failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	if err := poststore.New(h.DB).Replace(ctx, post); err != nil {
		h.Log.Error("post replace failed", zap.Error(err), zap.String("post_id", post.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, post.Comments)
}

// HandleRemoveComment handles DELETE /api/posts/comment/{id}/{comment_id}.
// Creator-only; responds with the full post after removal.
func (h *Handler) HandleRemoveComment(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, ok := h.loadPost(ctx, w, r)
	if !ok {
		return
	}

	if err := mutate.RemoveComment(post, chi.URLParam(r, "comment_id"), caller.ID); err != nil {
		switch {
		case mutate.IsAuthorization(err):
			httpjson.Msg(w, http.StatusUnauthorized, "User not authorized")
		case mutate.IsNotFound(err):
			httpjson.Msg(w, http.StatusNotFound, "Comment does not exist")
		default:
			h.Log.Error("comment remove failed", zap.Error(err))
			httpjson.ServerError(w)
		}
		return
	}

	if err := poststore.New(h.DB).Replace(ctx, post); err != nil {
		h.Log.Error("post replace failed", zap.Error(err), zap.String("post_id", post.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, post)
}
