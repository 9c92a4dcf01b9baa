// Package posts implements the /api/posts surface. Every route is private.
package posts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
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

// Handler owns the post endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a posts Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

const msgPostNotFound = "Post not found"

type createInput struct {
	Text string `json:"text"`
}

// HandleCreate handles POST /api/posts. The author's name and avatar are
// snapshotted onto the post at creation time.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	var in createInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Invalid request body"})
		return
	}
	if in.Text == "" {
		httpjson.ValidationErrors(w, httpjson.FieldError{Msg: "Text is required", Param: "text"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

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

	created, err := poststore.New(h.DB).Create(ctx, models.Post{
		UserID: caller.ID,
		Text:   htmlsanitize.Sanitize(in.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
	})
	if err != nil {
		h.Log.Error("post create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, created)
}

// HandleList handles GET /api/posts, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := poststore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("post list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	if list == nil {
		list = []models.Post{}
	}

	httpjson.Write(w, http.StatusOK, list)
}

// HandleGet handles GET /api/posts/{id}. A malformed id gets the same 404 as
// a missing post.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, ok := h.loadPost(ctx, w, r)
	if !ok {
		return
	}

	httpjson.Write(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /api/posts/{id}. Only the creator may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, ok := h.loadPost(ctx, w, r)
	if !ok {
		return
	}
	if err := mutate.CanDeletePost(post, caller.ID); err != nil {
		httpjson.Msg(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	if err := poststore.New(h.DB).Delete(ctx, post.ID); err != nil {
		if err == poststore.ErrNotFound {
			httpjson.Msg(w, http.StatusNotFound, msgPostNotFound)
			return
		}
		h.Log.Error("post delete failed", zap.Error(err), zap.String("post_id", post.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	httpjson.Msg(w, http.StatusOK, "Post removed")
}

// loadPost resolves {id} and fetches the post, writing the 404 itself on a
// malformed id or a miss.
func (h *Handler) loadPost(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Msg(w, http.StatusNotFound, msgPostNotFound)
		return nil, false
	}

	post, err := poststore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == poststore.ErrNotFound {
			httpjson.Msg(w, http.StatusNotFound, msgPostNotFound)
			return nil, false
		}
		h.Log.Error("post lookup failed", zap.Error(err), zap.String("post_id", id.Hex()))
		httpjson.ServerError(w)
		return nil, false
	}
	return post, true
}
