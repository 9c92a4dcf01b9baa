package posts

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	poststore "github.com/web-rebel/devlink/internal/app/store/posts"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/httpjson"
	"github.com/web-rebel/devlink/internal/app/system/timeouts"
	"github.com/web-rebel/devlink/internal/domain/mutate"
)

// HandleToggleLike handles PUT /api/posts/like/{id}: adds the caller's like,
// or removes it when already present. Responds with the resulting likes.
func (h *Handler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, ok := h.loadPost(ctx, w, r)
	if !ok {
		return
	}

	likes := mutate.ToggleLike(post, caller.ID)

	if err := poststore.New(h.DB).Replace(ctx, post); err != nil {
		h.Log.Error("post replace failed", zap.Error(err), zap.String("post_id", post.ID.Hex()))
		httpjson.ServerError(w)
		return
	}

	httpjson.Write(w, http.StatusOK, likes)
}
