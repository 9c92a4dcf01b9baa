package posts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/web-rebel/devlink/internal/app/features/posts"
	poststore "github.com/web-rebel/devlink/internal/app/store/posts"
	"github.com/web-rebel/devlink/internal/testutil"
)

func toggleLike(t *testing.T, h *posts.Handler, postID, userID primitive.ObjectID) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.WithUser(httptest.NewRequest("PUT", "/api/posts/like/"+postID.Hex(), nil), userID)
	req = testutil.WithChiURLParam(req, "id", postID.Hex())
	rec := httptest.NewRecorder()
	h.HandleToggleLike(rec, req)
	return rec
}

func TestHandleToggleLike_RoundTrip(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "Ada", "ada@example.com")
	liker := fx.CreateUser(ctx, "Grace", "grace@example.com")
	post := fx.CreatePost(ctx, owner, "like me")

	rec := toggleLike(t, h, post.ID, liker.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("like: got %d", rec.Code)
	}
	var likes []struct {
		User string `json:"user"`
	}
	testutil.DecodeBody(t, rec, &likes)
	if len(likes) != 1 || likes[0].User != liker.ID.Hex() {
		t.Fatalf("likes after first toggle: %+v", likes)
	}

	// Second toggle removes the like.
	rec = toggleLike(t, h, post.ID, liker.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike: got %d", rec.Code)
	}
	likes = nil
	testutil.DecodeBody(t, rec, &likes)
	if len(likes) != 0 {
		t.Errorf("likes after second toggle: %+v", likes)
	}

	stored, err := poststore.New(fx.DB()).GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.Likes) != 0 {
		t.Errorf("persisted likes: %+v", stored.Likes)
	}
}

func TestHandleToggleLike_OneLikePerUserNewestFirst(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := fx.CreateUser(ctx, "Ada", "ada@example.com")
	a := fx.CreateUser(ctx, "Grace", "grace@example.com")
	b := fx.CreateUser(ctx, "Edsger", "edsger@example.com")
	post := fx.CreatePost(ctx, owner, "popular")

	if rec := toggleLike(t, h, post.ID, a.ID); rec.Code != http.StatusOK {
		t.Fatalf("first like: got %d", rec.Code)
	}
	rec := toggleLike(t, h, post.ID, b.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("second like: got %d", rec.Code)
	}

	var likes []struct {
		User string `json:"user"`
	}
	testutil.DecodeBody(t, rec, &likes)
	if len(likes) != 2 {
		t.Fatalf("likes: %+v", likes)
	}
	if likes[0].User != b.ID.Hex() {
		t.Errorf("newest like not first: %+v", likes)
	}

	// Re-liking by the same user toggles off, never duplicates.
	rec = toggleLike(t, h, post.ID, a.ID)
	testutil.DecodeBody(t, rec, &likes)
	if len(likes) != 1 || likes[0].User != b.ID.Hex() {
		t.Errorf("likes after a toggled off: %+v", likes)
	}
}

func TestHandleToggleLike_MissingPost(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	user := fx.CreateUser(ctx, "Ada", "ada@example.com")

	rec := toggleLike(t, h, primitive.NewObjectID(), user.ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
