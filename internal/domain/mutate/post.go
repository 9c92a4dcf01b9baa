// internal/domain/mutate/post.go
package mutate

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/web-rebel/devlink/internal/domain/models"
)

// ToggleLike removes userID's like when present, otherwise prepends one.
// At most one like per user is kept; toggling twice restores the original
// list. It returns the resulting likes collection.
func ToggleLike(post *models.Post, userID primitive.ObjectID) []models.Like {
	for i := range post.Likes {
		if post.Likes[i].UserID == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return post.Likes
		}
	}
	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)
	return post.Likes
}

// AddComment validates c, assigns it a fresh ID and timestamp, and prepends
// it to the post's comments (newest first).
func AddComment(post *models.Post, c models.Comment) error {
	if c.Text == "" {
		return &ValidationError{Param: "text", Msg: "Text is required"}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	post.Comments = append([]models.Comment{c}, post.Comments...)
	return nil
}

// RemoveComment removes exactly the comment whose ID equals commentID. Only
// the comment's creator may remove it; anyone else gets AuthorizationError
// and the list is left untouched. A miss returns NotFoundError.
func RemoveComment(post *models.Post, commentID string, actor primitive.ObjectID) error {
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			if post.Comments[i].UserID != actor {
				return &AuthorizationError{Msg: "User not authorized"}
			}
			post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{What: "comment"}
}

// CanDeletePost checks that actor created the post. The check is explicit and
// does not depend on how the aggregate was loaded.
func CanDeletePost(post *models.Post, actor primitive.ObjectID) error {
	if post.UserID != actor {
		return &AuthorizationError{Msg: "User not authorized"}
	}
	return nil
}
