// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed post aggregate. Name and avatar are snapshots of the creator
// taken at creation time; later profile edits do not touch them. Likes hold at
// most one entry per user; comments are ordered newest first.
type Post struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`

	Text   string `bson:"text" json:"text"`
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Likes    []Like    `bson:"likes" json:"likes"`
	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Like marks one user's like on a post.
type Like struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded post comment. ID is an opaque string compared
// byte-for-byte; name and avatar are creator snapshots.
type Comment struct {
	ID     string             `bson:"id" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
