// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the one-per-user profile aggregate. Experience and education are
// embedded sub-collections ordered newest first; entry IDs are opaque strings
// compared byte-for-byte.
type Profile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`

	Company        string   `bson:"company,omitempty" json:"company,omitempty"`
	Website        string   `bson:"website,omitempty" json:"website,omitempty"`
	Location       string   `bson:"location,omitempty" json:"location,omitempty"`
	Status         string   `bson:"status" json:"status"`
	Skills         []string `bson:"skills" json:"skills"`
	Bio            string   `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string   `bson:"githubusername,omitempty" json:"githubusername,omitempty"`

	Social     SocialLinks  `bson:"social,omitempty" json:"social,omitempty"`
	Experience []Experience `bson:"experience" json:"experience"`
	Education  []Education  `bson:"education" json:"education"`

	// Denormalized owner fields for list/detail responses; filled from the
	// users collection when the profile is loaded, never persisted.
	User *UserRef `bson:"-" json:"user_info,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRef is the owner snapshot attached to profile responses.
type UserRef struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// SocialLinks holds optional social platform URLs; absent platforms are
// omitted from both BSON and JSON.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is a work history entry inside a profile.
type Experience struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Company     string     `bson:"company" json:"company"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time  `bson:"from" json:"from"`
	To          *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a schooling entry inside a profile.
type Education struct {
	ID           string     `bson:"id" json:"id"`
	School       string     `bson:"school" json:"school"`
	Degree       string     `bson:"degree" json:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time  `bson:"from" json:"from"`
	To           *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
}
