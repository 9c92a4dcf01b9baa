package profilestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/web-rebel/devlink/internal/domain/models"
)

// Store persists profile aggregates in the profiles collection. Each profile
// is loaded and persisted as one unit, embedded sub-collections included.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles"), users: db.Collection("users")}
}

// ErrNotFound is returned when no profile matches the lookup.
var ErrNotFound = errors.New("profile not found")

// GetByUserID loads the profile owned by userID, with the owner's
// name/avatar attached for responses.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.attachUser(ctx, &p)
	return &p, nil
}

// List returns all profiles, owners attached.
func (s *Store) List(ctx context.Context) ([]models.Profile, error) {
	cursor, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	for i := range profiles {
		s.attachUser(ctx, &profiles[i])
	}
	return profiles, nil
}

// Upsert creates the caller's profile or overwrites its scalar fields,
// leaving the experience and education sub-collections untouched. Returns
// the stored document.
func (s *Store) Upsert(ctx context.Context, p models.Profile) (*models.Profile, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"company":        p.Company,
			"website":        p.Website,
			"location":       p.Location,
			"status":         p.Status,
			"skills":         p.Skills,
			"bio":            p.Bio,
			"githubusername": p.GithubUsername,
			"social":         p.Social,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"user":       p.UserID,
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.Profile
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user": p.UserID}, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	s.attachUser(ctx, &stored)
	return &stored, nil
}

// Replace persists a mutated aggregate wholesale. Last write wins; there is
// no optimistic-concurrency token on the document.
func (s *Store) Replace(ctx context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the profile owned by userID. Deleting a missing
// profile is not an error; account deletion calls this unconditionally.
func (s *Store) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

// attachUser fills the response-only owner snapshot. A missing owner leaves
// the field nil rather than failing the profile read.
func (s *Store) attachUser(ctx context.Context, p *models.Profile) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": p.UserID}).Decode(&u); err != nil {
		return
	}
	p.User = &models.UserRef{Name: u.Name, Avatar: u.Avatar}
}
