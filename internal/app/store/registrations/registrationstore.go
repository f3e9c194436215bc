package registrationstore

import (
	"context"
	"errors"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the hackathon_registrations collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hackathon_registrations")}
}

var (
	// ErrNotFound is returned when no registration matches the lookup.
	ErrNotFound = errors.New("registration not found")
	// ErrDuplicateRegistration is returned when the student already
	// registered for the posting.
	ErrDuplicateRegistration = errors.New("already registered for this hackathon")
)

// Create inserts one registration per (posting, student) pair. The
// unique compound index is the arbiter under concurrency.
func (s *Store) Create(ctx context.Context, r models.Registration) (models.Registration, error) {
	r.Status = models.RegistrationApplied
	r.CreatedAt = time.Now().UTC()

	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Registration{}, ErrDuplicateRegistration
		}
		return models.Registration{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return r, nil
}

// ListByPosting returns all registrations for a posting, oldest first.
func (s *Store) ListByPosting(ctx context.Context, postingID primitive.ObjectID) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"hackathon_id": postingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every registration, for aggregate reporting.
func (s *Store) ListAll(ctx context.Context) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Acknowledge records a reviewer decision on a registration. Decisions
// may be revised; there is no terminal state.
func (s *Store) Acknowledge(ctx context.Context, id primitive.ObjectID, status models.RegistrationStatus, reviewerCollegeID, notes string) (*models.Registration, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":          status,
		"acknowledged_by": reviewerCollegeID,
		"notes":           notes,
		"updated_at":      now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.Registration
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}
