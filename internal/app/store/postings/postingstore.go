package postingstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the hackathons collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hackathons")}
}

var (
	// ErrNotFound is returned when no posting matches the lookup.
	ErrNotFound = errors.New("hackathon not found")
	// ErrNotPending is returned when a review decision targets a posting
	// that already left the pending state.
	ErrNotPending = errors.New("hackathon is not pending review")
)

// Create inserts a posting, deriving the case-insensitive title key.
func (s *Store) Create(ctx context.Context, p models.Posting) (models.Posting, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Link = strings.TrimSpace(p.Link)
	p.TitleCI = text.Fold(p.Title)
	p.CreatedAt = time.Now().UTC()

	res, err := s.c.InsertOne(ctx, p)
	if err != nil {
		return models.Posting{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// GetByID loads a posting by its object ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Posting, error) {
	var p models.Posting
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns postings ordered by deadline ascending, then newest
// first. With includeInactive false only approved, active postings are
// returned, which is the student-facing view. With includeInactive true
// the active filter is dropped and the pending review queue is added;
// rejected postings never list.
func (s *Store) List(ctx context.Context, includeInactive bool) ([]models.Posting, error) {
	filter := bson.M{}
	if includeInactive {
		filter["approval_status"] = bson.M{"$in": []models.ApprovalStatus{
			models.ApprovalApproved, models.ApprovalPending,
		}}
	} else {
		filter["approval_status"] = models.ApprovalApproved
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "deadline", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Posting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a posting.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByLinkOrTitle looks for a posting with the same link or the same
// case-folded title, regardless of approval status. Returns (nil, nil)
// when nothing matches.
func (s *Store) FindByLinkOrTitle(ctx context.Context, link, title string) (*models.Posting, error) {
	link = strings.TrimSpace(link)
	titleCI := text.Fold(strings.TrimSpace(title))

	or := []bson.M{{"title_ci": titleCI}}
	if link != "" {
		or = append(or, bson.M{"link": link})
	}

	var p models.Posting
	err := s.c.FindOne(ctx, bson.M{"$or": or}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Decide resolves a pending posting to approved or rejected in one
// conditional update, so concurrent reviewers cannot both win.
func (s *Store) Decide(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, reviewerCollegeID, note string) (*models.Posting, error) {
	set := bson.M{
		"approval_status": status,
		"is_active":       status == models.ApprovalApproved,
		"approved_by":     reviewerCollegeID,
		"updated_at":      time.Now().UTC(),
	}
	if note != "" {
		set["review_note"] = note
	}
	update := bson.M{"$set": set}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Posting
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "approval_status": models.ApprovalPending},
		update, opts).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Missing or already decided; look again to say which.
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrNotPending
}
