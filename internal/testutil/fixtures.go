package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile inserts a pre-registered profile with the given fields.
func (f *Fixtures) CreateProfile(ctx context.Context, collegeID, name, email string, role models.Role, department string) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Profile{
		ID:         primitive.NewObjectID(),
		CollegeID:  collegeID,
		Name:       name,
		Email:      email,
		Role:       role,
		Department: department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("college_users").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateStudent inserts a student profile in the given department.
func (f *Fixtures) CreateStudent(ctx context.Context, collegeID, department string) models.Profile {
	f.t.Helper()
	return f.CreateProfile(ctx, collegeID, "Test Student "+collegeID, collegeID+"@college.test", models.RoleStudent, department)
}

// CreateAdmin inserts an admin profile.
func (f *Fixtures) CreateAdmin(ctx context.Context, collegeID string) models.Profile {
	f.t.Helper()
	return f.CreateProfile(ctx, collegeID, "Test Admin", collegeID+"@college.test", models.RoleAdmin, "")
}

// CreateActivatedProfile inserts a profile already bound to an auth account.
func (f *Fixtures) CreateActivatedProfile(ctx context.Context, collegeID, email, authUserID string, role models.Role) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Profile{
		ID:         primitive.NewObjectID(),
		CollegeID:  collegeID,
		Name:       "Test User " + collegeID,
		Email:      email,
		Role:       role,
		AuthUserID: &authUserID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("college_users").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create activated test profile: %v", err)
	}
	return p
}

// CreatePosting inserts a hackathon posting with the given approval status.
func (f *Fixtures) CreatePosting(ctx context.Context, title, link string, status models.ApprovalStatus) models.Posting {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Posting{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Description:    "Test posting description",
		Link:           link,
		Domain:         "web",
		IsActive:       true,
		ApprovalStatus: status,
		Source:         models.SourceManual,
		CreatedAt:      now,
	}

	if _, err := f.db.Collection("hackathons").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test posting: %v", err)
	}
	return p
}

// CreateRegistration inserts a registration linking a student to a posting.
func (f *Fixtures) CreateRegistration(ctx context.Context, postingID primitive.ObjectID, studentCollegeID string) models.Registration {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Registration{
		ID:               primitive.NewObjectID(),
		HackathonID:      postingID,
		StudentCollegeID: studentCollegeID,
		Status:           models.RegistrationApplied,
		CreatedAt:        now,
	}

	if _, err := f.db.Collection("hackathon_registrations").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return r
}
