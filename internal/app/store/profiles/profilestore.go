package profilestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/normalize"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the college_users collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("college_users")}
}

var (
	// ErrNotFound is returned when no profile matches the lookup.
	ErrNotFound = errors.New("profile not found")
	// ErrDuplicateCollegeID is returned when a profile with the college ID already exists.
	ErrDuplicateCollegeID = errors.New("a user with this college_id already exists")
	// ErrDuplicateEmail is returned when a profile with the email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrAlreadyActivated is returned when the profile is already bound to an auth account.
	ErrAlreadyActivated = errors.New("account already activated")

	errBadRole    = errors.New(`role must be "admin"|"principal"|"hod"|"teacher"|"student"`)
	errDeptNeeded = errors.New("hod must have a department")
)

// GetByCollegeID loads a profile by its college identifier.
func (s *Store) GetByCollegeID(ctx context.Context, collegeID string) (*models.Profile, error) {
	var p models.Profile
	err := s.c.FindOne(ctx, bson.M{"college_id": normalize.CollegeID(collegeID)}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByAuthUserID resolves the profile bound to an auth account.
// Returns (nil, nil) when no profile is linked to the account.
func (s *Store) FindByAuthUserID(ctx context.Context, authUserID string) (*models.Profile, error) {
	var p models.Profile
	err := s.c.FindOne(ctx, bson.M{"auth_user_id": authUserID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new pre-registered profile after normalizing and
// validating fields. The unique indexes on college_id and email are the
// authoritative duplicate check; concurrent inserts lose with a
// duplicate sentinel rather than a second row.
func (s *Store) Create(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.CollegeID = normalize.CollegeID(p.CollegeID)
	p.Name = normalize.Name(p.Name)
	p.Email = normalize.Email(p.Email)
	p.Department = normalize.Department(p.Department)

	if !p.Role.Valid() {
		return models.Profile{}, errBadRole
	}
	if p.Role == models.RoleHOD && p.Department == "" {
		return models.Profile{}, errDeptNeeded
	}

	// Pre-registration: no credentials yet, active by default.
	p.AuthUserID = nil
	p.IsActive = true

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Profile{}, dupSentinel(err)
		}
		return models.Profile{}, err
	}
	return p, nil
}

// BindAuthUser sets the auth_user_id link exactly once. The filter only
// matches profiles without a link, so a concurrent double-activation
// resolves to ErrAlreadyActivated for the loser.
func (s *Store) BindAuthUser(ctx context.Context, collegeID, authUserID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"college_id":   normalize.CollegeID(collegeID),
			"auth_user_id": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"auth_user_id": authUserID, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByCollegeID(ctx, collegeID); err != nil {
			return err // ErrNotFound or a store failure
		}
		return ErrAlreadyActivated
	}
	return nil
}

// SetActive toggles the active flag for a profile.
func (s *Store) SetActive(ctx context.Context, collegeID string, active bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"college_id": normalize.CollegeID(collegeID)},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFilter narrows List by exact-match fields.
type ListFilter struct {
	Role       *models.Role
	Department string
}

// List returns profiles matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Profile, error) {
	filter := bson.M{}
	if f.Role != nil {
		filter["role"] = *f.Role
	}
	if f.Department != "" {
		filter["department"] = normalize.Department(f.Department)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardCounts holds the admin dashboard totals.
type DashboardCounts struct {
	TotalUsers        int64            `json:"total_users"`
	ActivatedUsers    int64            `json:"activated_users"`
	PendingActivation int64            `json:"pending_activation"`
	ByRole            map[string]int64 `json:"by_role"`
	ActiveUsers       int64            `json:"active_users"`
	InactiveUsers     int64            `json:"inactive_users"`
}

// FetchDashboardCounts computes the admin dashboard totals.
func (s *Store) FetchDashboardCounts(ctx context.Context) (DashboardCounts, error) {
	out := DashboardCounts{ByRole: make(map[string]int64, 5)}

	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return out, err
	}
	out.TotalUsers = total

	activated, err := s.c.CountDocuments(ctx, bson.M{"auth_user_id": bson.M{"$exists": true}})
	if err != nil {
		return out, err
	}
	out.ActivatedUsers = activated
	out.PendingActivation = total - activated

	for _, role := range []models.Role{models.RoleAdmin, models.RolePrincipal, models.RoleHOD, models.RoleTeacher, models.RoleStudent} {
		n, err := s.c.CountDocuments(ctx, bson.M{"role": role})
		if err != nil {
			return out, err
		}
		out.ByRole[string(role)] = n
	}

	active, err := s.c.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return out, err
	}
	out.ActiveUsers = active
	out.InactiveUsers = total - active

	return out, nil
}

// StudentCountsByDepartment returns, for every department with at least
// one student profile, the number of students in it.
func (s *Store) StudentCountsByDepartment(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleStudent}}},
		{{Key: "$group", Value: bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Department string `bson:"_id"`
			Count      int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Department] = row.Count
	}
	return out, cur.Err()
}

// StudentDepartments maps each given student college ID to its
// department. IDs without a student profile are omitted.
func (s *Store) StudentDepartments(ctx context.Context, collegeIDs []string) (map[string]string, error) {
	if len(collegeIDs) == 0 {
		return map[string]string{}, nil
	}

	proj := options.Find().SetProjection(bson.M{"college_id": 1, "department": 1})
	cur, err := s.c.Find(ctx, bson.M{
		"college_id": bson.M{"$in": collegeIDs},
		"role":       models.RoleStudent,
	}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]string, len(collegeIDs))
	for cur.Next(ctx) {
		var row struct {
			CollegeID  string `bson:"college_id"`
			Department string `bson:"department"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.CollegeID] = row.Department
	}
	return out, cur.Err()
}

// dupSentinel maps a duplicate-key write error to the field-specific
// sentinel using the violated index name.
func dupSentinel(err error) error {
	if strings.Contains(err.Error(), "uniq_email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateCollegeID
}
