// internal/app/features/admin/service.go
package admin

import (
	"context"
	"errors"
	"strings"

	profilestore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/profiles"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/htmlsanitize"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.uber.org/zap"
)

// ProfileStore is the slice of the profile store the admin flows need.
type ProfileStore interface {
	Create(ctx context.Context, p models.Profile) (models.Profile, error)
	GetByCollegeID(ctx context.Context, collegeID string) (*models.Profile, error)
	SetActive(ctx context.Context, collegeID string, active bool) error
	List(ctx context.Context, f profilestore.ListFilter) ([]models.Profile, error)
	FetchDashboardCounts(ctx context.Context) (profilestore.DashboardCounts, error)
}

// Service implements user directory management.
type Service struct {
	Profiles ProfileStore
	Log      *zap.Logger
}

func NewService(profiles ProfileStore, logger *zap.Logger) *Service {
	return &Service{Profiles: profiles, Log: logger}
}

// AddUserInput is a pre-registration request.
type AddUserInput struct {
	CollegeID  string
	Name       string
	Email      string
	Role       string
	Department string
}

// AddUser pre-registers a profile without credentials. The person
// activates it later with their college ID and registered email.
func (s *Service) AddUser(ctx context.Context, in AddUserInput) (models.Profile, error) {
	if strings.TrimSpace(in.CollegeID) == "" {
		return models.Profile{}, apperr.E(apperr.InvalidArgument, "college_id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Profile{}, apperr.E(apperr.InvalidArgument, "name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return models.Profile{}, apperr.E(apperr.InvalidArgument, "email is required")
	}

	role, ok := models.ParseRole(in.Role)
	if !ok {
		return models.Profile{}, apperr.E(apperr.InvalidArgument, "role must be one of admin, principal, hod, teacher, student")
	}
	if role == models.RoleHOD && strings.TrimSpace(in.Department) == "" {
		return models.Profile{}, apperr.E(apperr.InvalidArgument, "department is required for the hod role")
	}

	created, err := s.Profiles.Create(ctx, models.Profile{
		CollegeID:  in.CollegeID,
		Name:       htmlsanitize.Strip(in.Name),
		Email:      in.Email,
		Role:       role,
		Department: in.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, profilestore.ErrDuplicateCollegeID):
			return models.Profile{}, apperr.E(apperr.AlreadyExists, "a user with this college_id already exists")
		case errors.Is(err, profilestore.ErrDuplicateEmail):
			return models.Profile{}, apperr.E(apperr.AlreadyExists, "a user with this email already exists")
		}
		return models.Profile{}, apperr.Wrap(err, "create profile")
	}

	s.Log.Info("user pre-registered",
		zap.String("college_id", created.CollegeID),
		zap.String("role", string(created.Role)))
	return created, nil
}

// GetUser loads one profile by college ID.
func (s *Service) GetUser(ctx context.Context, collegeID string) (*models.Profile, error) {
	p, err := s.Profiles.GetByCollegeID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return nil, apperr.E(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(err, "load profile")
	}
	return p, nil
}

// ListUsers returns profiles, optionally filtered by role and department.
func (s *Service) ListUsers(ctx context.Context, roleFilter, department string) ([]models.Profile, error) {
	var f profilestore.ListFilter
	if roleFilter != "" {
		role, ok := models.ParseRole(roleFilter)
		if !ok {
			return nil, apperr.E(apperr.InvalidArgument, "unknown role filter")
		}
		f.Role = &role
	}
	f.Department = department

	out, err := s.Profiles.List(ctx, f)
	if err != nil {
		return nil, apperr.Wrap(err, "list profiles")
	}
	return out, nil
}

// SetUserActive toggles whether a profile can be used. Deactivation
// blocks both login and future activation but never deletes anything.
func (s *Service) SetUserActive(ctx context.Context, collegeID string, active bool) error {
	if err := s.Profiles.SetActive(ctx, collegeID, active); err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return apperr.E(apperr.NotFound, "user not found")
		}
		return apperr.Wrap(err, "set active")
	}
	s.Log.Info("user active flag changed",
		zap.String("college_id", collegeID),
		zap.Bool("active", active))
	return nil
}

// DashboardStats returns the directory totals for the admin dashboard.
func (s *Service) DashboardStats(ctx context.Context) (profilestore.DashboardCounts, error) {
	counts, err := s.Profiles.FetchDashboardCounts(ctx)
	if err != nil {
		return profilestore.DashboardCounts{}, apperr.Wrap(err, "dashboard counts")
	}
	return counts, nil
}
