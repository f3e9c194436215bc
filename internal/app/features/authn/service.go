// internal/app/features/authn/service.go
package authn

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	profilestore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/profiles"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/identity"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/metrics"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/normalize"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.uber.org/zap"
)

const minPasswordLen = 8

// ProfileStore is the slice of the profile store the auth flows need.
type ProfileStore interface {
	GetByCollegeID(ctx context.Context, collegeID string) (*models.Profile, error)
	FindByAuthUserID(ctx context.Context, authUserID string) (*models.Profile, error)
	BindAuthUser(ctx context.Context, collegeID, authUserID string) error
}

// Service implements account activation and login on top of the
// pre-registered profile directory and the credential provider.
type Service struct {
	Profiles ProfileStore
	Identity identity.Provider
	Log      *zap.Logger
}

func NewService(profiles ProfileStore, provider identity.Provider, logger *zap.Logger) *Service {
	return &Service{Profiles: profiles, Identity: provider, Log: logger}
}

// Eligibility describes whether a college ID can self-activate.
type Eligibility struct {
	Eligible   bool   `json:"eligible"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Message    string `json:"message"`
}

// CheckEligibility reports whether the profile behind a college ID can
// still activate, without requiring credentials. It runs the same
// precondition ladder as Activate, read-only.
func (s *Service) CheckEligibility(ctx context.Context, collegeID, email string) (Eligibility, error) {
	p, err := s.Profiles.GetByCollegeID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return Eligibility{Eligible: false, Message: "college ID not found; contact your administrator"}, nil
		}
		return Eligibility{}, apperr.Wrap(err, "check eligibility")
	}

	e := Eligibility{
		Name:       p.Name,
		Role:       string(p.Role),
		Department: p.Department,
	}
	switch {
	case email != "" && normalize.Email(email) != p.Email:
		e.Message = "email does not match the registered email for this college ID"
	case p.Activated():
		e.Message = "account already activated; please log in"
	case !p.IsActive:
		e.Message = "account has been deactivated; contact your administrator"
	default:
		e.Eligible = true
		e.Message = "eligible for activation"
	}
	return e, nil
}

// ActivateInput carries the self-service activation request.
type ActivateInput struct {
	CollegeID string
	Email     string
	Password  string
}

// Activate binds credentials to a pre-registered profile. The checks
// run in a fixed order so callers get the most specific failure:
// unknown ID, then email mismatch, then already activated, then
// deactivated.
func (s *Service) Activate(ctx context.Context, in ActivateInput) (*models.Profile, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	p, err := s.Profiles.GetByCollegeID(ctx, in.CollegeID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return nil, apperr.E(apperr.NotFound, "college ID not found; contact your administrator")
		}
		return nil, apperr.Wrap(err, "load profile")
	}

	if normalize.Email(in.Email) != p.Email {
		return nil, apperr.E(apperr.InvalidArgument, "email does not match the registered email for this college ID")
	}
	if p.Activated() {
		return nil, apperr.E(apperr.AlreadyActivated, "account already activated; please log in")
	}
	if !p.IsActive {
		return nil, apperr.E(apperr.Forbidden, "account has been deactivated; contact your administrator")
	}

	acct, err := s.Identity.CreateAccount(ctx, p.Email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperr.E(apperr.AlreadyActivated, "account already activated; please log in")
		}
		return nil, apperr.Wrap(err, "create credentials")
	}

	if err := s.Profiles.BindAuthUser(ctx, p.CollegeID, acct.ID); err != nil {
		switch {
		case errors.Is(err, profilestore.ErrAlreadyActivated):
			return nil, apperr.E(apperr.AlreadyActivated, "account already activated; please log in")
		case errors.Is(err, profilestore.ErrNotFound):
			return nil, apperr.E(apperr.NotFound, "college ID not found; contact your administrator")
		}
		return nil, apperr.Wrap(err, "bind credentials")
	}

	s.Log.Info("account activated",
		zap.String("college_id", p.CollegeID),
		zap.String("role", string(p.Role)))

	p.AuthUserID = &acct.ID
	return p, nil
}

// LoginResult is a minted token plus the profile it belongs to.
type LoginResult struct {
	Token   string
	Profile *models.Profile
}

// Login authenticates credentials and resolves the linked profile.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	token, acct, err := s.Identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			metrics.AuthFailures.Inc()
			return LoginResult{}, apperr.E(apperr.Unauthorized, "invalid email or password")
		}
		return LoginResult{}, apperr.Wrap(err, "authenticate")
	}

	p, err := s.Profiles.FindByAuthUserID(ctx, acct.ID)
	if err != nil {
		return LoginResult{}, apperr.Wrap(err, "resolve profile")
	}
	if p == nil {
		return LoginResult{}, apperr.E(apperr.NotFound, "user profile not found")
	}
	if !p.IsActive {
		return LoginResult{}, apperr.E(apperr.Forbidden, "account is deactivated")
	}

	return LoginResult{Token: token, Profile: p}, nil
}

// ChangePassword verifies the old password before setting the new one.
func (s *Service) ChangePassword(ctx context.Context, p *models.Profile, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if !p.Activated() {
		return apperr.E(apperr.InvalidState, "account is not activated")
	}

	_, _, err := s.Identity.Authenticate(ctx, p.Email, oldPassword)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return apperr.E(apperr.InvalidArgument, "old password is incorrect")
		}
		return apperr.Wrap(err, "verify old password")
	}

	if err := s.Identity.UpdatePassword(ctx, *p.AuthUserID, newPassword); err != nil {
		return apperr.Wrap(err, "update password")
	}

	s.Log.Info("password changed", zap.String("college_id", p.CollegeID))
	return nil
}

func validatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return apperr.E(apperr.InvalidArgument, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	return nil
}
