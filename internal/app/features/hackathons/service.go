// internal/app/features/hackathons/service.go
package hackathons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	postingstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/postings"
	registrationstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/registrations"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/htmlsanitize"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostingStore is the slice of the posting store the workflow needs.
type PostingStore interface {
	Create(ctx context.Context, p models.Posting) (models.Posting, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Posting, error)
	List(ctx context.Context, includeInactive bool) ([]models.Posting, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByLinkOrTitle(ctx context.Context, link, title string) (*models.Posting, error)
	Decide(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, reviewerCollegeID, note string) (*models.Posting, error)
}

// RegistrationStore is the slice of the registration store the workflow needs.
type RegistrationStore interface {
	Create(ctx context.Context, r models.Registration) (models.Registration, error)
	ListByPosting(ctx context.Context, postingID primitive.ObjectID) ([]models.Registration, error)
	Acknowledge(ctx context.Context, id primitive.ObjectID, status models.RegistrationStatus, reviewerCollegeID, notes string) (*models.Registration, error)
}

// DepartmentSource answers the student-directory questions the stats
// report needs.
type DepartmentSource interface {
	StudentCountsByDepartment(ctx context.Context) (map[string]int64, error)
	StudentDepartments(ctx context.Context, collegeIDs []string) (map[string]string, error)
}

// Service implements the hackathon posting and registration workflow.
type Service struct {
	Postings      PostingStore
	Registrations RegistrationStore
	Departments   DepartmentSource
	Log           *zap.Logger
}

func NewService(postings PostingStore, registrations RegistrationStore, departments DepartmentSource, logger *zap.Logger) *Service {
	return &Service{
		Postings:      postings,
		Registrations: registrations,
		Departments:   departments,
		Log:           logger,
	}
}

// CreatePostingInput carries a posting creation request.
type CreatePostingInput struct {
	Title       string
	Description string
	Link        string
	Domain      string
	Deadline    *time.Time
	IsActive    *bool
	Source      string
	SourceModel string
}

// CreatePosting inserts a posting for the creator. Manual postings go
// live immediately; automated ones start pending and inactive no matter
// what the caller asked for.
func (s *Service) CreatePosting(ctx context.Context, in CreatePostingInput, creator *models.Profile) (models.Posting, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Posting{}, apperr.E(apperr.InvalidArgument, "title is required")
	}
	if strings.TrimSpace(in.Link) == "" {
		return models.Posting{}, apperr.E(apperr.InvalidArgument, "link is required")
	}

	source := models.SourceManual
	if in.Source != "" {
		switch models.PostingSource(in.Source) {
		case models.SourceManual, models.SourceAI:
			source = models.PostingSource(in.Source)
		default:
			return models.Posting{}, apperr.E(apperr.InvalidArgument, `source must be "manual" or "ai"`)
		}
	}

	p := models.Posting{
		Title:              in.Title,
		Description:        htmlsanitize.Strip(in.Description),
		Link:               in.Link,
		Domain:             in.Domain,
		Deadline:           in.Deadline,
		Source:             source,
		CreatedByCollegeID: creator.CollegeID,
	}

	if source == models.SourceAI {
		p.ApprovalStatus = models.ApprovalPending
		p.IsActive = false
		p.SourceModel = in.SourceModel
	} else {
		p.ApprovalStatus = models.ApprovalApproved
		p.IsActive = true
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
	}

	created, err := s.Postings.Create(ctx, p)
	if err != nil {
		return models.Posting{}, apperr.Wrap(err, "create posting")
	}

	s.Log.Info("posting created",
		zap.String("posting_id", created.ID.Hex()),
		zap.String("source", string(created.Source)),
		zap.String("created_by", creator.CollegeID))
	return created, nil
}

// Suggest is the automated-suggestion path. Before inserting it checks
// for an existing posting with the same link or title across every
// approval status, so a rejected suggestion is not re-proposed forever.
func (s *Service) Suggest(ctx context.Context, in CreatePostingInput, creator *models.Profile) (models.Posting, error) {
	existing, err := s.Postings.FindByLinkOrTitle(ctx, in.Link, in.Title)
	if err != nil {
		return models.Posting{}, apperr.Wrap(err, "duplicate check")
	}
	if existing != nil {
		return models.Posting{}, apperr.E(apperr.AlreadyExists,
			fmt.Sprintf("a matching hackathon already exists with status %q", existing.ApprovalStatus))
	}

	in.Source = string(models.SourceAI)
	in.IsActive = nil
	return s.CreatePosting(ctx, in, creator)
}

// ListPostings returns the approved feed. includeInactive widens it to
// every posting regardless of status, for reviewer views.
func (s *Service) ListPostings(ctx context.Context, includeInactive bool) ([]models.Posting, error) {
	out, err := s.Postings.List(ctx, includeInactive)
	if err != nil {
		return nil, apperr.Wrap(err, "list postings")
	}
	return out, nil
}

// DeletePosting removes a posting outright.
func (s *Service) DeletePosting(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Postings.Delete(ctx, id); err != nil {
		if errors.Is(err, postingstore.ErrNotFound) {
			return apperr.E(apperr.NotFound, "hackathon not found")
		}
		return apperr.Wrap(err, "delete posting")
	}
	s.Log.Info("posting deleted", zap.String("posting_id", id.Hex()))
	return nil
}

// Approve transitions a pending posting to approved and activates it.
func (s *Service) Approve(ctx context.Context, id primitive.ObjectID, approver *models.Profile) (*models.Posting, error) {
	return s.decide(ctx, id, models.ApprovalApproved, approver, "")
}

// Reject transitions a pending posting to rejected with an optional note.
func (s *Service) Reject(ctx context.Context, id primitive.ObjectID, approver *models.Profile, note string) (*models.Posting, error) {
	return s.decide(ctx, id, models.ApprovalRejected, approver, note)
}

func (s *Service) decide(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, approver *models.Profile, note string) (*models.Posting, error) {
	p, err := s.Postings.Decide(ctx, id, status, approver.CollegeID, note)
	if err != nil {
		switch {
		case errors.Is(err, postingstore.ErrNotFound):
			return nil, apperr.E(apperr.NotFound, "hackathon not found")
		case errors.Is(err, postingstore.ErrNotPending):
			return nil, apperr.E(apperr.InvalidState, "hackathon has already been reviewed")
		}
		return nil, apperr.Wrap(err, "decide posting")
	}

	s.Log.Info("posting reviewed",
		zap.String("posting_id", id.Hex()),
		zap.String("status", string(status)),
		zap.String("approved_by", approver.CollegeID))
	return p, nil
}

// RegisterInput carries a student registration request.
type RegisterInput struct {
	LinkSubmission string
	Notes          string
}

// Register records a student's application to a posting, once.
func (s *Service) Register(ctx context.Context, postingID primitive.ObjectID, student *models.Profile, in RegisterInput) (models.Registration, error) {
	if _, err := s.Postings.GetByID(ctx, postingID); err != nil {
		if errors.Is(err, postingstore.ErrNotFound) {
			return models.Registration{}, apperr.E(apperr.NotFound, "hackathon not found")
		}
		return models.Registration{}, apperr.Wrap(err, "load posting")
	}

	created, err := s.Registrations.Create(ctx, models.Registration{
		HackathonID:      postingID,
		StudentCollegeID: student.CollegeID,
		LinkSubmission:   in.LinkSubmission,
		Notes:            htmlsanitize.Strip(in.Notes),
	})
	if err != nil {
		if errors.Is(err, registrationstore.ErrDuplicateRegistration) {
			return models.Registration{}, apperr.E(apperr.AlreadyRegistered, "already registered for this hackathon")
		}
		return models.Registration{}, apperr.Wrap(err, "create registration")
	}

	s.Log.Info("student registered",
		zap.String("posting_id", postingID.Hex()),
		zap.String("college_id", student.CollegeID))
	return created, nil
}

// ListRegistrations returns every registration for a posting.
func (s *Service) ListRegistrations(ctx context.Context, postingID primitive.ObjectID) ([]models.Registration, error) {
	if _, err := s.Postings.GetByID(ctx, postingID); err != nil {
		if errors.Is(err, postingstore.ErrNotFound) {
			return nil, apperr.E(apperr.NotFound, "hackathon not found")
		}
		return nil, apperr.Wrap(err, "load posting")
	}

	out, err := s.Registrations.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, apperr.Wrap(err, "list registrations")
	}
	return out, nil
}

// Acknowledge records a reviewer decision on a registration. The status
// must be one of the two decision values; decisions are revisable.
func (s *Service) Acknowledge(ctx context.Context, id primitive.ObjectID, reviewer *models.Profile, statusValue, notes string) (*models.Registration, error) {
	status, ok := models.ParseRegistrationDecision(statusValue)
	if !ok {
		return nil, apperr.E(apperr.InvalidArgument, `status must be "acknowledged" or "rejected"`)
	}

	reg, err := s.Registrations.Acknowledge(ctx, id, status, reviewer.CollegeID, htmlsanitize.Strip(notes))
	if err != nil {
		if errors.Is(err, registrationstore.ErrNotFound) {
			return nil, apperr.E(apperr.NotFound, "registration not found")
		}
		return nil, apperr.Wrap(err, "acknowledge registration")
	}
	return reg, nil
}

// DepartmentStat is one department's slice of the stats report.
type DepartmentStat struct {
	TotalStudents int64 `json:"total_students"`
	Registered    int64 `json:"registered"`
	Remaining     int64 `json:"remaining"`
}

// Stats is the per-posting registration report.
type Stats struct {
	HackathonID        string                    `json:"hackathon_id"`
	TotalRegistrations int64                     `json:"total_registrations"`
	Departments        map[string]DepartmentStat `json:"departments"`
}

// GetStats reports, per department with at least one student, how many
// students registered for the posting and how many have not. Remaining
// floors at zero so stale registrations can never show a negative gap.
func (s *Service) GetStats(ctx context.Context, postingID primitive.ObjectID) (Stats, error) {
	if _, err := s.Postings.GetByID(ctx, postingID); err != nil {
		if errors.Is(err, postingstore.ErrNotFound) {
			return Stats{}, apperr.E(apperr.NotFound, "hackathon not found")
		}
		return Stats{}, apperr.Wrap(err, "load posting")
	}

	totals, err := s.Departments.StudentCountsByDepartment(ctx)
	if err != nil {
		return Stats{}, apperr.Wrap(err, "student counts")
	}

	regs, err := s.Registrations.ListByPosting(ctx, postingID)
	if err != nil {
		return Stats{}, apperr.Wrap(err, "list registrations")
	}

	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.StudentCollegeID)
	}
	depts, err := s.Departments.StudentDepartments(ctx, ids)
	if err != nil {
		return Stats{}, apperr.Wrap(err, "student departments")
	}

	registered := make(map[string]int64, len(totals))
	for _, r := range regs {
		if d, ok := depts[r.StudentCollegeID]; ok {
			registered[d]++
		}
	}

	out := Stats{
		HackathonID:        postingID.Hex(),
		TotalRegistrations: int64(len(regs)),
		Departments:        make(map[string]DepartmentStat, len(totals)),
	}
	for dept, total := range totals {
		reg := registered[dept]
		remaining := total - reg
		if remaining < 0 {
			remaining = 0
		}
		out.Departments[dept] = DepartmentStat{
			TotalStudents: total,
			Registered:    reg,
			Remaining:     remaining,
		}
	}
	return out, nil
}
