// internal/domain/models/posting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalStatus is the lifecycle state of a hackathon posting.
// Transitions are one-shot: pending may move to approved or rejected,
// and neither terminal state ever moves again.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// PostingSource records how a posting entered the system.
type PostingSource string

const (
	// SourceManual postings are created by staff and go live immediately.
	SourceManual PostingSource = "manual"
	// SourceAI postings come from the automated suggestion path and
	// stay pending and inactive until a reviewer decides.
	SourceAI PostingSource = "ai"
)

// Posting is a hackathon announcement.
type Posting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped

	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Link        string             `bson:"link" json:"link"`
	Domain      string             `bson:"domain,omitempty" json:"domain,omitempty"`
	Deadline    *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`

	ApprovalStatus ApprovalStatus `bson:"approval_status" json:"approval_status"`
	ApprovedBy     string         `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ReviewNote     string         `bson:"review_note,omitempty" json:"review_note,omitempty"`

	Source      PostingSource `bson:"source" json:"source"`
	SourceModel string        `bson:"source_model,omitempty" json:"source_model,omitempty"` // only meaningful when Source == SourceAI

	CreatedByCollegeID string     `bson:"created_by_college_id,omitempty" json:"created_by_college_id,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt          *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
