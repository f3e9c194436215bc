// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationStatus is the review state of a student registration.
type RegistrationStatus string

const (
	RegistrationApplied      RegistrationStatus = "applied"
	RegistrationAcknowledged RegistrationStatus = "acknowledged"
	RegistrationRejected     RegistrationStatus = "rejected"
)

// ParseRegistrationDecision validates a reviewer-supplied status value.
// Only the two decision states are accepted; "applied" cannot be set by
// a reviewer.
func ParseRegistrationDecision(s string) (RegistrationStatus, bool) {
	switch RegistrationStatus(s) {
	case RegistrationAcknowledged, RegistrationRejected:
		return RegistrationStatus(s), true
	}
	return "", false
}

// Registration is one student's application to a posting. At most one
// registration exists per (posting, student) pair.
type Registration struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HackathonID      primitive.ObjectID `bson:"hackathon_id" json:"hackathon_id"`
	StudentCollegeID string             `bson:"student_college_id" json:"student_college_id"`
	LinkSubmission   string             `bson:"link_submission,omitempty" json:"link_submission,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`

	Status         RegistrationStatus `bson:"status" json:"status"`
	AcknowledgedBy string             `bson:"acknowledged_by,omitempty" json:"acknowledged_by,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
