// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of roles a college profile can hold.
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePrincipal Role = "principal"
	RoleHOD       Role = "hod"
	RoleTeacher   Role = "teacher"
	RoleStudent   Role = "student"
)

// ParseRole maps a wire string to a Role. The second return is false
// for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RolePrincipal, RoleHOD, RoleTeacher, RoleStudent:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Profile represents one person affiliated with the college.
//
// A profile is pre-registered by an admin without credentials. During
// account activation it is linked to an auth account exactly once via
// AuthUserID; that link never reverses. Admins may toggle IsActive any
// number of times. Profiles are never deleted.
type Profile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CollegeID  string             `bson:"college_id" json:"college_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"` // lowercase, trimmed
	Role       Role               `bson:"role" json:"role"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	AuthUserID *string            `bson:"auth_user_id,omitempty" json:"auth_user_id,omitempty"`
	IsActive   bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Activated reports whether the profile has been bound to an auth account.
func (p *Profile) Activated() bool {
	return p.AuthUserID != nil && *p.AuthUserID != ""
}
