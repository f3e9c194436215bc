// Package authz declares the fixed role unions used by this system's
// operations. There is no dynamic policy configuration: every protected
// route is gated by one of these sets.
package authz

import (
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
)

// AdminOnly gates user management and the admin dashboard.
var AdminOnly = []models.Role{models.RoleAdmin}

// AdminOrPrincipal gates teacher and HOD pre-registration.
var AdminOrPrincipal = []models.Role{models.RoleAdmin, models.RolePrincipal}

// Approvers gates posting approval and rejection.
var Approvers = []models.Role{models.RoleAdmin, models.RolePrincipal, models.RoleHOD}

// Staff gates posting creation/deletion, registration review, and stats.
var Staff = []models.Role{models.RoleAdmin, models.RolePrincipal, models.RoleHOD, models.RoleTeacher}

// StudentsOnly gates hackathon registration.
var StudentsOnly = []models.Role{models.RoleStudent}

// Allowed reports whether role is in the given set.
func Allowed(role models.Role, set []models.Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
