// internal/app/features/admin/routes.go
package admin

import (
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user directory routes under the base path
// (typically "/admin" from bootstrap).
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.Authenticate)

	// Principals can add teaching staff; everything else is admin-only.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.AdminOrPrincipal...))
		pr.Post("/add-teacher", h.HandleAddTeacher)
		pr.Post("/add-hod", h.HandleAddHOD)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.AdminOnly...))

		pr.Post("/add-user", h.HandleAddUser)
		pr.Post("/add-student", h.HandleAddStudent)
		pr.Post("/add-principal", h.HandleAddPrincipal)

		pr.Get("/users", h.HandleListUsers)
		pr.Get("/users/{collegeID}", h.HandleGetUser)
		pr.Patch("/users/{collegeID}/activate", h.HandleActivateUser)
		pr.Patch("/users/{collegeID}/deactivate", h.HandleDeactivateUser)

		pr.Get("/dashboard/stats", h.HandleDashboard)
	})

	return r
}
