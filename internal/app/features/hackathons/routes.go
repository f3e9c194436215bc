// internal/app/features/hackathons/routes.go
package hackathons

import (
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the hackathon workflow routes under the base path
// (typically "/hackathons" from bootstrap).
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.Authenticate)

	// Any signed-in role can browse the approved feed.
	r.Get("/", h.HandleList)

	// Staff manage postings and review registrations.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.Staff...))
		pr.Post("/", h.HandleCreate)
		pr.Post("/suggest", h.HandleSuggest)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/registrations", h.HandleListRegistrations)
		pr.Patch("/registrations/{id}/acknowledge", h.HandleAcknowledge)
		pr.Get("/{id}/stats", h.HandleStats)
	})

	// Approval decisions are held above the teacher level.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.Approvers...))
		pr.Patch("/{id}/approve", h.HandleApprove)
		pr.Patch("/{id}/reject", h.HandleReject)
	})

	// Students apply to postings.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.StudentsOnly...))
		pr.Post("/{id}/register", h.HandleRegister)
	})

	return r
}
