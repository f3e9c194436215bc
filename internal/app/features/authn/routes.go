// internal/app/features/authn/routes.go
package authn

import (
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints under the base path (typically
// "/auth" from bootstrap).
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Public: activation and login happen before a token exists.
	r.Post("/activate", h.HandleActivate)
	r.Post("/login", h.HandleLogin)
	r.Post("/check-activation-eligibility", h.HandleCheckEligibility)

	// Token-bearing routes.
	r.Group(func(pr chi.Router) {
		pr.Use(am.Authenticate)
		pr.Get("/me", h.HandleMe)
		pr.Post("/logout", h.HandleLogout)
		pr.Post("/change-password", h.HandleChangePassword)
	})

	return r
}
