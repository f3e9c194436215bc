// Package auth implements the bearer-token role gate.
//
// Resolution order for any protected operation:
//  1. verify the Authorization bearer token with the identity provider
//     (401 on failure),
//  2. resolve the bound college profile for the token's account
//     (404 when the account is unlinked, an inconsistent state),
//  3. reject deactivated profiles (403),
//  4. reject roles outside the operation's allowed set (403).
//
// Steps 1-3 live in Manager.Authenticate; step 4 in RequireRole. The
// resolved profile rides in the request context for handlers.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/httpx"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/identity"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/metrics"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/timeouts"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.uber.org/zap"
)

// ProfileSource resolves the profile bound to an auth account.
// A nil profile with nil error means no profile is linked.
type ProfileSource interface {
	FindByAuthUserID(ctx context.Context, authUserID string) (*models.Profile, error)
}

type ctxKey struct{}

// Manager authenticates requests and loads the caller's profile.
type Manager struct {
	Provider identity.Provider
	Profiles ProfileSource
	Log      *zap.Logger
}

// NewManager constructs the auth manager shared by all protected routes.
func NewManager(provider identity.Provider, profiles ProfileSource, logger *zap.Logger) *Manager {
	return &Manager{Provider: provider, Profiles: profiles, Log: logger}
}

// CurrentProfile returns the authenticated caller's profile, if any.
func CurrentProfile(r *http.Request) (*models.Profile, bool) {
	p, ok := r.Context().Value(ctxKey{}).(*models.Profile)
	return p, ok
}

// WithProfile injects a profile into the request context. Exported for
// handler tests that bypass the middleware.
func WithProfile(r *http.Request, p *models.Profile) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, p))
}

// Authenticate is the bearer middleware: it verifies the token, loads
// the bound profile, rejects deactivated accounts, and stores the
// profile in the request context.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authorization header missing"), m.Log)
			return
		}

		// The lookup deadline is scoped to the middleware; the handler
		// sets its own.
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		acct, err := m.Provider.VerifyToken(ctx, token)
		if err != nil {
			metrics.AuthFailures.Inc()
			httpx.Error(w, r, apperr.E(apperr.Unauthorized, "invalid token"), m.Log)
			return
		}

		profile, err := m.Profiles.FindByAuthUserID(ctx, acct.ID)
		if err != nil {
			httpx.Error(w, r, apperr.Wrap(err, "resolving profile"), m.Log)
			return
		}
		if profile == nil {
			httpx.Error(w, r, apperr.E(apperr.NotFound, "user profile not found"), m.Log)
			return
		}
		if !profile.IsActive {
			httpx.Error(w, r, apperr.E(apperr.Forbidden, "account is deactivated"), m.Log)
			return
		}

		next.ServeHTTP(w, WithProfile(r, profile))
	})
}

// RequireRole gates a route on a fixed role set. It assumes
// Authenticate already ran; an absent profile fails closed with 401.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := CurrentProfile(r)
			if !ok {
				httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), nil)
				return
			}
			if _, has := set[profile.Role]; !has {
				httpx.Error(w, r, apperr.E(apperr.Forbidden, "insufficient role for this operation"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}
