// internal/app/features/authn/handler.go
package authn

import (
	"context"
	"net/http"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/httpx"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/ratelimit"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/timeouts"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.uber.org/zap"
)

// Handler exposes the authentication endpoints as JSON.
type Handler struct {
	Svc     *Service
	Limiter *ratelimit.CredentialLimiter // optional; nil disables throttling
	Log     *zap.Logger
}

func NewHandler(svc *Service, limiter *ratelimit.CredentialLimiter, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Limiter: limiter, Log: logger}
}

// throttle enforces the credential limiter when one is configured.
func (h *Handler) throttle(w http.ResponseWriter, r *http.Request, email string) bool {
	if h.Limiter == nil {
		return true
	}
	ok, reason := h.Limiter.Check(r, email)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.RateLimited, reason), h.Log)
	}
	return ok
}

type activateRequest struct {
	CollegeID string `json:"college_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type activateResponse struct {
	Message string          `json:"message"`
	User    *models.Profile `json:"user"`
}

// HandleActivate is POST /auth/activate.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	if !h.throttle(w, r, req.Email) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Svc.Activate(ctx, ActivateInput{
		CollegeID: req.CollegeID,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	httpx.Respond(w, http.StatusOK, activateResponse{
		Message: "account activated successfully; you can now log in",
		User:    p,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        *models.Profile `json:"user"`
}

// HandleLogin is POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	if !h.throttle(w, r, req.Email) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ForgiveEmail(req.Email)
	}

	httpx.Respond(w, http.StatusOK, loginResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		User:        res.Profile,
	})
}

type eligibilityRequest struct {
	CollegeID string `json:"college_id"`
	Email     string `json:"email"`
}

// HandleCheckEligibility is POST /auth/check-activation-eligibility.
func (h *Handler) HandleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Svc.CheckEligibility(ctx, req.CollegeID, req.Email)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, e)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HandleChangePassword is POST /auth/change-password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}

	var req changePasswordRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	if !h.throttle(w, r, p.Email) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.ChangePassword(ctx, p, req.OldPassword, req.NewPassword); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// HandleMe is GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

// HandleLogout is POST /auth/logout. Tokens are stateless, so logout is
// a client-side discard; the endpoint exists so clients have a uniform
// place to call.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, map[string]string{"message": "logged out; discard the access token"})
}
