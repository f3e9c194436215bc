// internal/app/features/hackathons/handler.go
package hackathons

import (
	"context"
	"net/http"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/authz"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/httpx"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exposes the hackathon workflow endpoints as JSON.
type Handler struct {
	Svc *Service
	Log *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type postingRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	Domain      string     `json:"domain"`
	Deadline    *time.Time `json:"deadline"`
	IsActive    *bool      `json:"is_active"`
	Source      string     `json:"source"`
	SourceModel string     `json:"source_model"`
}

func (req postingRequest) toInput() CreatePostingInput {
	return CreatePostingInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Domain:      req.Domain,
		Deadline:    req.Deadline,
		IsActive:    req.IsActive,
		Source:      req.Source,
		SourceModel: req.SourceModel,
	}
}

// HandleCreate is POST /hackathons/.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}

	var req postingRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Svc.CreatePosting(ctx, req.toInput(), caller)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusCreated, created)
}

// HandleSuggest is POST /hackathons/suggest, the automated path.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}

	var req postingRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Svc.Suggest(ctx, req.toInput(), caller)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusCreated, created)
}

// HandleList is GET /hackathons/. Staff can pass ?include_inactive=true
// to see pending and rejected postings as well.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if r.URL.Query().Get("include_inactive") == "true" {
		caller, ok := auth.CurrentProfile(r)
		if ok && authz.Allowed(caller.Role, authz.Staff) {
			includeInactive = true
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	postings, err := h.Svc.ListPostings(ctx, includeInactive)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]any{"hackathons": postings, "count": len(postings)})
}

// HandleDelete is DELETE /hackathons/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Svc.DeletePosting(ctx, id); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.NoContent(w)
}

type rejectRequest struct {
	Note string `json:"note"`
}

// HandleApprove is PATCH /hackathons/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Svc.Approve(ctx, id, caller)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

// HandleReject is PATCH /hackathons/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	var req rejectRequest
	if r.ContentLength > 0 {
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err, h.Log)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Svc.Reject(ctx, id, caller, req.Note)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

type registerRequest struct {
	LinkSubmission string `json:"link_submission"`
	Notes          string `json:"notes"`
}

// HandleRegister is POST /hackathons/{id}/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	var req registerRequest
	if r.ContentLength > 0 {
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err, h.Log)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reg, err := h.Svc.Register(ctx, id, caller, RegisterInput{
		LinkSubmission: req.LinkSubmission,
		Notes:          req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, reg)
}

// HandleListRegistrations is GET /hackathons/{id}/registrations.
func (h *Handler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Svc.ListRegistrations(ctx, id)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]any{"registrations": regs, "count": len(regs)})
}

type acknowledgeRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// HandleAcknowledge is PATCH /hackathons/registrations/{id}/acknowledge.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentProfile(r)
	if !ok {
		httpx.Error(w, r, apperr.E(apperr.Unauthorized, "authentication required"), h.Log)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	var req acknowledgeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reg, err := h.Svc.Acknowledge(ctx, id, caller, req.Status, req.Notes)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, reg)
}

// HandleStats is GET /hackathons/{id}/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	id, err := postingID(r)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stats, err := h.Svc.GetStats(ctx, id)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, stats)
}

func postingID(r *http.Request) (primitive.ObjectID, error) {
	return objectIDParam(r, "id")
}

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.InvalidArgument, "invalid id")
	}
	return id, nil
}
