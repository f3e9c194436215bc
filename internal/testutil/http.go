package testutil

import (
	"context"
	"net/http"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithProfile injects an authenticated profile into the request context,
// bypassing the bearer-token middleware.
func WithProfile(r *http.Request, p *models.Profile) *http.Request {
	return auth.WithProfile(r, p)
}

// ProfileFor builds an in-memory activated profile with the given role,
// for handler tests that only need role and identity fields.
func ProfileFor(role models.Role, collegeID string) *models.Profile {
	authID := primitive.NewObjectID().Hex()
	return &models.Profile{
		ID:         primitive.NewObjectID(),
		CollegeID:  collegeID,
		Name:       "Test " + string(role),
		Email:      collegeID + "@college.test",
		Role:       role,
		AuthUserID: &authID,
		IsActive:   true,
	}
}
