// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/features/admin"
	authnfeature "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/features/authn"
	hackathonsfeature "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/features/hackathons"
	healthfeature "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/features/health"
	postingstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/postings"
	profilestore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/profiles"
	registrationstore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/registrations"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/identity"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/metrics"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app. WAFFLE calls it after configuration, DB connection,
// schema setup and Startup have completed.
//
// The stores and the identity provider are constructed once here and
// injected into the feature handlers; no package-level state exists.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	profiles := profilestore.New(deps.MongoDatabase)
	postings := postingstore.New(deps.MongoDatabase)
	registrations := registrationstore.New(deps.MongoDatabase)

	provider := identity.NewMongoProvider(deps.MongoDatabase, identity.TokenConfig{
		Secret: appCfg.JWTSecret,
		Issuer: appCfg.JWTIssuer,
		TTL:    appCfg.TokenTTL,
	}, logger)

	authMgr := auth.NewManager(provider, profiles, logger)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	authnSvc := authnfeature.NewService(profiles, provider, logger)
	authnHandler := authnfeature.NewHandler(authnSvc, ratelimit.NewCredentialLimiter(), logger)
	r.Mount("/auth", authnfeature.Routes(authnHandler, authMgr))

	adminSvc := adminfeature.NewService(profiles, logger)
	adminHandler := adminfeature.NewHandler(adminSvc, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, authMgr))

	hackSvc := hackathonsfeature.NewService(postings, registrations, profiles, logger)
	hackHandler := hackathonsfeature.NewHandler(hackSvc, logger)
	r.Mount("/hackathons", hackathonsfeature.Routes(hackHandler, authMgr))

	return r, nil
}
