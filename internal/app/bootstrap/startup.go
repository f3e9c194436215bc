// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	profilestore "github.com/BarathG2005/hackthon-mangament-plateform/internal/app/store/profiles"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/metrics"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/timeouts"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n))
	}
	metrics.Register()

	if appCfg.BootstrapAdminCollegeID != "" {
		if err := ensureBootstrapAdmin(ctx, appCfg, deps, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin guarantees the configured admin profile exists.
// An existing profile with the same college ID or email is left alone;
// the person still activates it through the normal flow.
func ensureBootstrapAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	store := profilestore.New(deps.MongoDatabase)

	_, err := store.Create(ctx, models.Profile{
		CollegeID: appCfg.BootstrapAdminCollegeID,
		Name:      appCfg.BootstrapAdminName,
		Email:     appCfg.BootstrapAdminEmail,
		Role:      models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, profilestore.ErrDuplicateCollegeID) || errors.Is(err, profilestore.ErrDuplicateEmail) {
			logger.Info("bootstrap admin already present",
				zap.String("college_id", appCfg.BootstrapAdminCollegeID))
			return nil
		}
		logger.Error("bootstrap admin creation failed", zap.Error(err))
		return err
	}

	logger.Info("bootstrap admin created",
		zap.String("college_id", appCfg.BootstrapAdminCollegeID))
	return nil
}
