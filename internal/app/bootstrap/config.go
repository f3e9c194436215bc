// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: HACKMGMT_MONGO_URI, HACKMGMT_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hackmgmt", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "jwt_secret", Default: "", Desc: "Access token signing secret (required)"},
	{Name: "jwt_issuer", Default: "hackmgmt", Desc: "Issuer claim for minted tokens"},
	{Name: "token_ttl", Default: "24h", Desc: "Access token lifetime (e.g., 24h, 8h, 30m)"},

	// Bootstrap admin
	{Name: "bootstrap_admin_college_id", Default: "", Desc: "College ID of the bootstrap admin profile (created on startup if absent)"},
	{Name: "bootstrap_admin_name", Default: "Administrator", Desc: "Display name for the bootstrap admin profile"},
	{Name: "bootstrap_admin_email", Default: "", Desc: "Email for the bootstrap admin profile"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app. config.LoadWithAppConfig merges .env files, config
// files, environment variables (WAFFLE_* for core, HACKMGMT_* for app)
// and command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HACKMGMT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		TokenTTL:  appValues.Duration("token_ttl", 24*time.Hour),

		BootstrapAdminCollegeID: appValues.String("bootstrap_admin_college_id"),
		BootstrapAdminName:      appValues.String("bootstrap_admin_name"),
		BootstrapAdminEmail:     appValues.String("bootstrap_admin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI and token secret are validated here so bad deployments
// fail fast instead of at the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (set HACKMGMT_JWT_SECRET)")
	}
	if coreCfg.Env == "prod" && len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 bytes in production")
	}

	if appCfg.BootstrapAdminCollegeID != "" && appCfg.BootstrapAdminEmail == "" {
		return fmt.Errorf("bootstrap_admin_email is required when bootstrap_admin_college_id is set")
	}

	return nil
}
