// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: ports, TLS, log level
// and CORS live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret string        // Secret for signing access tokens (must be strong in production)
	JWTIssuer string        // Issuer claim stamped into minted tokens
	TokenTTL  time.Duration // Access token lifetime

	// Bootstrap admin: ensures at least one admin profile exists so the
	// directory is never unmanageable on a fresh database.
	BootstrapAdminCollegeID string
	BootstrapAdminName      string
	BootstrapAdminEmail     string
}
