// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to Verdant.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session token configuration
	JWTSecret string        // signing key for bearer tokens (must be strong in production)
	TokenTTL  time.Duration // token validity window (default 168h)

	// Base URL used to build public share links
	BaseURL string

	// Image upload storage
	UploadDir       string // filesystem directory for stored images
	UploadURLPrefix string // URL prefix the images are served under

	// SuperAdmin bootstrap: seeded on startup when no superAdmin exists
	SuperAdminEmail    string
	SuperAdminPassword string
}
