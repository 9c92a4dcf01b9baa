// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is where
// everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token auth configuration
	JWTSecret  string        // HMAC signing secret for bearer tokens (must be strong in production)
	JWTExpiry  time.Duration // Token lifetime (e.g., 24h)
	BcryptCost int           // bcrypt work factor for password hashing

	// External services
	GithubAPIURL    string // GitHub REST API base URL
	GithubToken     string // Optional GitHub token for a higher rate limit
	GravatarBaseURL string // Gravatar avatar URL prefix
}
