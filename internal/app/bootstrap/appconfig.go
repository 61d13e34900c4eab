// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where you put everything specific to YOUR application:
//   - Database connection strings (MongoDB URI, etc.)
//   - External service API keys and endpoints
//   - Feature flags and application modes
//   - Default values for your domain
//
// Add fields here as the application grows. The struct is passed to
// most lifecycle hooks, so any configuration needed during startup,
// request handling, or shutdown should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: vitconnect-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Media storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads/media")
	StorageLocalURL  string // URL prefix for serving uploaded media (e.g., "/files/media")

	// Base URL for OAuth callbacks (e.g., "http://localhost:3000")
	BaseURL string

	// Google OAuth configuration
	GoogleClientID     string // Google OAuth2 client ID
	GoogleClientSecret string // Google OAuth2 client secret
}
