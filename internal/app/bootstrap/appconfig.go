// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Property list sources for dashboard mounts.
const (
	SourceStore  = "store"  // tenant list read from the property store
	SourceStatic = "static" // fixed catalogue, no fetch
	SourceAPI    = "api"    // tenant list fetched from the dashboard API
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: revenuedash-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session cookie lifetime

	// Timeouts for store calls; zero keeps the package default.
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration

	// CSRFKey seeds the CSRF token key; blank derives it from SessionKey.
	CSRFKey string

	// AuditLogAuth controls sign-in auditing: all | db | log | off
	AuditLogAuth string

	// Dashboard
	PropertySource     string        // store | static | api
	APIBaseURL         string        // base URL of the dashboard API when PropertySource is api
	CataloguePath      string        // YAML catalogue; blank uses the built-in one
	MountMaxAge        time.Duration // untouched mounts older than this are swept
	MountSweepInterval time.Duration // how often the sweeper runs

	// Demo data
	SeedDemo     bool   // upsert catalogue tenant properties on startup
	DemoPassword string // when set, one demo user per catalogue tenant is created with this password
}
