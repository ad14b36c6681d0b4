// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/auditlog"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the revenue dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, property_source, etc.
//   - Environment variables: REVENUEDASH_MONGO_URI, REVENUEDASH_PROPERTY_SOURCE, etc.
//   - Command-line flags: --mongo_uri, --property_source, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "revenuedash", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "revenuedash-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 8h, 24h)"},
	{Name: "timeout_ping", Default: "2s", Desc: "Timeout for MongoDB pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for connects and aggregations"},
	{Name: "csrf_key", Default: "", Desc: "CSRF key material (blank derives from session_key)"},
	{Name: "audit_log_auth", Default: "all", Desc: "Sign-in audit events: 'all' (MongoDB + log), 'db', 'log', or 'off'"},

	// Dashboard
	{Name: "property_source", Default: SourceStore, Desc: "Dashboard property list source: 'store', 'static', or 'api'"},
	{Name: "api_base_url", Default: "", Desc: "Dashboard API base URL (required when property_source is 'api')"},
	{Name: "catalogue_path", Default: "", Desc: "YAML property catalogue (blank uses the built-in catalogue)"},
	{Name: "mount_max_age", Default: "30m", Desc: "Dashboard mounts untouched this long are torn down"},
	{Name: "mount_sweep_interval", Default: "1m", Desc: "How often stale dashboard mounts are swept"},

	// Demo data
	{Name: "seed_demo", Default: false, Desc: "Seed catalogue tenant properties into MongoDB on startup"},
	{Name: "demo_password", Default: "", Desc: "Create a demo user per catalogue tenant with this password"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, REVENUEDASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "REVENUEDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),
		TimeoutPing:      appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:     appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium:    appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		CSRFKey:          appValues.String("csrf_key"),
		AuditLogAuth:     strings.ToLower(strings.TrimSpace(appValues.String("audit_log_auth"))),

		PropertySource:     strings.ToLower(strings.TrimSpace(appValues.String("property_source"))),
		APIBaseURL:         strings.TrimSpace(appValues.String("api_base_url")),
		CataloguePath:      strings.TrimSpace(appValues.String("catalogue_path")),
		MountMaxAge:        appValues.Duration("mount_max_age", 30*time.Minute),
		MountSweepInterval: appValues.Duration("mount_sweep_interval", time.Minute),

		SeedDemo:     appValues.Bool("seed_demo"),
		DemoPassword: appValues.String("demo_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It rejects malformed MongoDB URIs, unknown property sources, and an api
// source without a usable base URL, before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.PropertySource {
	case SourceStore, SourceStatic:
	case SourceAPI:
		if appCfg.APIBaseURL == "" {
			return errors.New("property_source 'api' requires api_base_url")
		}
		u, err := url.Parse(appCfg.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid api_base_url %q", appCfg.APIBaseURL)
		}
	default:
		return fmt.Errorf("unknown property_source %q (want store, static, or api)", appCfg.PropertySource)
	}

	switch appCfg.AuditLogAuth {
	case "", auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		return fmt.Errorf("unknown audit_log_auth %q (want all, db, log, or off)", appCfg.AuditLogAuth)
	}

	if appCfg.TimeoutPing < 0 || appCfg.TimeoutShort < 0 || appCfg.TimeoutMedium < 0 {
		return errors.New("timeout_ping, timeout_short and timeout_medium must not be negative")
	}

	if appCfg.MountMaxAge <= 0 || appCfg.MountSweepInterval <= 0 {
		return errors.New("mount_max_age and mount_sweep_interval must be positive")
	}

	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return errors.New("session_key must be at least 32 characters in production")
	}

	return nil
}
