// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"errors"
	"net/http"

	dashboardfeature "github.com/dalemusser/revenuedash/internal/app/features/dashboard"
	_ "github.com/dalemusser/revenuedash/internal/app/features/dashboard/views"
	dashboardapifeature "github.com/dalemusser/revenuedash/internal/app/features/dashboardapi"
	errorsfeature "github.com/dalemusser/revenuedash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/revenuedash/internal/app/features/health"
	homefeature "github.com/dalemusser/revenuedash/internal/app/features/home"
	_ "github.com/dalemusser/revenuedash/internal/app/features/home/views"
	loginfeature "github.com/dalemusser/revenuedash/internal/app/features/login"
	_ "github.com/dalemusser/revenuedash/internal/app/features/login/views"
	logoutfeature "github.com/dalemusser/revenuedash/internal/app/features/logout"
	userinfofeature "github.com/dalemusser/revenuedash/internal/app/features/userinfo"
	userstore "github.com/dalemusser/revenuedash/internal/app/store/users"
	"github.com/dalemusser/revenuedash/internal/app/system/apiclient"
	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"github.com/dalemusser/revenuedash/internal/app/system/limits"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It initializes the template engine, applies
// session and CSRF middleware, and mounts the feature routers: home, login,
// logout, the revenue dashboard and its JSON API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	rt := deps.Runtime
	if rt == nil || rt.Mounts == nil {
		return nil, errors.New("build handler: startup did not run")
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser reloads the user on each request so disabled accounts
	// lose access immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()
	useRequestGuards(r, appCfg, secure)

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, rt.Mounts, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(userstore.New(deps.MongoDatabase), sessionMgr, logger)
	loginHandler.Limiter = rt.Logins
	loginHandler.Audit = rt.Audit
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	logoutHandler.Audit = rt.Audit
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Revenue dashboard
	dashboardHandler := newDashboardHandler(appCfg, rt, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	apiHandler := dashboardapifeature.NewHandler(rt.Properties, rt.Revenue, logger)
	r.Mount("/api/v1/dashboard", dashboardapifeature.Routes(apiHandler))

	return r, nil
}

// newDashboardHandler picks where dashboard mounts read their property list.
func newDashboardHandler(appCfg AppConfig, rt *Runtime, logger *zap.Logger) *dashboardfeature.Handler {
	switch appCfg.PropertySource {
	case SourceStatic:
		return dashboardfeature.NewStaticHandler(rt.Mounts, rt.Catalogue, rt.Revenue, logger)

	case SourceAPI:
		client := apiclient.New(appCfg.APIBaseURL, nil, logger)
		source := func(r *http.Request, _ string) propertypicker.Source {
			// The API scopes the list by the session the cookies carry.
			return client.Source(r.Cookies())
		}
		return dashboardfeature.NewHandler(rt.Mounts, source, rt.Revenue, logger)

	default:
		source := func(_ *http.Request, tenantID string) propertypicker.Source {
			return rt.Properties.Source(tenantID)
		}
		return dashboardfeature.NewHandler(rt.Mounts, source, rt.Revenue, logger)
	}
}

// csrfKey derives the 32-byte CSRF authentication key.
func csrfKey(appCfg AppConfig) []byte {
	material := appCfg.CSRFKey
	if material == "" {
		material = "revenuedash/csrf/" + appCfg.SessionKey
	}
	sum := sha256.Sum256([]byte(material))
	return sum[:]
}

// formCaps are the body caps for state-changing routes.
var formCaps = []limits.Rule{
	{Prefix: "/login", Max: limits.MaxLoginFormSize},
	{Prefix: "/logout", Max: limits.MaxDashboardFormSize},
	{Prefix: "/dashboard/", Max: limits.MaxDashboardFormSize},
}

// useRequestGuards installs body caps and CSRF protection. The caps come
// first: csrf.Protect parses the form to find its token.
func useRequestGuards(r chi.Router, appCfg AppConfig, secure bool) {
	r.Use(limits.Forms(limits.MaxFormSize, formCaps...))
	if !secure {
		r.Use(plaintextHTTP)
	}
	r.Use(csrf.Protect(csrfKey(appCfg), csrf.Secure(secure), csrf.Path("/")))
}

// plaintextHTTP marks requests as plain HTTP so the CSRF check skips its
// TLS-only referer validation in development.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
