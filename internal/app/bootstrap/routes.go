// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	aboutfeature "github.com/brightland/schoolsite/internal/app/features/about"
	academicsfeature "github.com/brightland/schoolsite/internal/app/features/academics"
	activitiesfeature "github.com/brightland/schoolsite/internal/app/features/activities"
	admissionfeature "github.com/brightland/schoolsite/internal/app/features/admission"
	dashboardfeature "github.com/brightland/schoolsite/internal/app/features/dashboard"
	disclosurefeature "github.com/brightland/schoolsite/internal/app/features/disclosure"
	enquiryfeature "github.com/brightland/schoolsite/internal/app/features/enquiry"
	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	facilitiesfeature "github.com/brightland/schoolsite/internal/app/features/facilities"
	feesfeature "github.com/brightland/schoolsite/internal/app/features/fees"
	galleryfeature "github.com/brightland/schoolsite/internal/app/features/gallery"
	healthfeature "github.com/brightland/schoolsite/internal/app/features/health"
	herofeature "github.com/brightland/schoolsite/internal/app/features/hero"
	highlightsfeature "github.com/brightland/schoolsite/internal/app/features/highlights"
	homefeature "github.com/brightland/schoolsite/internal/app/features/home"
	loginfeature "github.com/brightland/schoolsite/internal/app/features/login"
	logoutfeature "github.com/brightland/schoolsite/internal/app/features/logout"
	newsfeature "github.com/brightland/schoolsite/internal/app/features/news"
	settingsfeature "github.com/brightland/schoolsite/internal/app/features/settings"
	tcfeature "github.com/brightland/schoolsite/internal/app/features/tc"
	appresources "github.com/brightland/schoolsite/internal/app/resources"
	"github.com/brightland/schoolsite/internal/app/store/ratelimit"
	userstore "github.com/brightland/schoolsite/internal/app/store/users"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Role changes and disabled accounts take effect
	// immediately instead of at session expiry.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	// Public pages simply have no session, which is fine.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection for every form, public contact and TC lookup included.
	// Cookie name is "schoolsite_csrf" to avoid collisions with other
	// services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("schoolsite_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────
	// Infrastructure routes
	// ─────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded files (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Public site
	// ─────────────────────────────────────────────────────────────────────────

	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	academicsHandler := academicsfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/academics", academicsfeature.Routes(academicsHandler))

	activitiesHandler := activitiesfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/activities", activitiesfeature.Routes(activitiesHandler))

	admissionHandler := admissionfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/admission", admissionfeature.Routes(admissionHandler))

	facilitiesHandler := facilitiesfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/facilities", facilitiesfeature.Routes(facilitiesHandler))

	galleryHandler := galleryfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/gallery", galleryfeature.Routes(galleryHandler))

	newsHandler := newsfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/news", newsfeature.Routes(newsHandler))

	feesHandler := feesfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/fees", feesfeature.Routes(feesHandler))

	disclosureHandler := disclosurefeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/disclosure", disclosurefeature.Routes(disclosureHandler))

	tcHandler := tcfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/tc", tcfeature.Routes(tcHandler))

	enquiryHandler := enquiryfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/contact", enquiryfeature.Routes(enquiryHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// ─────────────────────────────────────────────────────────────────────────
	// Admin console
	// ─────────────────────────────────────────────────────────────────────────

	// Rate limiting for login attempts (nil if disabled)
	var rateLimitStore *ratelimit.Store
	if appCfg.RateLimitEnabled {
		rateLimitStore = ratelimit.New(
			deps.MongoDatabase,
			appCfg.RateLimitLoginAttempts,
			appCfg.RateLimitLoginWindow,
			appCfg.RateLimitLoginLockout,
		)
	}

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, rateLimitStore, logger)
	r.Mount("/admin/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/admin/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/admin", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	settingsHandler := settingsfeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Route("/admin/settings", func(sr chi.Router) {
		sr.Use(sessionMgr.RequireRole("admin"))
		settingsHandler.MountRoutes(sr)
	})

	// Content page editors
	r.Mount("/admin/about", aboutfeature.EditRoutes(aboutHandler, sessionMgr))
	r.Mount("/admin/academics", academicsfeature.EditRoutes(academicsHandler, sessionMgr))
	r.Mount("/admin/activities", activitiesfeature.EditRoutes(activitiesHandler, sessionMgr))
	r.Mount("/admin/admission", admissionfeature.EditRoutes(admissionHandler, sessionMgr))
	r.Mount("/admin/facilities", facilitiesfeature.EditRoutes(facilitiesHandler, sessionMgr))

	// List managers
	heroHandler := herofeature.NewHandler(deps.MongoDatabase, deps.FileStorage, errLog, logger)
	r.Mount("/admin/hero", herofeature.EditRoutes(heroHandler, sessionMgr))

	highlightsHandler := highlightsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/admin/highlights", highlightsfeature.EditRoutes(highlightsHandler, sessionMgr))

	r.Mount("/admin/gallery", galleryfeature.EditRoutes(galleryHandler, sessionMgr))
	r.Mount("/admin/news", newsfeature.EditRoutes(newsHandler, sessionMgr))
	r.Mount("/admin/fees", feesfeature.EditRoutes(feesHandler, sessionMgr))
	r.Mount("/admin/disclosure", disclosurefeature.EditRoutes(disclosureHandler, sessionMgr))
	r.Mount("/admin/tc", tcfeature.EditRoutes(tcHandler, sessionMgr))
	r.Mount("/admin/enquiries", enquiryfeature.EditRoutes(enquiryHandler, sessionMgr))

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
