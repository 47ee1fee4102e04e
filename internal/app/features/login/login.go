// internal/app/features/login/login.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"fmt"
	"net/http"
	"time"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	"github.com/brightland/schoolsite/internal/app/store/ratelimit"
	userstore "github.com/brightland/schoolsite/internal/app/store/users"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/authutil"
	"github.com/brightland/schoolsite/internal/app/system/network"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides admin login handlers.
type Handler struct {
	userStore      *userstore.Store
	rateLimitStore *ratelimit.Store // nil if rate limiting disabled
	sessionMgr     *auth.SessionManager
	errLog         *errorsfeature.ErrorLogger
	logger         *zap.Logger
}

// NewHandler creates a new login Handler.
// rateLimitStore can be nil to disable rate limiting.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	rateLimitStore *ratelimit.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:      userstore.New(db),
		rateLimitStore: rateLimitStore,
		sessionMgr:     sessionMgr,
		errLog:         errLog,
		logger:         logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	Error     string
	LoginID   string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)

	return r
}

// showLogin displays the admin login form. A signed-in admin is sent
// straight to the dashboard.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok && user.Role == "admin" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	errorCode := r.URL.Query().Get("error")
	errorMsg := ""
	switch errorCode {
	case "account_disabled":
		errorMsg = "Account is disabled."
	case "service_unavailable":
		errorMsg = "Service temporarily unavailable. Please try again."
	case "":
		// No error
	default:
		errorMsg = errorCode
	}

	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		ReturnURL: query.Get(r, "return"),
		Error:     errorMsg,
	}
	vm.Title = "Admin Login"

	templates.Render(w, r, "login/index", vm)
}

// handleLogin checks credentials and creates the session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	loginID := r.FormValue("login_id")
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if loginID == "" || password == "" {
		h.renderError(w, r, "Please enter your Login ID and password.", loginID, returnURL)
		return
	}

	// Check rate limit before touching the password
	if h.rateLimitStore != nil {
		allowed, _, lockedUntil := h.rateLimitStore.CheckAllowed(r.Context(), loginID)
		if !allowed {
			h.logger.Warn("login rate limited",
				zap.String("login_id", loginID),
				zap.String("client_ip", network.GetClientIP(r)))
			h.renderError(w, r, lockoutMessage(lockedUntil), loginID, returnURL)
			return
		}
	}

	user, err := h.userStore.GetByLoginID(r.Context(), loginID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Record failure so unknown IDs can't be probed without limit
			if h.rateLimitStore != nil {
				h.rateLimitStore.RecordFailure(r.Context(), loginID)
			}
			h.renderError(w, r, "Invalid credentials", loginID, returnURL)
			return
		}
		h.errLog.Log(r, "database error during login lookup", err)
		h.renderError(w, r, "Service temporarily unavailable. Please try again.", loginID, returnURL)
		return
	}

	if user.Status != "active" {
		if h.rateLimitStore != nil {
			h.rateLimitStore.RecordFailure(r.Context(), loginID)
		}
		h.logger.Warn("login attempt for disabled account", zap.String("user_id", user.ID.Hex()))
		h.renderError(w, r, "Account is disabled", loginID, returnURL)
		return
	}

	if user.PasswordHash == nil || !authutil.CheckPassword(password, *user.PasswordHash) {
		if h.rateLimitStore != nil {
			lockedOut, lockedUntil := h.rateLimitStore.RecordFailure(r.Context(), loginID)
			if lockedOut {
				h.logger.Warn("login locked out",
					zap.String("login_id", loginID),
					zap.String("client_ip", network.GetClientIP(r)))
				h.renderError(w, r, lockoutMessage(lockedUntil), loginID, returnURL)
				return
			}
		}
		h.renderError(w, r, "Invalid credentials", loginID, returnURL)
		return
	}

	// Clear rate limit on successful login
	if h.rateLimitStore != nil {
		h.rateLimitStore.ClearOnSuccess(r.Context(), loginID)
	}

	if err := h.createSession(w, r, user.ID, user.Role); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin login", zap.String("user_id", user.ID.Hex()))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/admin"), http.StatusSeeOther)
}

// renderError re-renders the login form with an error message.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg, loginID, returnURL string) {
	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: returnURL,
	}
	vm.Title = "Admin Login"
	templates.Render(w, r, "login/index", vm)
}

// lockoutMessage formats a user-facing message for a rate-limit lockout.
func lockoutMessage(lockedUntil *time.Time) string {
	msg := "Too many failed login attempts. Please try again later."
	if lockedUntil != nil {
		remaining := time.Until(*lockedUntil)
		if remaining > time.Minute {
			msg = fmt.Sprintf("Too many failed login attempts. Please try again in %d minute(s).", int(remaining.Minutes())+1)
		} else {
			msg = fmt.Sprintf("Too many failed login attempts. Please try again in %d second(s).", int(remaining.Seconds())+1)
		}
	}
	return msg
}

// createSession generates a token and writes the session cookie.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID, role string) error {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}
	return h.sessionMgr.CreateSession(w, r, userID, role, token)
}
