// internal/app/system/viewdata/viewdata.go
package viewdata

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"net/http"

	settingsstore "github.com/brightland/schoolsite/internal/app/store/settings"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/authz"
	"github.com/brightland/schoolsite/internal/app/system/timeouts"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.New(r),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// School identity (from site settings)
	SchoolName   string
	Address      string
	Phone        string
	Email        string
	WorkingHours string
	LogoURL      string

	// Social links (from site settings)
	Facebook  string
	Instagram string
	YouTube   string
	Twitter   string

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	LoginID    string // User's login identifier (for per-user tracking)
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// IsAdmin reports whether the current viewer is an admin.
// Template helper for showing admin-only navigation.
func (vm BaseVM) IsAdmin() bool {
	return vm.IsLoggedIn && vm.Role == models.RoleAdmin
}

// HasSocialLinks reports whether any social link is set, so the footer
// can skip the whole block when there are none.
func (vm BaseVM) HasSocialLinks() bool {
	return vm.Facebook != "" || vm.Instagram != "" || vm.YouTube != "" || vm.Twitter != ""
}

// storageProvider is set by Init and used to generate logo URLs.
var storageProvider storage.Store

// globalDB is set by Init and used by New() to load settings.
var globalDB *mongo.Database

// Init sets the storage provider and database for viewdata.
// Call this once at startup from bootstrap.
func Init(store storage.Store, db *mongo.Database) {
	storageProvider = store
	globalDB = db
}

// New creates a BaseVM with school settings loaded from the database.
// This is the standard way to create a BaseVM for most handlers.
func New(r *http.Request) BaseVM {
	return NewBaseVM(r, globalDB, "", "/")
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - db: database for loading site settings (can be nil for defaults)
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, db *mongo.Database, title, backDefault string) BaseVM {
	role, name, userID, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SchoolName:   models.DefaultSchoolName,
		WorkingHours: models.DefaultWorkingHours,
		IsLoggedIn:   signedIn,
		UserID:       userID.Hex(),
		Role:         role,
		UserName:     name,
		Title:        title,
		BackURL:      httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:  httpnav.CurrentPath(r),
		CSRFToken:    csrf.Token(r),
	}

	// Get LoginID from session if logged in
	if signedIn {
		if user, ok := auth.CurrentUser(r); ok {
			vm.LoginID = user.LoginID
		}
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		store := settingsstore.New(db)
		settings, err := store.Get(ctx)
		if err == nil && settings != nil {
			vm.applySettings(settings)
		}
	}

	return vm
}

func (vm *BaseVM) applySettings(settings *models.SiteSettings) {
	if settings.SchoolName != "" {
		vm.SchoolName = settings.SchoolName
	}
	vm.Address = settings.Address
	vm.Phone = settings.Phone
	vm.Email = settings.Email
	if settings.WorkingHours != "" {
		vm.WorkingHours = settings.WorkingHours
	}
	vm.Facebook = settings.Facebook
	vm.Instagram = settings.Instagram
	vm.YouTube = settings.YouTube
	vm.Twitter = settings.Twitter
	if settings.HasLogo() && storageProvider != nil {
		vm.LogoURL = storageProvider.URL(settings.LogoPath)
	}
}

// GetSchoolName returns the school name from settings, or the default if not available.
func GetSchoolName(ctx context.Context, db *mongo.Database) string {
	if db == nil {
		return models.DefaultSchoolName
	}

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil || settings == nil || settings.SchoolName == "" {
		return models.DefaultSchoolName
	}
	return settings.SchoolName
}

// GetSettings returns the full site settings, or defaults if not available.
func GetSettings(ctx context.Context, db *mongo.Database) models.SiteSettings {
	defaults := models.SiteSettings{
		SchoolName:   models.DefaultSchoolName,
		WorkingHours: models.DefaultWorkingHours,
	}
	if db == nil {
		return defaults
	}

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil || settings == nil {
		return defaults
	}
	return *settings
}
