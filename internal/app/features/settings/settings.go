// internal/app/features/settings/settings.go
package settings

import (
	"net/http"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	settingsstore "github.com/brightland/schoolsite/internal/app/store/settings"
	"github.com/brightland/schoolsite/internal/app/system/inputval"
	"github.com/brightland/schoolsite/internal/app/system/upload"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides school settings handlers.
type Handler struct {
	settingsStore *settingsstore.Store
	fileStorage   storage.Store
	errLog        *errorsfeature.ErrorLogger
	logger        *zap.Logger
}

// NewHandler creates a new settings Handler.
func NewHandler(
	db *mongo.Database,
	fileStorage storage.Store,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		settingsStore: settingsstore.New(db),
		fileStorage:   fileStorage,
		errLog:        errLog,
		logger:        logger,
	}
}

// SettingsVM is the view model for the settings page.
type SettingsVM struct {
	viewdata.BaseVM
	Settings *models.SiteSettings
	HasLogo  bool   // Whether a logo is uploaded
	LogoHref string // Generated URL for the logo preview
	LogoName string // Original filename of the logo
	Success  string
	Error    string
}

// MountRoutes mounts settings routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.update)
}

// show displays the settings page.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.Get(r.Context())
	if err != nil && err != mongo.ErrNoDocuments {
		h.errLog.Log(r, "failed to get settings", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := h.buildVM(r, settings)
	if r.URL.Query().Get("success") == "1" {
		vm.Success = "Settings updated successfully"
	}

	templates.Render(w, r, "settings/show", vm)
}

// settingsInput carries the text fields of the settings form.
type settingsInput struct {
	SchoolName   string `validate:"required,max=200" label:"School name"`
	Address      string `validate:"max=500" label:"Address"`
	Phone        string `validate:"max=50" label:"Phone"`
	Email        string `validate:"max=254" label:"Email"`
	WorkingHours string `validate:"max=200" label:"Working hours"`
	Facebook     string `validate:"max=500" label:"Facebook URL"`
	Instagram    string `validate:"max=500" label:"Instagram URL"`
	YouTube      string `validate:"max=500" label:"YouTube URL"`
	Twitter      string `validate:"max=500" label:"Twitter URL"`
}

// update saves the settings including logo handling. A logo only
// changes when a new file is uploaded or removal is requested; saving
// the text fields alone leaves the stored logo untouched.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	in := settingsInput{
		SchoolName:   r.FormValue("school_name"),
		Address:      r.FormValue("address"),
		Phone:        r.FormValue("phone"),
		Email:        r.FormValue("email"),
		WorkingHours: r.FormValue("working_hours"),
		Facebook:     r.FormValue("facebook"),
		Instagram:    r.FormValue("instagram"),
		YouTube:      r.FormValue("youtube"),
		Twitter:      r.FormValue("twitter"),
	}
	if result := inputval.Validate(in); result.HasErrors() {
		h.renderWithError(w, r, result.First())
		return
	}
	if in.Email != "" && !inputval.IsValidEmail(in.Email) {
		h.renderWithError(w, r, "Please enter a valid email address.")
		return
	}

	removeLogo := r.FormValue("remove_logo") != ""

	// Get current settings for logo handling
	current, _ := h.settingsStore.Get(ctx)
	if current == nil {
		current = &models.SiteSettings{}
	}

	input := settingsstore.UpdateInput{
		SchoolName:   in.SchoolName,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		WorkingHours: in.WorkingHours,
		Facebook:     in.Facebook,
		Instagram:    in.Instagram,
		YouTube:      in.YouTube,
		Twitter:      in.Twitter,
	}

	if removeLogo {
		if current.HasLogo() {
			if err := h.fileStorage.Delete(ctx, current.LogoPath); err != nil {
				h.logger.Warn("failed to delete old logo", zap.String("path", current.LogoPath), zap.Error(err))
			}
		}
		empty := ""
		input.LogoPath = &empty
		input.LogoName = &empty
	}

	// A new upload replaces the logo (and wins over remove_logo)
	file, header, fileErr := r.FormFile("logo")
	if fileErr == nil && header != nil && header.Size > 0 {
		defer file.Close()

		if current.HasLogo() {
			if err := h.fileStorage.Delete(ctx, current.LogoPath); err != nil {
				h.logger.Warn("failed to delete old logo", zap.String("path", current.LogoPath), zap.Error(err))
			}
		}

		newPath, err := upload.Save(ctx, h.fileStorage, "logos", header.Filename, file, header.Header.Get("Content-Type"))
		if err == upload.ErrDisallowedType {
			h.renderWithError(w, r, "That file type is not supported. Upload a PDF or image.")
			return
		}
		if err != nil {
			h.logger.Error("logo upload failed", zap.Error(err))
			h.renderWithError(w, r, "Failed to upload logo. Please try again.")
			return
		}
		name := header.Filename
		input.LogoPath = &newPath
		input.LogoName = &name
	}

	if err := h.settingsStore.Upsert(ctx, input); err != nil {
		h.errLog.Log(r, "failed to update settings", err)
		h.renderWithError(w, r, "Failed to save settings")
		return
	}

	http.Redirect(w, r, "/admin/settings?success=1", http.StatusSeeOther)
}

// renderWithError re-renders the settings page with an error message.
func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, errMsg string) {
	settings, _ := h.settingsStore.Get(r.Context())
	vm := h.buildVM(r, settings)
	vm.Error = errMsg
	templates.Render(w, r, "settings/show", vm)
}

func (h *Handler) buildVM(r *http.Request, settings *models.SiteSettings) SettingsVM {
	if settings == nil {
		settings = &models.SiteSettings{
			SchoolName:   models.DefaultSchoolName,
			WorkingHours: models.DefaultWorkingHours,
		}
	}

	var logoHref string
	if settings.HasLogo() {
		logoHref = h.fileStorage.URL(settings.LogoPath)
	}

	vm := SettingsVM{
		BaseVM:   viewdata.New(r),
		Settings: settings,
		HasLogo:  settings.HasLogo(),
		LogoHref: logoHref,
		LogoName: settings.LogoName,
	}
	vm.Title = "School Settings"
	return vm
}
