// internal/app/features/facilities/facilities.go
package facilities

import (
	"net/http"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	contentstore "github.com/brightland/schoolsite/internal/app/store/content"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/forms"
	"github.com/brightland/schoolsite/internal/app/system/upload"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides facilities page handlers.
type Handler struct {
	content     *contentstore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new facilities Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content:     contentstore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// FacilitiesVM is the view model for the public facilities page.
type FacilitiesVM struct {
	viewdata.BaseVM
	Page models.FacilitiesPage
}

// EditVM is the view model for the facilities editor.
type EditVM struct {
	viewdata.BaseVM
	Page    models.FacilitiesPage
	Success string
	Error   string
}

// Routes returns the public facilities routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	return r
}

// EditRoutes returns the admin editor routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.edit)
	r.Post("/{section}", h.save)
	return r
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetFacilities(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load facilities page", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := FacilitiesVM{
		BaseVM: viewdata.New(r),
		Page:   page,
	}
	vm.Title = "Facilities"

	templates.Render(w, r, "facilities/show", vm)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetFacilities(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load facilities page for edit", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := EditVM{
		BaseVM:  viewdata.New(r),
		Page:    page,
		Success: r.URL.Query().Get("saved"),
	}
	vm.Title = "Edit Facilities"

	templates.Render(w, r, "facilities/edit", vm)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var value any
	switch section {
	case "hero":
		hero := models.Hero{
			Title:    r.FormValue("title"),
			Subtitle: r.FormValue("subtitle"),
			CTAText:  r.FormValue("cta_text"),
		}
		img, err := upload.FromForm(r.Context(), h.fileStorage, r, "background_image_file", "content")
		if err != nil {
			h.renderSaveError(w, r, "Failed to upload image. Please try again.")
			return
		}
		if img == "" {
			img = r.FormValue("background_image")
		}
		hero.BackgroundImage = img
		value = hero

	case "academic_facilities":
		value = forms.Items(r, "academic_facilities")

	case "science_sports":
		ss := models.ScienceSports{
			ScienceTitle: r.FormValue("science_title"),
			ScienceDesc:  r.FormValue("science_desc"),
			SportsTitle:  r.FormValue("sports_title"),
			SportsDesc:   r.FormValue("sports_desc"),
		}
		img, err := upload.FromForm(r.Context(), h.fileStorage, r, "image_file", "content")
		if err != nil {
			h.renderSaveError(w, r, "Failed to upload image. Please try again.")
			return
		}
		if img == "" {
			img = r.FormValue("image")
		}
		ss.Image = img
		value = ss

	case "logistics":
		value = forms.Items(r, "logistics")

	default:
		http.NotFound(w, r)
		return
	}

	if err := h.content.SaveSection(r.Context(), models.ContentSlugFacilities, section, value); err != nil {
		h.errLog.Log(r, "failed to save facilities section", err)
		h.renderSaveError(w, r, "Failed to save. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/facilities?saved="+section, http.StatusSeeOther)
}

func (h *Handler) renderSaveError(w http.ResponseWriter, r *http.Request, msg string) {
	page, _ := h.content.GetFacilities(r.Context())
	vm := EditVM{
		BaseVM: viewdata.New(r),
		Page:   page,
		Error:  msg,
	}
	vm.Title = "Edit Facilities"
	templates.Render(w, r, "facilities/edit", vm)
}
