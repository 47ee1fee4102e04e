// internal/app/features/activities/activities.go
package activities

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

// Handler provides activities page handlers.
type Handler struct {
	content     *contentstore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new activities Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content:     contentstore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// ActivitiesVM is the view model for the public activities page.
type ActivitiesVM struct {
	viewdata.BaseVM
	Page models.ActivitiesPage
}

// EditVM is the view model for the activities editor.
type EditVM struct {
	viewdata.BaseVM
	Page    models.ActivitiesPage
	Success string
	Error   string
}

// Routes returns the public activities routes.
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
	page, err := h.content.GetActivities(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load activities page", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := ActivitiesVM{
		BaseVM: viewdata.New(r),
		Page:   page,
	}
	vm.Title = "Activities"

	templates.Render(w, r, "activities/show", vm)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetActivities(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load activities page for edit", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := EditVM{
		BaseVM:  viewdata.New(r),
		Page:    page,
		Success: r.URL.Query().Get("saved"),
	}
	vm.Title = "Edit Activities"

	templates.Render(w, r, "activities/edit", vm)
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

	case "co_curriculars":
		value = forms.Items(r, "co_curriculars")

	case "clubs":
		value = forms.Items(r, "clubs")

	case "events":
		value = forms.Items(r, "events")

	case "field_trip":
		value = models.FieldTrip{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			ButtonText:  r.FormValue("button_text"),
		}

	default:
		http.NotFound(w, r)
		return
	}

	if err := h.content.SaveSection(r.Context(), models.ContentSlugActivities, section, value); err != nil {
		h.errLog.Log(r, "failed to save activities section", err)
		h.renderSaveError(w, r, "Failed to save. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/activities?saved="+section, http.StatusSeeOther)
}

func (h *Handler) renderSaveError(w http.ResponseWriter, r *http.Request, msg string) {
	page, _ := h.content.GetActivities(r.Context())
	vm := EditVM{
		BaseVM: viewdata.New(r),
		Page:   page,
		Error:  msg,
	}
	vm.Title = "Edit Activities"
	templates.Render(w, r, "activities/edit", vm)
}
