// internal/app/features/about/about.go
package about

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

// Handler provides about page handlers.
type Handler struct {
	content     *contentstore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new about Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content:     contentstore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// AboutVM is the view model for the public about page.
type AboutVM struct {
	viewdata.BaseVM
	Page models.AboutPage
}

// EditVM is the view model for the about editor.
type EditVM struct {
	viewdata.BaseVM
	Page    models.AboutPage
	Success string // section key that was just saved
	Error   string
}

// Routes returns the public about routes.
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
	page, err := h.content.GetAbout(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load about page", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AboutVM{
		BaseVM: viewdata.New(r),
		Page:   page,
	}
	vm.Title = "About"

	templates.Render(w, r, "about/show", vm)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetAbout(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load about page for edit", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := EditVM{
		BaseVM:  viewdata.New(r),
		Page:    page,
		Success: r.URL.Query().Get("saved"),
	}
	vm.Title = "Edit About"

	templates.Render(w, r, "about/edit", vm)
}

// save writes one section of the about document. Each section posts
// its own form; the rest of the document is untouched.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	// Sections without a file input post plain urlencoded forms.
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var value any
	switch section {
	case "hero":
		hero := models.Hero{
			Title:    r.FormValue("title"),
			Subtitle: r.FormValue("subtitle"),
			CTAText:  r.FormValue("cta_text"),
		}
		img, err := h.resolveImage(r, "background_image")
		if err != nil {
			h.renderSaveError(w, r, "Failed to upload image. Please try again.")
			return
		}
		hero.BackgroundImage = img
		value = hero

	case "history":
		history := models.AboutHistory{
			Description: forms.Lines(r.FormValue("description")),
		}
		history.Stats.Years = r.FormValue("stats_years")
		history.Stats.Students = r.FormValue("stats_students")
		img, err := h.resolveImage(r, "image")
		if err != nil {
			h.renderSaveError(w, r, "Failed to upload image. Please try again.")
			return
		}
		history.Image = img
		value = history

	case "vision":
		value = models.Vision{Text: r.FormValue("text")}

	case "mission":
		value = forms.Items(r, "mission")

	case "principal":
		principal := models.AboutPrincipal{
			Name:        r.FormValue("name"),
			Designation: r.FormValue("designation"),
			Message:     forms.Lines(r.FormValue("message")),
		}
		photo, err := h.resolveImage(r, "photo")
		if err != nil {
			h.renderSaveError(w, r, "Failed to upload photo. Please try again.")
			return
		}
		principal.Photo = photo
		value = principal

	case "core_values":
		value = forms.Items(r, "core_values")

	default:
		http.NotFound(w, r)
		return
	}

	if err := h.content.SaveSection(ctx, models.ContentSlugAbout, section, value); err != nil {
		h.errLog.Log(r, "failed to save about section", err)
		h.renderSaveError(w, r, "Failed to save. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/about?saved="+section, http.StatusSeeOther)
}

// resolveImage returns the image for a section field: an uploaded file
// wins, otherwise the pasted URL in field is kept as-is.
func (h *Handler) resolveImage(r *http.Request, field string) (string, error) {
	uploaded, err := upload.FromForm(r.Context(), h.fileStorage, r, field+"_file", "content")
	if err != nil {
		return "", err
	}
	if uploaded != "" {
		return uploaded, nil
	}
	return r.FormValue(field), nil
}

func (h *Handler) renderSaveError(w http.ResponseWriter, r *http.Request, msg string) {
	page, _ := h.content.GetAbout(r.Context())
	vm := EditVM{
		BaseVM: viewdata.New(r),
		Page:   page,
		Error:  msg,
	}
	vm.Title = "Edit About"
	templates.Render(w, r, "about/edit", vm)
}
