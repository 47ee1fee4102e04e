// internal/app/features/hero/hero.go
package hero

import (
	"net/http"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	heroslidestore "github.com/brightland/schoolsite/internal/app/store/heroslides"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/upload"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages home page banner slides and brand logos.
type Handler struct {
	slides      *heroslidestore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new hero Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		slides:      heroslidestore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// HeroVM is the view model for the slide manager.
type HeroVM struct {
	viewdata.BaseVM
	Slides     []models.HeroSlide
	BrandLogos []models.HeroSlide
	Success    string
	Error      string
}

// EditRoutes returns the admin slide manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, r.URL.Query().Get("success"), "")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, success, errMsg string) {
	ctx := r.Context()

	slides, err := h.slides.ListBySection(ctx, models.HeroSectionMain)
	if err != nil {
		h.errLog.Log(r, "failed to list hero slides", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logos, err := h.slides.ListBySection(ctx, models.HeroSectionBrand)
	if err != nil {
		h.errLog.Log(r, "failed to list brand logos", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := HeroVM{
		BaseVM:     viewdata.New(r),
		Slides:     slides,
		BrandLogos: logos,
		Success:    success,
		Error:      errMsg,
	}
	vm.Title = "Hero Slides"

	templates.Render(w, r, "hero/list", vm)
}

// create adds a slide from an uploaded file or a pasted image URL. An
// uploaded file wins when both are given.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	section := r.FormValue("section")
	if !models.IsValidHeroSection(section) {
		h.render(w, r, "", "Unknown slide section.")
		return
	}

	image, err := upload.FromForm(r.Context(), h.fileStorage, r, "image_file", "hero")
	if err == upload.ErrDisallowedType {
		h.render(w, r, "", "That file type is not supported. Upload a PDF or image.")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to store slide image", err)
		h.render(w, r, "", "Failed to upload image. Please try again.")
		return
	}
	if image == "" {
		image = r.FormValue("image_url")
	}
	if image == "" {
		h.render(w, r, "", "Please upload an image or paste an image URL.")
		return
	}

	_, err = h.slides.Insert(r.Context(), models.HeroSlide{
		Section: section,
		Title:   r.FormValue("title"),
		Image:   image,
	})
	if err != nil {
		h.errLog.Log(r, "failed to insert slide", err)
		h.render(w, r, "", "Failed to save slide.")
		return
	}

	http.Redirect(w, r, "/admin/hero?success=1", http.StatusSeeOther)
}

// storedPath maps a locally served image URL back to its storage path.
// Local uploads are served under a single URL prefix ("/files/..."), so
// the path is everything after that prefix. Absolute URLs are external
// and have no stored file.
func storedPath(image string) (string, bool) {
	if !strings.HasPrefix(image, "/") {
		return "", false
	}
	trimmed := strings.TrimPrefix(image, "/")
	i := strings.Index(trimmed, "/")
	if i < 0 {
		return "", false
	}
	return trimmed[i+1:], true
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	slide, err := h.slides.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load slide for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.slides.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete slide", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Stored uploads are removed best effort; pasted URLs have no
	// local file to clean up.
	if path, ok := storedPath(slide.Image); ok {
		if err := h.fileStorage.Delete(r.Context(), path); err != nil {
			h.logger.Warn("failed to delete slide image", zap.String("path", path), zap.Error(err))
		}
	}

	http.Redirect(w, r, "/admin/hero?success=1", http.StatusSeeOther)
}
