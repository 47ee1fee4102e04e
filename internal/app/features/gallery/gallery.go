// internal/app/features/gallery/gallery.go
package gallery

import (
	"net/http"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	gallerystore "github.com/brightland/schoolsite/internal/app/store/gallery"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/upload"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides gallery handlers.
type Handler struct {
	gallery     *gallerystore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new gallery Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		gallery:     gallerystore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// GalleryVM is the view model for the public gallery page.
type GalleryVM struct {
	viewdata.BaseVM
	Images     []models.GalleryItem
	Videos     []models.GalleryItem
	Categories []string
	Active     string // selected category filter, empty for all
}

// AdminVM is the view model for the gallery manager.
type AdminVM struct {
	viewdata.BaseVM
	Items   []models.GalleryItem
	Success bool
	Error   string
}

// Routes returns the public gallery routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	return r
}

// EditRoutes returns the admin gallery manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/delete", h.delete)
	return r
}

// show renders the public gallery, split into photo and video sections
// and optionally filtered by category.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	active := query.Get(r, "category")

	var items []models.GalleryItem
	var err error
	if active != "" {
		items, err = h.gallery.ListByCategory(ctx, active)
	} else {
		items, err = h.gallery.ListAll(ctx)
	}
	if err != nil {
		h.errLog.Log(r, "failed to list gallery items", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.gallery.Categories(ctx)
	if err != nil {
		h.logger.Warn("failed to list gallery categories", zap.Error(err))
	}

	vm := GalleryVM{
		BaseVM:     viewdata.New(r),
		Categories: categories,
		Active:     active,
	}
	vm.Title = "Gallery"
	for _, item := range items {
		if item.IsVideo() {
			vm.Videos = append(vm.Videos, item)
		} else {
			vm.Images = append(vm.Images, item)
		}
	}

	templates.Render(w, r, "gallery/show", vm)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, success bool, errMsg string) {
	items, err := h.gallery.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list gallery items", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:  viewdata.New(r),
		Items:   items,
		Success: success,
		Error:   errMsg,
	}
	vm.Title = "Manage Gallery"

	templates.Render(w, r, "gallery/admin", vm)
}

// create adds a gallery item. Photos are uploaded files; videos are
// embed URLs pasted into the form.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	itemType := r.FormValue("type")
	if itemType != models.GalleryTypeImage && itemType != models.GalleryTypeVideo {
		h.renderList(w, r, false, "Unknown media type.")
		return
	}

	var fileURL string
	switch itemType {
	case models.GalleryTypeVideo:
		fileURL = strings.TrimSpace(r.FormValue("video_url"))
		if fileURL == "" {
			h.renderList(w, r, false, "Please paste a video URL.")
			return
		}
	case models.GalleryTypeImage:
		uploaded, err := upload.FromForm(r.Context(), h.fileStorage, r, "image_file", "gallery")
		if err == upload.ErrDisallowedType {
			h.renderList(w, r, false, "That file type is not supported. Upload a PDF or image.")
			return
		}
		if err != nil {
			h.errLog.Log(r, "failed to store gallery image", err)
			h.renderList(w, r, false, "Failed to upload image. Please try again.")
			return
		}
		if uploaded == "" {
			h.renderList(w, r, false, "Please choose an image to upload.")
			return
		}
		fileURL = uploaded
	}

	_, err := h.gallery.Insert(r.Context(), models.GalleryItem{
		Title:    r.FormValue("title"),
		Category: strings.TrimSpace(r.FormValue("category")),
		Type:     itemType,
		FileURL:  fileURL,
	})
	if err != nil {
		h.errLog.Log(r, "failed to insert gallery item", err)
		h.renderList(w, r, false, "Failed to save gallery item.")
		return
	}

	http.Redirect(w, r, "/admin/gallery?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.gallery.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load gallery item for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.gallery.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete gallery item", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !item.IsVideo() {
		if path, ok := storedPath(item.FileURL); ok {
			if err := h.fileStorage.Delete(r.Context(), path); err != nil {
				h.logger.Warn("failed to delete gallery file", zap.String("path", path), zap.Error(err))
			}
		}
	}

	http.Redirect(w, r, "/admin/gallery?success=1", http.StatusSeeOther)
}

// storedPath maps a locally served file URL back to its storage path.
func storedPath(fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, "/") {
		return "", false
	}
	trimmed := strings.TrimPrefix(fileURL, "/")
	i := strings.Index(trimmed, "/")
	if i < 0 {
		return "", false
	}
	return trimmed[i+1:], true
}
