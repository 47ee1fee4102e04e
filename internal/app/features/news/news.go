// internal/app/features/news/news.go
package news

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	newsstore "github.com/brightland/schoolsite/internal/app/store/news"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/htmlsanitize"
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

// Handler provides news and notices handlers.
type Handler struct {
	news        *newsstore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new news Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		news:        newsstore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// ListVM is the view model for the public news listing.
type ListVM struct {
	viewdata.BaseVM
	Items      []models.NewsItem
	Categories []string
	Active     string
}

// DetailVM is the view model for a single news item.
type DetailVM struct {
	viewdata.BaseVM
	Item    *models.NewsItem
	Content template.HTML
}

// AdminVM is the view model for the news manager.
type AdminVM struct {
	viewdata.BaseVM
	Items      []models.NewsItem
	Categories []string
	Success    bool
	Error      string
}

// Routes returns the public news routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Get("/{id}", h.detail)
	return r
}

// EditRoutes returns the admin news manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	active := query.Get(r, "category")

	var items []models.NewsItem
	var err error
	if active != "" {
		items, err = h.news.ListByCategory(ctx, active)
	} else {
		items, err = h.news.ListAll(ctx)
	}
	if err != nil {
		h.errLog.Log(r, "failed to list news", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := ListVM{
		BaseVM:     viewdata.New(r),
		Items:      items,
		Categories: models.AllNewsCategories(),
		Active:     active,
	}
	vm.Title = "News & Notices"

	templates.Render(w, r, "news/index", vm)
}

// detail renders one item with its full rich text body. The body is
// admin-entered HTML and is sanitized before display.
func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load news item", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	content := item.FullContent
	if content == "" {
		content = item.Description
	}

	vm := DetailVM{
		BaseVM:  viewdata.New(r),
		Item:    item,
		Content: htmlsanitize.PrepareForDisplay(content),
	}
	vm.Title = item.Title

	templates.Render(w, r, "news/detail", vm)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, success bool, errMsg string) {
	items, err := h.news.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list news", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:     viewdata.New(r),
		Items:      items,
		Categories: models.AllNewsCategories(),
		Success:    success,
		Error:      errMsg,
	}
	vm.Title = "Manage News"

	templates.Render(w, r, "news/admin", vm)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		h.renderList(w, r, false, "Please enter a title.")
		return
	}

	fileURL, err := upload.FromForm(r.Context(), h.fileStorage, r, "attachment_file", "news")
	if err == upload.ErrDisallowedType {
		h.renderList(w, r, false, "That file type is not supported. Upload a PDF or image.")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to store news attachment", err)
		h.renderList(w, r, false, "Failed to upload attachment. Please try again.")
		return
	}

	var date time.Time
	if raw := r.FormValue("date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			date = parsed
		}
	}

	_, err = h.news.Insert(r.Context(), models.NewsItem{
		Title:       title,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		FullContent: htmlsanitize.Sanitize(r.FormValue("full_content")),
		Urgent:      r.FormValue("urgent") == "on",
		FileURL:     fileURL,
		Date:        date,
	})
	if err != nil {
		h.errLog.Log(r, "failed to insert news item", err)
		h.renderList(w, r, false, "Failed to save news item.")
		return
	}

	http.Redirect(w, r, "/admin/news?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load news item for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.news.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete news item", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if path, ok := storedPath(item.FileURL); ok {
		if err := h.fileStorage.Delete(r.Context(), path); err != nil {
			h.logger.Warn("failed to delete news attachment", zap.String("path", path), zap.Error(err))
		}
	}

	http.Redirect(w, r, "/admin/news?success=1", http.StatusSeeOther)
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
