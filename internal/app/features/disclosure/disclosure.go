// internal/app/features/disclosure/disclosure.go
package disclosure

import (
	"net/http"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	disclosurestore "github.com/brightland/schoolsite/internal/app/store/disclosures"
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

// Handler provides public-disclosure handlers.
type Handler struct {
	docs        *disclosurestore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new disclosure Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		docs:        disclosurestore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// DisclosureVM is the view model for the public disclosure page.
type DisclosureVM struct {
	viewdata.BaseVM
	General   []models.DisclosureDoc
	Mandatory []models.DisclosureDoc
	Academic  []models.DisclosureDoc
	Active    string
}

// AdminVM is the view model for the disclosure manager.
type AdminVM struct {
	viewdata.BaseVM
	Docs    []models.DisclosureDoc
	Success bool
	Error   string
}

// Routes returns the public disclosure routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	return r
}

// EditRoutes returns the admin disclosure manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/delete", h.delete)
	return r
}

// show renders the mandatory public disclosure page. The active tab
// defaults to general information.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active := query.Get(r, "tab")
	if !models.IsValidDisclosureCategory(active) {
		active = models.DisclosureCategoryGeneral
	}

	docs, err := h.docs.ListAll(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list disclosure documents", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := DisclosureVM{
		BaseVM: viewdata.New(r),
		Active: active,
	}
	vm.Title = "Public Disclosure"
	for _, doc := range docs {
		switch doc.Category {
		case models.DisclosureCategoryGeneral:
			vm.General = append(vm.General, doc)
		case models.DisclosureCategoryMandatory:
			vm.Mandatory = append(vm.Mandatory, doc)
		case models.DisclosureCategoryAcademic:
			vm.Academic = append(vm.Academic, doc)
		}
	}

	templates.Render(w, r, "disclosure/show", vm)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, success bool, errMsg string) {
	docs, err := h.docs.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list disclosure documents", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:  viewdata.New(r),
		Docs:    docs,
		Success: success,
		Error:   errMsg,
	}
	vm.Title = "Manage Disclosure"

	templates.Render(w, r, "disclosure/admin", vm)
}

// create adds one disclosure entry. General entries carry a text value;
// the document categories carry an uploaded file.
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

	category := r.FormValue("category")
	if !models.IsValidDisclosureCategory(category) {
		h.renderList(w, r, false, "Unknown disclosure category.")
		return
	}

	doc := models.DisclosureDoc{Title: title, Category: category}
	if category == models.DisclosureCategoryGeneral {
		doc.Value = strings.TrimSpace(r.FormValue("value"))
		if doc.Value == "" {
			h.renderList(w, r, false, "Please enter a value for this entry.")
			return
		}
	} else {
		fileURL, err := upload.FromForm(r.Context(), h.fileStorage, r, "document_file", "disclosure")
		if err == upload.ErrDisallowedType {
			h.renderList(w, r, false, "That file type is not supported. Upload a PDF or image.")
			return
		}
		if err != nil {
			h.errLog.Log(r, "failed to store disclosure document", err)
			h.renderList(w, r, false, "Failed to upload document. Please try again.")
			return
		}
		if fileURL == "" {
			h.renderList(w, r, false, "Please attach a document for this entry.")
			return
		}
		doc.FileURL = fileURL
	}

	if _, err := h.docs.Insert(r.Context(), doc); err != nil {
		h.errLog.Log(r, "failed to insert disclosure entry", err)
		h.renderList(w, r, false, "Failed to save disclosure entry.")
		return
	}

	http.Redirect(w, r, "/admin/disclosure?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	doc, err := h.docs.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load disclosure entry for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.docs.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete disclosure entry", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if path, ok := storedPath(doc.FileURL); ok {
		if err := h.fileStorage.Delete(r.Context(), path); err != nil {
			h.logger.Warn("failed to delete disclosure file", zap.String("path", path), zap.Error(err))
		}
	}

	http.Redirect(w, r, "/admin/disclosure?success=1", http.StatusSeeOther)
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
