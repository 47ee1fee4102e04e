// internal/app/features/fees/fees.go
package fees

import (
	"net/http"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	feestore "github.com/brightland/schoolsite/internal/app/store/fees"
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

// Handler provides fee structure handlers.
type Handler struct {
	fees        *feestore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new fees Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		fees:        feestore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// FeesVM is the view model for the public fee structure page.
type FeesVM struct {
	viewdata.BaseVM
	Levels []models.FeeLevel
}

// AdminVM is the view model for the fee manager.
type AdminVM struct {
	viewdata.BaseVM
	Levels  []models.FeeLevel
	Editing *models.FeeLevel
	Success bool
	Error   string
}

// Routes returns the public fees routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	return r
}

// EditRoutes returns the admin fee manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.save)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	levels, err := h.fees.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list fee levels", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := FeesVM{BaseVM: viewdata.New(r), Levels: levels}
	vm.Title = "Fee Structure"

	templates.Render(w, r, "fees/show", vm)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, nil, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	fee, err := h.fees.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load fee level", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderList(w, r, fee, false, "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, editing *models.FeeLevel, success bool, errMsg string) {
	levels, err := h.fees.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list fee levels", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:  viewdata.New(r),
		Levels:  levels,
		Editing: editing,
		Success: success,
		Error:   errMsg,
	}
	vm.Title = "Manage Fees"

	templates.Render(w, r, "fees/admin", vm)
}

// save creates or updates a fee level. An id field in the form selects the
// row to update; without one a new level is inserted. An existing PDF is
// kept unless a replacement is uploaded.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	level := strings.TrimSpace(r.FormValue("level"))
	if level == "" {
		h.renderList(w, r, nil, false, "Please enter a level name.")
		return
	}

	fee := models.FeeLevel{
		Level:        level,
		Classes:      r.FormValue("classes"),
		AdmissionFee: r.FormValue("admission_fee"),
		TuitionFee:   r.FormValue("tuition_fee"),
		Color:        r.FormValue("color"),
		Bg:           r.FormValue("bg"),
	}
	if raw := r.FormValue("id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		fee.ID = id
	}

	pdfURL, err := upload.FromForm(r.Context(), h.fileStorage, r, "pdf_file", "fees")
	if err == upload.ErrDisallowedType {
		h.renderList(w, r, nil, false, "That file type is not supported. Upload a PDF or image.")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to store fee schedule PDF", err)
		h.renderList(w, r, nil, false, "Failed to upload PDF. Please try again.")
		return
	}
	fee.PDFURL = pdfURL

	if _, err := h.fees.Upsert(r.Context(), fee); err != nil {
		h.errLog.Log(r, "failed to save fee level", err)
		h.renderList(w, r, nil, false, "Failed to save fee level.")
		return
	}

	http.Redirect(w, r, "/admin/fees?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	fee, err := h.fees.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load fee level for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.fees.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete fee level", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if path, ok := storedPath(fee.PDFURL); ok {
		if err := h.fileStorage.Delete(r.Context(), path); err != nil {
			h.logger.Warn("failed to delete fee schedule PDF", zap.String("path", path), zap.Error(err))
		}
	}

	http.Redirect(w, r, "/admin/fees?success=1", http.StatusSeeOther)
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
