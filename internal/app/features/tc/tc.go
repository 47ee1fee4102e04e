// internal/app/features/tc/tc.go
package tc

import (
	"net/http"
	"path"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	tcstore "github.com/brightland/schoolsite/internal/app/store/tc"
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

// Handler provides transfer certificate handlers.
type Handler struct {
	certs       *tcstore.Store
	fileStorage storage.Store
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new transfer certificate Handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		certs:       tcstore.New(db),
		fileStorage: fileStorage,
		errLog:      errLog,
		logger:      logger,
	}
}

// LookupVM is the view model for the public lookup page.
type LookupVM struct {
	viewdata.BaseVM
	RegNo    string
	DOB      string
	Result   *models.TCRecord
	NotFound bool
	Error    string
}

// AdminVM is the view model for the certificate manager.
type AdminVM struct {
	viewdata.BaseVM
	Records []models.TCRecord
	Success bool
	Error   string
}

// Routes returns the public lookup routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.lookupForm)
	r.Post("/", h.lookup)
	return r
}

// EditRoutes returns the admin certificate manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) lookupForm(w http.ResponseWriter, r *http.Request) {
	vm := LookupVM{BaseVM: viewdata.New(r)}
	vm.Title = "Transfer Certificate"
	templates.Render(w, r, "tc/lookup", vm)
}

// lookup finds a certificate by registration number and date of birth.
// A miss is a normal outcome, not an error.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	vm := LookupVM{
		BaseVM: viewdata.New(r),
		RegNo:  strings.TrimSpace(r.FormValue("reg_no")),
		DOB:    strings.TrimSpace(r.FormValue("dob")),
	}
	vm.Title = "Transfer Certificate"

	if vm.RegNo == "" || vm.DOB == "" {
		vm.Error = "Please enter both the registration number and date of birth."
		templates.Render(w, r, "tc/lookup", vm)
		return
	}

	rec, err := h.certs.Lookup(r.Context(), vm.RegNo, vm.DOB)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			vm.NotFound = true
			templates.Render(w, r, "tc/lookup", vm)
			return
		}
		h.errLog.Log(r, "certificate lookup failed", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm.Result = rec
	templates.Render(w, r, "tc/lookup", vm)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, success bool, errMsg string) {
	records, err := h.certs.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list certificates", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:  viewdata.New(r),
		Records: records,
		Success: success,
		Error:   errMsg,
	}
	vm.Title = "Manage Transfer Certificates"

	templates.Render(w, r, "tc/admin", vm)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	rec := models.TCRecord{
		StudentName: strings.TrimSpace(r.FormValue("student_name")),
		Session:     strings.TrimSpace(r.FormValue("session")),
		RegNo:       r.FormValue("reg_no"),
		DOB:         strings.TrimSpace(r.FormValue("dob")),
	}
	if rec.StudentName == "" || rec.RegNo == "" || rec.DOB == "" {
		h.renderList(w, r, false, "Student name, registration number, and date of birth are required.")
		return
	}

	fileURL, err := upload.FromForm(r.Context(), h.fileStorage, r, "certificate_file", "tc")
	if err == upload.ErrDisallowedType {
		h.renderList(w, r, false, "That file type is not supported. Upload a PDF or image.")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to store certificate file", err)
		h.renderList(w, r, false, "Failed to upload certificate. Please try again.")
		return
	}
	if fileURL == "" {
		h.renderList(w, r, false, "Please attach the certificate file.")
		return
	}
	rec.FileURL = fileURL
	rec.FileType = fileTypeFor(fileURL)

	if _, err := h.certs.Insert(r.Context(), rec); err != nil {
		if err == tcstore.ErrDuplicateRegNo {
			h.renderList(w, r, false, "A certificate with this registration number already exists.")
			return
		}
		h.errLog.Log(r, "failed to insert certificate", err)
		h.renderList(w, r, false, "Failed to save certificate.")
		return
	}

	http.Redirect(w, r, "/admin/tc?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rec, err := h.certs.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load certificate for delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := h.certs.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete certificate", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if path, ok := storedPath(rec.FileURL); ok {
		if err := h.fileStorage.Delete(r.Context(), path); err != nil {
			h.logger.Warn("failed to delete certificate file", zap.String("path", path), zap.Error(err))
		}
	}

	http.Redirect(w, r, "/admin/tc?success=1", http.StatusSeeOther)
}

// fileTypeFor classifies an uploaded certificate by extension.
func fileTypeFor(fileURL string) string {
	if strings.EqualFold(path.Ext(fileURL), ".pdf") {
		return models.TCFilePDF
	}
	return models.TCFileImage
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
