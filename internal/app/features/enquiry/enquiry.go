// internal/app/features/enquiry/enquiry.go
package enquiry

import (
	"net/http"
	"strings"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	enquirystore "github.com/brightland/schoolsite/internal/app/store/enquiries"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/inputval"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides contact form and enquiry management handlers.
type Handler struct {
	enquiries *enquirystore.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new enquiry Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		enquiries: enquirystore.New(db),
		errLog:    errLog,
		logger:    logger,
	}
}

// ContactVM is the view model for the public contact page.
type ContactVM struct {
	viewdata.BaseVM
	Form    models.Enquiry
	Success bool
	Error   string
}

// AdminVM is the view model for the enquiry inbox.
type AdminVM struct {
	viewdata.BaseVM
	Enquiries []models.Enquiry
	Statuses  []string
	Active    string
	Success   bool
}

// Routes returns the public contact routes.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.contactForm)
	r.Post("/", h.submit)
	return r
}

// EditRoutes returns the admin enquiry inbox routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Get("/export", h.export)
	r.Post("/{id}/status", h.updateStatus)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) contactForm(w http.ResponseWriter, r *http.Request) {
	vm := ContactVM{
		BaseVM:  viewdata.New(r),
		Success: r.URL.Query().Get("success") == "1",
	}
	vm.Title = "Contact Us"
	templates.Render(w, r, "enquiry/contact", vm)
}

// submit records a contact form message. New enquiries always start in
// status "new".
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := models.Enquiry{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	errMsg := ""
	switch {
	case form.Name == "":
		errMsg = "Please enter your name."
	case form.Email == "" && form.Phone == "":
		errMsg = "Please provide an email address or phone number."
	case form.Email != "" && !inputval.IsValidEmail(form.Email):
		errMsg = "Please enter a valid email address."
	case form.Message == "":
		errMsg = "Please enter a message."
	}
	if errMsg != "" {
		vm := ContactVM{BaseVM: viewdata.New(r), Form: form, Error: errMsg}
		vm.Title = "Contact Us"
		templates.Render(w, r, "enquiry/contact", vm)
		return
	}

	if _, err := h.enquiries.Insert(r.Context(), form); err != nil {
		h.errLog.Log(r, "failed to save enquiry", err)
		vm := ContactVM{BaseVM: viewdata.New(r), Form: form, Error: "Something went wrong. Please try again."}
		vm.Title = "Contact Us"
		templates.Render(w, r, "enquiry/contact", vm)
		return
	}

	http.Redirect(w, r, "/contact?success=1", http.StatusSeeOther)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active := query.Get(r, "status")
	var enquiries []models.Enquiry
	var err error
	if models.IsValidEnquiryStatus(active) {
		enquiries, err = h.enquiries.ListByStatus(ctx, active)
	} else {
		active = ""
		enquiries, err = h.enquiries.ListAll(ctx)
	}
	if err != nil {
		h.errLog.Log(r, "failed to list enquiries", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := AdminVM{
		BaseVM:    viewdata.New(r),
		Enquiries: enquiries,
		Statuses:  models.AllEnquiryStatuses(),
		Active:    active,
		Success:   r.URL.Query().Get("success") == "1",
	}
	vm.Title = "Enquiries"

	templates.Render(w, r, "enquiry/admin", vm)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := r.FormValue("status")
	if !models.IsValidEnquiryStatus(status) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.enquiries.UpdateStatus(r.Context(), id, status); err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to update enquiry status", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/enquiries?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.enquiries.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete enquiry", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/enquiries?success=1", http.StatusSeeOther)
}
