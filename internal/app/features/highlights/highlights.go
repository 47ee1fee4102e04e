// internal/app/features/highlights/highlights.go
package highlights

import (
	"net/http"
	"strconv"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	highlightstore "github.com/brightland/schoolsite/internal/app/store/highlights"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages the "why choose us" cards shown on the home page.
type Handler struct {
	highlights *highlightstore.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new highlights Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		highlights: highlightstore.New(db),
		errLog:     errLog,
		logger:     logger,
	}
}

// ListVM is the view model for the highlight manager.
type ListVM struct {
	viewdata.BaseVM
	Highlights []models.Highlight
	IconKeys   []string
	Success    bool
	Error      string
}

// EditItemVM is the view model for editing one highlight.
type EditItemVM struct {
	viewdata.BaseVM
	Highlight models.Highlight
	IconKeys  []string
	Error     string
}

// EditRoutes returns the admin highlight manager routes.
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, r.URL.Query().Get("success") == "1", "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, success bool, errMsg string) {
	items, err := h.highlights.ListAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list highlights", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := ListVM{
		BaseVM:     viewdata.New(r),
		Highlights: items,
		IconKeys:   models.HighlightIconKeys(),
		Success:    success,
		Error:      errMsg,
	}
	vm.Title = "Highlights"

	templates.Render(w, r, "highlights/list", vm)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	item, errMsg := highlightFromForm(r)
	if errMsg != "" {
		h.renderList(w, r, false, errMsg)
		return
	}

	if _, err := h.highlights.Insert(r.Context(), item); err != nil {
		h.errLog.Log(r, "failed to insert highlight", err)
		h.renderList(w, r, false, "Failed to save highlight.")
		return
	}

	http.Redirect(w, r, "/admin/highlights?success=1", http.StatusSeeOther)
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.highlights.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load highlight", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := EditItemVM{
		BaseVM:    viewdata.New(r),
		Highlight: *item,
		IconKeys:  models.HighlightIconKeys(),
	}
	vm.Title = "Edit Highlight"

	templates.Render(w, r, "highlights/edit", vm)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	item, errMsg := highlightFromForm(r)
	if errMsg != "" {
		vm := EditItemVM{
			BaseVM:    viewdata.New(r),
			Highlight: item,
			IconKeys:  models.HighlightIconKeys(),
			Error:     errMsg,
		}
		vm.Title = "Edit Highlight"
		item.ID = id
		templates.Render(w, r, "highlights/edit", vm)
		return
	}

	if err := h.highlights.Update(r.Context(), id, item); err != nil {
		h.errLog.Log(r, "failed to update highlight", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/highlights?success=1", http.StatusSeeOther)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.highlights.Delete(r.Context(), id); err != nil {
		h.errLog.Log(r, "failed to delete highlight", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/highlights?success=1", http.StatusSeeOther)
}

// highlightFromForm builds a highlight from the posted form. Unknown
// icons are kept; rendering falls back to the default icon class.
func highlightFromForm(r *http.Request) (models.Highlight, string) {
	item := models.Highlight{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Icon:        r.FormValue("icon"),
	}
	if item.Title == "" {
		return item, "Title is required."
	}
	if item.Icon == "" {
		item.Icon = models.DefaultHighlightIcon
	}
	if v := r.FormValue("order"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return item, "Order must be a number."
		}
		item.Order = n
	}
	return item, ""
}
