// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	disclosurestore "github.com/brightland/schoolsite/internal/app/store/disclosures"
	enquirystore "github.com/brightland/schoolsite/internal/app/store/enquiries"
	gallerystore "github.com/brightland/schoolsite/internal/app/store/gallery"
	newsstore "github.com/brightland/schoolsite/internal/app/store/news"
	tcstore "github.com/brightland/schoolsite/internal/app/store/tc"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides admin dashboard handlers.
type Handler struct {
	enquiries   *enquirystore.Store
	gallery     *gallerystore.Store
	news        *newsstore.Store
	tc          *tcstore.Store
	disclosures *disclosurestore.Store
	logger      *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		enquiries:   enquirystore.New(db),
		gallery:     gallerystore.New(db),
		news:        newsstore.New(db),
		tc:          tcstore.New(db),
		disclosures: disclosurestore.New(db),
		logger:      logger,
	}
}

// DashboardVM is the view model for the admin dashboard.
type DashboardVM struct {
	viewdata.BaseVM
	NewEnquiries    int64
	TotalEnquiries  int64
	GalleryItems    int64
	NewsItems       int64
	TCRecords       int64
	DisclosureItems int64
}

// Routes returns a chi.Router with dashboard routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))
	r.Get("/", h.showDashboard)
	return r
}

// showDashboard displays the admin dashboard with content counts.
// A count that fails to load renders as zero rather than failing the page.
func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vm := DashboardVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Dashboard"

	if n, err := h.enquiries.CountNew(ctx); err != nil {
		h.logger.Warn("failed to count new enquiries", zap.Error(err))
	} else {
		vm.NewEnquiries = n
	}
	if n, err := h.enquiries.Count(ctx, nil); err != nil {
		h.logger.Warn("failed to count enquiries", zap.Error(err))
	} else {
		vm.TotalEnquiries = n
	}
	if n, err := h.gallery.Count(ctx); err != nil {
		h.logger.Warn("failed to count gallery items", zap.Error(err))
	} else {
		vm.GalleryItems = n
	}
	if n, err := h.news.Count(ctx); err != nil {
		h.logger.Warn("failed to count news items", zap.Error(err))
	} else {
		vm.NewsItems = n
	}
	if n, err := h.tc.Count(ctx); err != nil {
		h.logger.Warn("failed to count TC records", zap.Error(err))
	} else {
		vm.TCRecords = n
	}
	if n, err := h.disclosures.Count(ctx); err != nil {
		h.logger.Warn("failed to count disclosures", zap.Error(err))
	} else {
		vm.DisclosureItems = n
	}

	templates.Render(w, r, "dashboard/admin", vm)
}
