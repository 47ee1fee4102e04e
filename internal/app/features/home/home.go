// internal/app/features/home/home.go
package home

import (
	"net/http"

	heroslidestore "github.com/brightland/schoolsite/internal/app/store/heroslides"
	highlightstore "github.com/brightland/schoolsite/internal/app/store/highlights"
	newsstore "github.com/brightland/schoolsite/internal/app/store/news"
	"github.com/brightland/schoolsite/internal/app/system/viewdata"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentNewsLimit caps the news items shown on the home page.
const recentNewsLimit = 4

// Handler provides home page handlers.
type Handler struct {
	slides     *heroslidestore.Store
	highlights *highlightstore.Store
	news       *newsstore.Store
	logger     *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		slides:     heroslidestore.New(db),
		highlights: highlightstore.New(db),
		news:       newsstore.New(db),
		logger:     logger,
	}
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	Slides     []models.HeroSlide
	BrandLogos []models.HeroSlide
	Highlights []models.Highlight
	RecentNews []models.NewsItem
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page. Each content block loads best effort so a
// failing collection degrades to an empty section rather than a 500.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vm := HomeVM{
		BaseVM: viewdata.New(r),
	}
	vm.Title = "Home"

	slides, err := h.slides.ListBySection(ctx, models.HeroSectionMain)
	if err != nil {
		h.logger.Warn("load hero slides", zap.Error(err))
	} else {
		vm.Slides = slides
	}

	logos, err := h.slides.ListBySection(ctx, models.HeroSectionBrand)
	if err != nil {
		h.logger.Warn("load brand logos", zap.Error(err))
	} else {
		vm.BrandLogos = logos
	}

	highlights, err := h.highlights.ListAll(ctx)
	if err != nil {
		h.logger.Warn("load highlights", zap.Error(err))
	} else {
		vm.Highlights = highlights
	}

	news, err := h.news.ListRecent(ctx, recentNewsLimit)
	if err != nil {
		h.logger.Warn("load recent news", zap.Error(err))
	} else {
		vm.RecentNews = news
	}

	templates.Render(w, r, "home/index", vm)
}
