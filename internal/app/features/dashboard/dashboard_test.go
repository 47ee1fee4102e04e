package dashboard

import (
	"net/http"
	"testing"
	"time"

	enquirystore "github.com/brightland/schoolsite/internal/app/store/enquiries"
	newsstore "github.com/brightland/schoolsite/internal/app/store/news"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/brightland/schoolsite/internal/testutil"
	"go.uber.org/zap"
)

func TestDashboardRenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/admin", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.showDashboard(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestDashboardCounts(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	enquiries := enquirystore.New(db)
	for i := 0; i < 2; i++ {
		if _, err := enquiries.Insert(ctx, models.Enquiry{
			Name:    "Parent",
			Email:   "parent@example.com",
			Message: "Admission question",
		}); err != nil {
			t.Fatalf("insert enquiry: %v", err)
		}
	}

	news := newsstore.New(db)
	if _, err := news.Insert(ctx, models.NewsItem{
		Title:    "Sports Day",
		Category: models.NewsCategoryEvent,
		Date:     time.Now(),
	}); err != nil {
		t.Fatalf("insert news: %v", err)
	}

	newCount, err := enquiries.CountNew(ctx)
	if err != nil {
		t.Fatalf("CountNew: %v", err)
	}
	if newCount != 2 {
		t.Errorf("CountNew = %d, want 2", newCount)
	}

	h := NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/admin", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.showDashboard(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Dashboard")
}
