package admission

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	contentstore "github.com/brightland/schoolsite/internal/app/store/content"
	"github.com/brightland/schoolsite/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *Handler {
	t.Helper()
	store, err := storage.NewLocal(storage.LocalConfig{BasePath: t.TempDir(), BaseURL: "/files"})
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}
	logger := zap.NewNop()
	return NewHandler(db, store, errorsfeature.NewErrorLogger(logger), logger)
}

func postSection(t *testing.T, h *Handler, section string, form url.Values) *testutil.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/admission/"+section, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "section", section)

	rec := testutil.NewRecorder()
	h.save(rec, req)
	return rec
}

func TestShowEmptyDatabase(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/admission"))
	rec := testutil.NewRecorder()
	h.show(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestSaveStepsKeepsOrder(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postSection(t, h, "steps", url.Values{
		"steps_title":       {"Enquire", "Visit", "Apply", "Enroll"},
		"steps_description": {"Submit the enquiry form", "Tour the campus", "Fill the application", "Pay the admission fee"},
	})
	rec.AssertRedirect(t, "/admin/admission?saved=steps")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAdmission(ctx)
	if err != nil {
		t.Fatalf("GetAdmission: %v", err)
	}
	if len(page.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(page.Steps))
	}
	if page.Steps[0].Title != "Enquire" || page.Steps[3].Title != "Enroll" {
		t.Errorf("step order wrong: %+v", page.Steps)
	}
}

func TestSaveStats(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "stats", url.Values{
		"stats_title": {"Students", "Teachers"},
		"stats_value": {"2000+", "90+"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAdmission(ctx)
	if err != nil {
		t.Fatalf("GetAdmission: %v", err)
	}
	if len(page.Stats) != 2 || page.Stats[1].Value != "90+" {
		t.Errorf("Stats = %+v", page.Stats)
	}
}
