package activities

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
	req := httptest.NewRequest(http.MethodPost, "/admin/activities/"+section, strings.NewReader(form.Encode()))
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

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/activities"))
	rec := testutil.NewRecorder()
	h.show(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestSaveClubs(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postSection(t, h, "clubs", url.Values{
		"clubs_title":       {"Chess Club", "Eco Club"},
		"clubs_description": {"Weekly matches", "Campus greening"},
		"clubs_icon":        {"trophy", "globe"},
	})
	rec.AssertRedirect(t, "/admin/activities?saved=clubs")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetActivities(ctx)
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if len(page.Clubs) != 2 {
		t.Fatalf("got %d clubs, want 2", len(page.Clubs))
	}
	if page.Clubs[1].Icon != "globe" {
		t.Errorf("Clubs[1].Icon = %q", page.Clubs[1].Icon)
	}
}

func TestSaveFieldTrip(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "field_trip", url.Values{
		"title":       {"Explore Beyond the Classroom"},
		"description": {"Annual excursions for every grade."},
		"button_text": {"Enquire Now"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetActivities(ctx)
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if page.FieldTrip.ButtonText != "Enquire Now" {
		t.Errorf("FieldTrip.ButtonText = %q", page.FieldTrip.ButtonText)
	}
}
