package about

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

// postSection sends a multipart-compatible urlencoded form to the save
// handler for one section.
func postSection(t *testing.T, h *Handler, section string, form url.Values) *testutil.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/about/"+section, strings.NewReader(form.Encode()))
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

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/about"))
	rec := testutil.NewRecorder()
	h.show(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestSaveHeroSection(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postSection(t, h, "hero", url.Values{
		"title":    {"About Brightland"},
		"subtitle": {"Four decades of learning"},
	})
	rec.AssertRedirect(t, "/admin/about?saved=hero")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout: %v", err)
	}
	if page.Hero.Title != "About Brightland" {
		t.Errorf("Hero.Title = %q", page.Hero.Title)
	}
}

func TestSaveSectionDoesNotTouchOthers(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "hero", url.Values{"title": {"About Us"}})
	postSection(t, h, "vision", url.Values{"text": {"Learners for life."}})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout: %v", err)
	}
	if page.Hero.Title != "About Us" {
		t.Errorf("Hero.Title = %q after vision save", page.Hero.Title)
	}
	if page.Vision.Text != "Learners for life." {
		t.Errorf("Vision.Text = %q", page.Vision.Text)
	}
}

func TestSaveMissionRewritesList(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "mission", url.Values{
		"mission_title":       {"Excellence", "Integrity", "Service"},
		"mission_description": {"Strive for the best", "Do what is right", "Give back"},
	})

	// A second save with fewer rows replaces the whole list.
	postSection(t, h, "mission", url.Values{
		"mission_title":       {"Excellence"},
		"mission_description": {"Strive for the best"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout: %v", err)
	}
	if len(page.Mission) != 1 {
		t.Fatalf("got %d mission items, want 1", len(page.Mission))
	}
	if page.Mission[0].Title != "Excellence" {
		t.Errorf("Mission[0].Title = %q", page.Mission[0].Title)
	}
}

func TestSaveUnknownSection(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postSection(t, h, "bogus", url.Values{"title": {"x"}})
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestSaveHistoryParagraphLines(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "history", url.Values{
		"description":    {"Founded in 1985.\n\nGrew to 2000 students."},
		"stats_years":    {"40+"},
		"stats_students": {"2000+"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAbout(ctx)
	if err != nil {
		t.Fatalf("GetAbout: %v", err)
	}
	if len(page.History.Description) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(page.History.Description))
	}
	if page.History.Stats.Years != "40+" {
		t.Errorf("Stats.Years = %q", page.History.Stats.Years)
	}
}
