package academics

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
	req := httptest.NewRequest(http.MethodPost, "/admin/academics/"+section, strings.NewReader(form.Encode()))
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

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/academics"))
	rec := testutil.NewRecorder()
	h.show(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestSaveLevels(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postSection(t, h, "levels", url.Values{
		"pre_primary": {"Nursery\nKG I\nKG II"},
		"primary":     {"Class I\nClass II\nClass III\nClass IV\nClass V"},
		"middle":      {"Class VI\nClass VII\nClass VIII"},
		"secondary":   {"Class IX\nClass X"},
	})
	rec.AssertRedirect(t, "/admin/academics?saved=levels")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAcademics(ctx)
	if err != nil {
		t.Fatalf("GetAcademics: %v", err)
	}
	if len(page.Levels.PrePrimary) != 3 {
		t.Errorf("got %d pre-primary classes, want 3", len(page.Levels.PrePrimary))
	}
	if len(page.Levels.Secondary) != 2 || page.Levels.Secondary[1] != "Class X" {
		t.Errorf("Secondary = %v", page.Levels.Secondary)
	}
}

func TestSavePillars(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	postSection(t, h, "pillars", url.Values{
		"pillars_title":       {"Strong Foundations"},
		"pillars_description": {"Concept-first teaching"},
		"pillars_icon":        {"book"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()
	page, err := contentstore.New(db).GetAcademics(ctx)
	if err != nil {
		t.Fatalf("GetAcademics: %v", err)
	}
	if len(page.Pillars) != 1 || page.Pillars[0].Icon != "book" {
		t.Errorf("Pillars = %+v", page.Pillars)
	}
}
