package news

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	newsstore "github.com/brightland/schoolsite/internal/app/store/news"
	"github.com/brightland/schoolsite/internal/domain/models"
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

func TestIndexListsItems(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := newsstore.New(db)
	if _, err := store.Insert(ctx, models.NewsItem{
		Title:       "Sports Day Announced",
		Category:    models.NewsCategoryEvent,
		Description: "Annual sports day on the main grounds.",
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	rec := testutil.NewRecorder()
	h.index(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Sports Day Announced")
}

func TestIndexFiltersByCategory(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := newsstore.New(db)
	for _, item := range []models.NewsItem{
		{Title: "Exam Circular", Category: models.NewsCategoryCircular},
		{Title: "Quiz Winners", Category: models.NewsCategoryAchievement},
	} {
		if _, err := store.Insert(ctx, item); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/news?category=Circular", nil)
	rec := testutil.NewRecorder()
	h.index(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Exam Circular")
	if strings.Contains(rec.Body.String(), "Quiz Winners") {
		t.Error("filtered page should not include other categories")
	}
}

func TestDetailSanitizesRichText(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	item, err := newsstore.New(db).Insert(ctx, models.NewsItem{
		Title:       "Holiday Notice",
		Category:    models.NewsCategoryAnnouncement,
		FullContent: `<p>School closed <strong>Monday</strong>.</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/news/"+item.ID.Hex(), nil)
	req = testutil.WithRouteParam(req, "id", item.ID.Hex())
	rec := testutil.NewRecorder()
	h.detail(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "<strong>Monday</strong>")
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("script tags must be stripped from rich text")
	}
}

func TestDetailUnknownID(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/news/not-an-id", nil)
	req = testutil.WithRouteParam(req, "id", "not-an-id")
	rec := testutil.NewRecorder()
	h.detail(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestCreateWithAttachment(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Fee Circular")
	mw.WriteField("category", models.NewsCategoryCircular)
	mw.WriteField("description", "Revised fee schedule attached.")
	mw.WriteField("urgent", "on")
	fw, err := mw.CreateFormFile("attachment_file", "fees.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("%PDF-1.4"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/news", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.create(rec, req)
	rec.AssertRedirect(t, "/admin/news?success=1")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	items, err := newsstore.New(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if !items[0].Urgent {
		t.Error("urgent flag not saved")
	}
	if !strings.HasPrefix(items[0].FileURL, "/files/news/") {
		t.Errorf("FileURL = %q, want /files/news/... URL", items[0].FileURL)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	form := url.Values{"category": {models.NewsCategoryEvent}}
	req := httptest.NewRequest(http.MethodPost, "/admin/news", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.create(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "enter a title")
}

func TestDeleteItem(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := newsstore.New(db)
	item, err := store.Insert(ctx, models.NewsItem{
		Title:    "Old Notice",
		Category: models.NewsCategoryAnnouncement,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/news/"+item.ID.Hex()+"/delete", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "id", item.ID.Hex())

	rec := testutil.NewRecorder()
	h.delete(rec, req)
	rec.AssertRedirect(t, "/admin/news?success=1")

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after delete", count)
	}
}
