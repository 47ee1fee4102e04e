package enquiry

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	enquirystore "github.com/brightland/schoolsite/internal/app/store/enquiries"
	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/brightland/schoolsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(db *mongo.Database) *Handler {
	logger := zap.NewNop()
	return NewHandler(db, errorsfeature.NewErrorLogger(logger), logger)
}

func postContact(h *Handler, form url.Values) *testutil.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)
	rec := testutil.NewRecorder()
	h.submit(rec, req)
	return rec
}

func TestContactFormRenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := testutil.NewRecorder()
	h.contactForm(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Send message")
}

func TestSubmitCreatesNewEnquiry(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)

	rec := postContact(h, url.Values{
		"name":    {"Priya Nair"},
		"email":   {"priya@example.com"},
		"subject": {"Admission for class VI"},
		"message": {"Are admissions open for the next session?"},
	})
	rec.AssertRedirect(t, "/contact?success=1")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	enquiries, err := enquirystore.New(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(enquiries) != 1 {
		t.Fatalf("got %d enquiries, want 1", len(enquiries))
	}
	if enquiries[0].Status != models.EnquiryStatusNew {
		t.Errorf("Status = %q, want new", enquiries[0].Status)
	}
}

func TestSubmitRequiresName(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)

	rec := postContact(h, url.Values{
		"email":   {"priya@example.com"},
		"message": {"Hello"},
	})

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "enter your name")
}

func TestSubmitRequiresContactDetail(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)

	rec := postContact(h, url.Values{
		"name":    {"Priya Nair"},
		"message": {"Hello"},
	})

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "email address or phone number")
}

func TestSubmitRejectsBadEmail(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)

	rec := postContact(h, url.Values{
		"name":    {"Priya Nair"},
		"email":   {"not-an-email"},
		"message": {"Hello"},
	})

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "valid email address")
}

func TestListFiltersByStatus(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := enquirystore.New(db)
	first, err := store.Insert(ctx, models.Enquiry{Name: "Priya Nair", Email: "priya@example.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := store.Insert(ctx, models.Enquiry{Name: "Rahul Verma", Email: "rahul@example.com", Message: "Hello"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.UpdateStatus(ctx, first.ID, models.EnquiryStatusResolved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries?status=resolved", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.list(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Priya Nair")
	if strings.Contains(rec.Body.String(), "Rahul Verma") {
		t.Error("resolved filter should not include new enquiries")
	}
}

func TestUpdateStatus(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := enquirystore.New(db)
	enq, err := store.Insert(ctx, models.Enquiry{Name: "Priya Nair", Email: "priya@example.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	form := url.Values{"status": {models.EnquiryStatusContacted}}
	req := httptest.NewRequest(http.MethodPost, "/admin/enquiries/"+enq.ID.Hex()+"/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "id", enq.ID.Hex())

	rec := testutil.NewRecorder()
	h.updateStatus(rec, req)
	rec.AssertRedirect(t, "/admin/enquiries?success=1")

	updated, err := store.GetByID(ctx, enq.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != models.EnquiryStatusContacted {
		t.Errorf("Status = %q, want contacted", updated.Status)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	enq, err := enquirystore.New(db).Insert(ctx, models.Enquiry{Name: "Priya Nair", Email: "priya@example.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	form := url.Values{"status": {"archived"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/enquiries/"+enq.ID.Hex()+"/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "id", enq.ID.Hex())

	rec := testutil.NewRecorder()
	h.updateStatus(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDeleteEnquiry(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := enquirystore.New(db)
	enq, err := store.Insert(ctx, models.Enquiry{Name: "Priya Nair", Email: "priya@example.com", Message: "Hi"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/enquiries/"+enq.ID.Hex()+"/delete", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "id", enq.ID.Hex())

	rec := testutil.NewRecorder()
	h.delete(rec, req)
	rec.AssertRedirect(t, "/admin/enquiries?success=1")

	count, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after delete", count)
	}
}
