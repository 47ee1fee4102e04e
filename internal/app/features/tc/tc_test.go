package tc

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	tcstore "github.com/brightland/schoolsite/internal/app/store/tc"
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

func postLookup(h *Handler, regNo, dob string) *testutil.ResponseRecorder {
	form := url.Values{"reg_no": {regNo}, "dob": {dob}}
	req := httptest.NewRequest(http.MethodPost, "/tc", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)
	rec := testutil.NewRecorder()
	h.lookup(rec, req)
	return rec
}

func TestLookupFormRenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/tc", nil)
	rec := testutil.NewRecorder()
	h.lookupForm(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Registration number")
}

func TestLookupFindsCertificate(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := tcstore.New(db).Insert(ctx, models.TCRecord{
		StudentName: "Aarav Sharma",
		Session:     "2025-26",
		RegNo:       "BPS/2024/0123",
		DOB:         "2009-04-17",
		FileType:    models.TCFilePDF,
		FileURL:     "/files/tc/aarav.pdf",
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rec := postLookup(h, "bps/2024/0123", "2009-04-17")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Aarav Sharma")
	rec.AssertContains(t, "/files/tc/aarav.pdf")
}

func TestLookupMissIsNotAnError(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postLookup(h, "BPS/2024/9999", "2010-01-01")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No certificate found")
}

func TestLookupRequiresBothFields(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postLookup(h, "BPS/2024/0123", "")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "both the registration number and date of birth")
}

func TestLookupWrongDOBMisses(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := tcstore.New(db).Insert(ctx, models.TCRecord{
		StudentName: "Aarav Sharma",
		RegNo:       "BPS/2024/0123",
		DOB:         "2009-04-17",
		FileType:    models.TCFilePDF,
		FileURL:     "/files/tc/aarav.pdf",
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rec := postLookup(h, "BPS/2024/0123", "2009-04-18")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No certificate found")
}

func TestCreateUploadsCertificate(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("student_name", "Diya Patel")
	mw.WriteField("session", "2025-26")
	mw.WriteField("reg_no", "BPS/2024/0456")
	mw.WriteField("dob", "2008-11-02")
	fw, err := mw.CreateFormFile("certificate_file", "diya.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("%PDF-1.4"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/tc", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.create(rec, req)
	rec.AssertRedirect(t, "/admin/tc?success=1")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	found, err := tcstore.New(db).Lookup(ctx, "BPS/2024/0456", "2008-11-02")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found.FileType != models.TCFilePDF {
		t.Errorf("FileType = %q, want pdf", found.FileType)
	}
	if !strings.HasPrefix(found.FileURL, "/files/tc/") {
		t.Errorf("FileURL = %q, want /files/tc/... URL", found.FileURL)
	}
}

func TestCreateDuplicateRegNo(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := tcstore.New(db).Insert(ctx, models.TCRecord{
		StudentName: "Aarav Sharma",
		RegNo:       "BPS/2024/0123",
		DOB:         "2009-04-17",
		FileType:    models.TCFilePDF,
		FileURL:     "/files/tc/aarav.pdf",
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("student_name", "Someone Else")
	mw.WriteField("reg_no", "bps/2024/0123")
	mw.WriteField("dob", "2010-01-01")
	fw, err := mw.CreateFormFile("certificate_file", "dup.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("%PDF-1.4"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/tc", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.create(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "registration number already exists")
}

func TestCreateRequiresFile(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	form := url.Values{
		"student_name": {"Diya Patel"},
		"reg_no":       {"BPS/2024/0456"},
		"dob":          {"2008-11-02"},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/tc", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.create(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "attach the certificate file")
}

func TestDeleteCertificate(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := tcstore.New(db)
	rec0, err := store.Insert(ctx, models.TCRecord{
		StudentName: "Aarav Sharma",
		RegNo:       "BPS/2024/0123",
		DOB:         "2009-04-17",
		FileType:    models.TCFilePDF,
		FileURL:     "/files/tc/aarav.pdf",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/tc/"+rec0.ID.Hex()+"/delete", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithCSRFToken(req)
	req = testutil.WithRouteParam(req, "id", rec0.ID.Hex())

	rec := testutil.NewRecorder()
	h.delete(rec, req)
	rec.AssertRedirect(t, "/admin/tc?success=1")

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after delete", count)
	}
}

func TestFileTypeFor(t *testing.T) {
	if got := fileTypeFor("/files/tc/x.PDF"); got != models.TCFilePDF {
		t.Errorf("fileTypeFor(.PDF) = %q", got)
	}
	if got := fileTypeFor("/files/tc/x.jpg"); got != models.TCFileImage {
		t.Errorf("fileTypeFor(.jpg) = %q", got)
	}
}
