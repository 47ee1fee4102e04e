package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/brightland/schoolsite/internal/app/features/errors"
	"github.com/brightland/schoolsite/internal/app/store/ratelimit"
	userstore "github.com/brightland/schoolsite/internal/app/store/users"
	"github.com/brightland/schoolsite/internal/app/system/auth"
	"github.com/brightland/schoolsite/internal/app/system/authutil"
	"github.com/brightland/schoolsite/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	mgr, err := auth.NewSessionManager(
		"test-session-key-for-testing-1234567890",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return mgr
}

func newTestHandler(t *testing.T, db *mongo.Database, rl *ratelimit.Store) *Handler {
	t.Helper()
	logger := zap.NewNop()
	return NewHandler(db, newSessionManager(t), errorsfeature.NewErrorLogger(logger), rl, logger)
}

func createAdmin(t *testing.T, db *mongo.Database, loginID, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	_, err = userstore.New(db).CreateFromInput(ctx, userstore.CreateInput{
		FullName:     "Test Admin",
		LoginID:      loginID,
		Role:         "admin",
		PasswordHash: &hash,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
}

func postLogin(h *Handler, loginID, password string) *testutil.ResponseRecorder {
	form := url.Values{}
	form.Set("login_id", loginID)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.handleLogin(rec, req)
	return rec
}

func TestLoginValidCredentials(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	createAdmin(t, db, "principal", "validpassword123")

	h := newTestHandler(t, db, nil)
	rec := postLogin(h, "principal", "validpassword123")

	rec.AssertRedirect(t, "/admin")

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	createAdmin(t, db, "principal", "validpassword123")

	h := newTestHandler(t, db, nil)
	rec := postLogin(h, "principal", "wrongpassword")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Invalid credentials")
}

func TestLoginUnknownUser(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	h := newTestHandler(t, db, nil)
	rec := postLogin(h, "nobody", "whatever123")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	h := newTestHandler(t, db, nil)
	rec := postLogin(h, "", "")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Please enter your Login ID and password.")
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	createAdmin(t, db, "principal", "validpassword123")

	rl := ratelimit.New(db, 3, 15*time.Minute, 15*time.Minute)
	h := newTestHandler(t, db, rl)

	for i := 0; i < 3; i++ {
		postLogin(h, "principal", "wrongpassword")
	}

	// Even the correct password is refused while locked out.
	rec := postLogin(h, "principal", "validpassword123")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Too many failed login attempts")
}

func TestLoginClearsRateLimitOnSuccess(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	createAdmin(t, db, "principal", "validpassword123")

	rl := ratelimit.New(db, 3, 15*time.Minute, 15*time.Minute)
	h := newTestHandler(t, db, rl)

	postLogin(h, "principal", "wrongpassword")
	postLogin(h, "principal", "wrongpassword")

	rec := postLogin(h, "principal", "validpassword123")
	rec.AssertRedirect(t, "/admin")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	allowed, remaining, _ := rl.CheckAllowed(ctx, "principal")
	if !allowed || remaining != 3 {
		t.Errorf("rate limit not cleared: allowed=%v remaining=%d", allowed, remaining)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := authutil.HashPassword("validpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	store := userstore.New(db)
	created, err := store.CreateFromInput(ctx, userstore.CreateInput{
		FullName:     "Disabled Admin",
		LoginID:      "disabled",
		Role:         "admin",
		PasswordHash: &hash,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := store.Update(ctx, created.ID, userstore.UserUpdate{
		FullName: created.FullName,
		LoginID:  "disabled",
		Role:     created.Role,
		Status:   "disabled",
	}); err != nil {
		t.Fatalf("failed to disable user: %v", err)
	}

	h := newTestHandler(t, db, nil)
	rec := postLogin(h, "disabled", "validpassword123")

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Account is disabled")
}

func TestLoginRedirectsToSafeReturnURL(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)
	createAdmin(t, db, "principal", "validpassword123")

	h := newTestHandler(t, db, nil)

	form := url.Values{}
	form.Set("login_id", "principal")
	form.Set("password", "validpassword123")
	form.Set("return", "https://evil.example.com/phish")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)

	rec := testutil.NewRecorder()
	h.handleLogin(rec, req)

	// Off-site return URLs fall back to the dashboard.
	rec.AssertRedirect(t, "/admin")
}

func TestShowLoginRedirectsSignedInAdmin(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	h := newTestHandler(t, db, nil)

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/admin/login", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.showLogin(rec, req)

	rec.AssertRedirect(t, "/admin")
}

func TestLockoutMessageFormatting(t *testing.T) {
	if got := lockoutMessage(nil); !strings.Contains(got, "try again later") {
		t.Errorf("nil lockout: got %q", got)
	}

	inTwoMinutes := time.Now().Add(2 * time.Minute)
	if got := lockoutMessage(&inTwoMinutes); !strings.Contains(got, "minute") {
		t.Errorf("minutes lockout: got %q", got)
	}

	inTenSeconds := time.Now().Add(10 * time.Second)
	if got := lockoutMessage(&inTenSeconds); !strings.Contains(got, "second") {
		t.Errorf("seconds lockout: got %q", got)
	}
}
