package enquirystore

import (
	"testing"

	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/brightland/schoolsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	enq := models.Enquiry{
		Name:    "Parent One",
		Email:   "parent@example.com",
		Phone:   "+91 99999 11111",
		Subject: "Admission query",
		Message: "Do you have seats in class III?",
		Status:  "resolved", // caller-set status must be ignored
	}

	created, err := store.Insert(ctx, enq)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if created.ID.IsZero() {
		t.Error("Insert() did not assign ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Insert() did not set CreatedAt")
	}
	// New submissions always start as new
	if created.Status != models.EnquiryStatusNew {
		t.Errorf("Insert() Status = %q, want %q", created.Status, models.EnquiryStatusNew)
	}
}

func TestStore_ListAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Insert(ctx, models.Enquiry{Name: "First"})
	store.Insert(ctx, models.Enquiry{Name: "Second"})

	enqs, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(enqs) != 2 {
		t.Fatalf("ListAll() = %d, want 2", len(enqs))
	}
	if enqs[0].Name != "Second" {
		t.Errorf("ListAll() first = %q, want %q (newest first)", enqs[0].Name, "Second")
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Insert(ctx, models.Enquiry{Name: "Status Test"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := store.UpdateStatus(ctx, created.ID, models.EnquiryStatusContacted); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	updated, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Status != models.EnquiryStatusContacted {
		t.Errorf("Status = %q, want %q", updated.Status, models.EnquiryStatusContacted)
	}
}

func TestStore_UpdateStatus_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Insert(ctx, models.Enquiry{Name: "Bad Status"})

	if err := store.UpdateStatus(ctx, created.ID, "archived"); err == nil {
		t.Error("UpdateStatus() with unknown status should fail")
	}
}

func TestStore_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.EnquiryStatusResolved)
	if err != mongo.ErrNoDocuments {
		t.Errorf("UpdateStatus() error = %v, want %v", err, mongo.ErrNoDocuments)
	}
}

func TestStore_ListByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e1, _ := store.Insert(ctx, models.Enquiry{Name: "One"})
	store.Insert(ctx, models.Enquiry{Name: "Two"})
	store.UpdateStatus(ctx, e1.ID, models.EnquiryStatusResolved)

	resolved, err := store.ListByStatus(ctx, models.EnquiryStatusResolved)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("ListByStatus(resolved) = %d, want 1", len(resolved))
	}
	if resolved[0].Name != "One" {
		t.Errorf("ListByStatus() item = %q, want %q", resolved[0].Name, "One")
	}
}

func TestStore_CountNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	count, err := store.CountNew(ctx)
	if err != nil {
		t.Fatalf("CountNew() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountNew() initial = %d, want 0", count)
	}

	e1, _ := store.Insert(ctx, models.Enquiry{Name: "A"})
	store.Insert(ctx, models.Enquiry{Name: "B"})
	store.UpdateStatus(ctx, e1.ID, models.EnquiryStatusContacted)

	count, _ = store.CountNew(ctx)
	if count != 1 {
		t.Errorf("CountNew() = %d, want 1", count)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Insert(ctx, models.Enquiry{Name: "Remove"})

	count, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Delete() count = %d, want 1", count)
	}

	_, err = store.GetByID(ctx, created.ID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("GetByID() after delete error = %v, want %v", err, mongo.ErrNoDocuments)
	}
}
