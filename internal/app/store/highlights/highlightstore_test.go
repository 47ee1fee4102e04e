package highlightstore

import (
	"testing"

	"github.com/brightland/schoolsite/internal/domain/models"
	"github.com/brightland/schoolsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Insert_AssignsOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h1, err := store.Insert(ctx, models.Highlight{Title: "Experienced Faculty", Icon: "users"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	h2, err := store.Insert(ctx, models.Highlight{Title: "Modern Labs", Icon: "flask"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if h1.Order != 1 {
		t.Errorf("first Order = %d, want 1", h1.Order)
	}
	if h2.Order != 2 {
		t.Errorf("second Order = %d, want 2", h2.Order)
	}
}

func TestStore_ListAll_DisplayOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Insert(ctx, models.Highlight{Title: "Third", Order: 3})
	store.Insert(ctx, models.Highlight{Title: "First", Order: 1})
	store.Insert(ctx, models.Highlight{Title: "Second", Order: 2})

	hs, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(hs) != 3 {
		t.Fatalf("ListAll() = %d, want 3", len(hs))
	}
	if hs[0].Title != "First" || hs[2].Title != "Third" {
		t.Errorf("ListAll() order = [%q %q %q], want sorted by order",
			hs[0].Title, hs[1].Title, hs[2].Title)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Insert(ctx, models.Highlight{Title: "Original", Icon: "star"})

	err := store.Update(ctx, created.ID, models.Highlight{
		Title:       "Updated",
		Description: "New description",
		Icon:        "trophy",
		Order:       5,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	updated, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Title != "Updated" {
		t.Errorf("Title = %q, want %q", updated.Title, "Updated")
	}
	if updated.Icon != "trophy" {
		t.Errorf("Icon = %q, want %q", updated.Icon, "trophy")
	}
	if updated.Order != 5 {
		t.Errorf("Order = %d, want 5", updated.Order)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), models.Highlight{Title: "X"})
	if err != mongo.ErrNoDocuments {
		t.Errorf("Update() error = %v, want %v", err, mongo.ErrNoDocuments)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Insert(ctx, models.Highlight{Title: "Remove"})

	count, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Delete() count = %d, want 1", count)
	}
}

func TestHighlightIconClass_Fallback(t *testing.T) {
	// Known key resolves to its class
	if got := models.HighlightIconClass("trophy"); got != "icon-trophy" {
		t.Errorf("HighlightIconClass(trophy) = %q, want %q", got, "icon-trophy")
	}
	// Unknown key falls back to the default icon
	want := models.HighlightIconClass(models.DefaultHighlightIcon)
	if got := models.HighlightIconClass("nonexistent"); got != want {
		t.Errorf("HighlightIconClass(unknown) = %q, want %q", got, want)
	}
	if got := models.HighlightIconClass(""); got != want {
		t.Errorf("HighlightIconClass(empty) = %q, want %q", got, want)
	}
}
