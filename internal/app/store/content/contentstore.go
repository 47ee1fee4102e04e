// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"fmt"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the content collection. Each structured
// page (about, activities, academics, admission, facilities) lives in
// one document keyed by slug; sections within a page are saved
// independently.
type Store struct {
	c *mongo.Collection
}

// New creates a new content store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content")}
}

// SaveSection writes one section of a page document. The page document
// is created if it does not exist, so editors work against an empty
// database without special cases.
func (s *Store) SaveSection(ctx context.Context, slug, section string, value any) error {
	if !models.IsValidContentSlug(slug) {
		return fmt.Errorf("unknown content slug %q", slug)
	}

	filter := bson.M{"slug": slug}
	update := bson.M{
		"$set": bson.M{
			section:      value,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":  primitive.NewObjectID(),
			"slug": slug,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// get decodes the page document for slug into out. A missing document
// is not an error; out is left zero-valued and the caller's Normalize
// fills in usable defaults.
func (s *Store) get(ctx context.Context, slug string, out any) error {
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return err
}

// GetAbout returns the about page content.
func (s *Store) GetAbout(ctx context.Context) (models.AboutPage, error) {
	var page models.AboutPage
	if err := s.get(ctx, models.ContentSlugAbout, &page); err != nil {
		return models.AboutPage{}, err
	}
	page.Normalize()
	return page, nil
}

// GetActivities returns the activities page content.
func (s *Store) GetActivities(ctx context.Context) (models.ActivitiesPage, error) {
	var page models.ActivitiesPage
	if err := s.get(ctx, models.ContentSlugActivities, &page); err != nil {
		return models.ActivitiesPage{}, err
	}
	page.Normalize()
	return page, nil
}

// GetAcademics returns the academics page content.
func (s *Store) GetAcademics(ctx context.Context) (models.AcademicsPage, error) {
	var page models.AcademicsPage
	if err := s.get(ctx, models.ContentSlugAcademics, &page); err != nil {
		return models.AcademicsPage{}, err
	}
	page.Normalize()
	return page, nil
}

// GetAdmission returns the admission page content.
func (s *Store) GetAdmission(ctx context.Context) (models.AdmissionPage, error) {
	var page models.AdmissionPage
	if err := s.get(ctx, models.ContentSlugAdmission, &page); err != nil {
		return models.AdmissionPage{}, err
	}
	page.Normalize()
	return page, nil
}

// GetFacilities returns the facilities page content.
func (s *Store) GetFacilities(ctx context.Context) (models.FacilitiesPage, error) {
	var page models.FacilitiesPage
	if err := s.get(ctx, models.ContentSlugFacilities, &page); err != nil {
		return models.FacilitiesPage{}, err
	}
	page.Normalize()
	return page, nil
}

// Exists checks if a page document has been created for the slug.
func (s *Store) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
