// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the site_settings collection.
// There is a single settings document per deployment.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

// Get returns the site settings.
// If no settings exist, returns default settings.
func (s *Store) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	// Use singleton filter - there's only one settings document
	filter := bson.M{"singleton": true}
	err := s.c.FindOne(ctx, filter).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		// Return default settings
		return &models.SiteSettings{
			SchoolName:   models.DefaultSchoolName,
			WorkingHours: models.DefaultWorkingHours,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save updates the site settings.
// Uses upsert so it works whether settings exist or not.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings) error {
	now := time.Now().UTC()
	settings.UpdatedAt = &now

	// Use singleton filter
	filter := bson.M{"singleton": true}
	update := bson.M{
		"$set": bson.M{
			"singleton":       true,
			"school_name":     settings.SchoolName,
			"address":         settings.Address,
			"phone":           settings.Phone,
			"email":           settings.Email,
			"working_hours":   settings.WorkingHours,
			"facebook":        settings.Facebook,
			"instagram":       settings.Instagram,
			"youtube":         settings.YouTube,
			"twitter":         settings.Twitter,
			"logo_path":       settings.LogoPath,
			"logo_name":       settings.LogoName,
			"updated_at":      settings.UpdatedAt,
			"updated_by_id":   settings.UpdatedByID,
			"updated_by_name": settings.UpdatedByName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Exists checks if settings have been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	filter := bson.M{"singleton": true}
	count, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateInput holds the fields for updating settings. Logo fields are
// only written when a new file was uploaded.
type UpdateInput struct {
	SchoolName   string
	Address      string
	Phone        string
	Email        string
	WorkingHours string
	Facebook     string
	Instagram    string
	YouTube      string
	Twitter      string
	LogoPath     *string
	LogoName     *string
}

// Upsert updates or inserts site settings from UpdateInput.
func (s *Store) Upsert(ctx context.Context, input UpdateInput) error {
	now := time.Now().UTC()

	set := bson.M{
		"singleton":     true,
		"school_name":   input.SchoolName,
		"address":       input.Address,
		"phone":         input.Phone,
		"email":         input.Email,
		"working_hours": input.WorkingHours,
		"facebook":      input.Facebook,
		"instagram":     input.Instagram,
		"youtube":       input.YouTube,
		"twitter":       input.Twitter,
		"updated_at":    now,
	}
	if input.LogoPath != nil {
		set["logo_path"] = *input.LogoPath
	}
	if input.LogoName != nil {
		set["logo_name"] = *input.LogoName
	}

	filter := bson.M{"singleton": true}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}
