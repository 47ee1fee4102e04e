// internal/app/store/heroslides/heroslidestore.go
package heroslidestore

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

// Store provides access to the hero_slides collection. Slides for the
// home carousel and uploaded brand logos share the collection and are
// told apart by section.
type Store struct {
	c *mongo.Collection
}

// New creates a new hero slide store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hero_slides")}
}

// Insert adds a slide to its section.
func (s *Store) Insert(ctx context.Context, slide models.HeroSlide) (models.HeroSlide, error) {
	if !models.IsValidHeroSection(slide.Section) {
		return models.HeroSlide{}, fmt.Errorf("unknown hero section %q", slide.Section)
	}
	slide.ID = primitive.NewObjectID()
	slide.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, slide); err != nil {
		return models.HeroSlide{}, err
	}
	return slide, nil
}

// ListBySection returns the slides for one section in display order.
func (s *Store) ListBySection(ctx context.Context, section string) ([]models.HeroSlide, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := s.c.Find(ctx, bson.M{"section": section}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var slides []models.HeroSlide
	if err := cur.All(ctx, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

// GetByID returns a single slide.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HeroSlide, error) {
	var slide models.HeroSlide
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&slide); err != nil {
		return nil, err
	}
	return &slide, nil
}

// Delete removes a slide by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountBySection returns how many slides a section holds.
func (s *Store) CountBySection(ctx context.Context, section string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"section": section})
}
