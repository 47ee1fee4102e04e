// internal/app/store/gallery/gallerystore.go
package gallerystore

import (
	"context"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the gallery collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new gallery store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("gallery")}
}

// Insert adds an item to the gallery.
func (s *Store) Insert(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now().UTC()
	if item.Type == "" {
		item.Type = models.GalleryTypeImage
	}

	if _, err := s.c.InsertOne(ctx, item); err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

// ListAll returns every gallery item, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.GalleryItem, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.GalleryItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCategory returns the items of one category, newest first.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.GalleryItem, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := s.c.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.GalleryItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Categories returns the distinct categories present in the gallery.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	raw, err := s.c.Distinct(ctx, "category", bson.M{"category": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	cats := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			cats = append(cats, str)
		}
	}
	return cats, nil
}

// GetByID returns a single gallery item.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of gallery items.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
