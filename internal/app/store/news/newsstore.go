// internal/app/store/news/newsstore.go
package newsstore

import (
	"context"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the news collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new news store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("news")}
}

// Insert adds a news item. Date defaults to now when unset.
func (s *Store) Insert(ctx context.Context, item models.NewsItem) (models.NewsItem, error) {
	item.ID = primitive.NewObjectID()
	if item.Date.IsZero() {
		item.Date = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, item); err != nil {
		return models.NewsItem{}, err
	}
	return item, nil
}

// ListAll returns every news item, newest first. Urgent items sort
// ahead of the rest.
func (s *Store) ListAll(ctx context.Context) ([]models.NewsItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "urgent", Value: -1},
		{Key: "date", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.NewsItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCategory returns the items of one category, newest first.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.NewsItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "urgent", Value: -1},
		{Key: "date", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.NewsItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListRecent returns the latest items for the home page strip.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.NewsItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns a single news item.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.NewsItem, error) {
	var item models.NewsItem
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

// Count returns the total number of news items.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
