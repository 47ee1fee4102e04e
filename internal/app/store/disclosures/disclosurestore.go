// internal/app/store/disclosures/disclosurestore.go
package disclosurestore

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

// Store provides access to the disclosures collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new disclosure store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("disclosures")}
}

// Insert adds a disclosure entry.
func (s *Store) Insert(ctx context.Context, doc models.DisclosureDoc) (models.DisclosureDoc, error) {
	if !models.IsValidDisclosureCategory(doc.Category) {
		return models.DisclosureDoc{}, fmt.Errorf("unknown disclosure category %q", doc.Category)
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.DisclosureDoc{}, err
	}
	return doc, nil
}

// ListAll returns every disclosure entry, oldest first so the public
// tables keep a stable order.
func (s *Store) ListAll(ctx context.Context) ([]models.DisclosureDoc, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.DisclosureDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByCategory returns the entries of one category, oldest first.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.DisclosureDoc, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := s.c.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.DisclosureDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID returns a single disclosure entry.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.DisclosureDoc, error) {
	var doc models.DisclosureDoc
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes an entry by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of disclosure entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
