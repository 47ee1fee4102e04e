// internal/app/store/highlights/highlightstore.go
package highlightstore

import (
	"context"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the highlights collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new highlight store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("highlights")}
}

// Insert adds a highlight card. New cards go to the end of the display
// order unless an explicit order was set.
func (s *Store) Insert(ctx context.Context, h models.Highlight) (models.Highlight, error) {
	h.ID = primitive.NewObjectID()
	if h.Order == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{})
		if err != nil {
			return models.Highlight{}, err
		}
		h.Order = int(n) + 1
	}

	if _, err := s.c.InsertOne(ctx, h); err != nil {
		return models.Highlight{}, err
	}
	return h, nil
}

// Update rewrites a highlight's editable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, h models.Highlight) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"title":       h.Title,
			"description": h.Description,
			"icon":        h.Icon,
			"order":       h.Order,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListAll returns every highlight in display order.
func (s *Store) ListAll(ctx context.Context) ([]models.Highlight, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var hs []models.Highlight
	if err := cur.All(ctx, &hs); err != nil {
		return nil, err
	}
	return hs, nil
}

// GetByID returns a single highlight.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Highlight, error) {
	var h models.Highlight
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Delete removes a highlight by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of highlights.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
