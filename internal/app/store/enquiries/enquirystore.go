// internal/app/store/enquiries/enquirystore.go
package enquirystore

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

// Store provides access to the enquiries collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new enquiry store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enquiries")}
}

// Insert adds a submission from the public contact form. Status always
// starts as "new" regardless of what the caller set.
func (s *Store) Insert(ctx context.Context, enq models.Enquiry) (models.Enquiry, error) {
	enq.ID = primitive.NewObjectID()
	enq.Status = models.EnquiryStatusNew
	enq.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, enq); err != nil {
		return models.Enquiry{}, err
	}
	return enq, nil
}

// ListAll returns every enquiry, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Enquiry, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var enqs []models.Enquiry
	if err := cur.All(ctx, &enqs); err != nil {
		return nil, err
	}
	return enqs, nil
}

// ListByStatus returns the enquiries in one workflow state, newest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]models.Enquiry, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := s.c.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var enqs []models.Enquiry
	if err := cur.All(ctx, &enqs); err != nil {
		return nil, err
	}
	return enqs, nil
}

// GetByID returns a single enquiry.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enquiry, error) {
	var enq models.Enquiry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&enq); err != nil {
		return nil, err
	}
	return &enq, nil
}

// UpdateStatus moves an enquiry to another workflow state.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidEnquiryStatus(status) {
		return fmt.Errorf("unknown enquiry status %q", status)
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an enquiry by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of enquiries matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return s.c.CountDocuments(ctx, filter)
}

// CountNew returns how many enquiries await first contact.
func (s *Store) CountNew(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.EnquiryStatusNew})
}
