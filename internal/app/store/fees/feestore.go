// internal/app/store/fees/feestore.go
package feestore

import (
	"context"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the fees collection. One document per
// academic level; saving an existing level replaces its row.
type Store struct {
	c *mongo.Collection
}

// New creates a new fee store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("fees")}
}

// Upsert creates or updates a fee row. A zero ID inserts a new level;
// a known ID rewrites that row in place.
func (s *Store) Upsert(ctx context.Context, fee models.FeeLevel) (primitive.ObjectID, error) {
	now := time.Now().UTC()

	id := fee.ID
	if id.IsZero() {
		id = primitive.NewObjectID()
	}

	set := bson.M{
		"level":         fee.Level,
		"classes":       fee.Classes,
		"admission_fee": fee.AdmissionFee,
		"tuition_fee":   fee.TuitionFee,
		"color":         fee.Color,
		"bg":            fee.Bg,
		"updated_at":    now,
	}
	if fee.PDFURL != "" {
		set["pdf_url"] = fee.PDFURL
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id": id,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update, opts); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// ListAll returns every fee row in level order.
func (s *Store) ListAll(ctx context.Context) ([]models.FeeLevel, error) {
	opts := options.Find().SetSort(bson.M{"level": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var fees []models.FeeLevel
	if err := cur.All(ctx, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}

// GetByID returns a single fee row.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FeeLevel, error) {
	var fee models.FeeLevel
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

// Delete removes a fee row by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of fee rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
