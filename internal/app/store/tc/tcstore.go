// internal/app/store/tc/tcstore.go
package tcstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brightland/schoolsite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateRegNo is returned when a certificate with the same
// registration number already exists.
var ErrDuplicateRegNo = errors.New("a certificate with this registration number already exists")

// Store provides access to the transfer_certificates collection.
// Registration numbers are unique (enforced by index).
type Store struct {
	c *mongo.Collection
}

// New creates a new transfer certificate store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("transfer_certificates")}
}

// Insert adds a certificate record. The registration number is
// trimmed and upper-cased so lookups are case-insensitive.
func (s *Store) Insert(ctx context.Context, rec models.TCRecord) (models.TCRecord, error) {
	rec.ID = primitive.NewObjectID()
	rec.RegNo = NormalizeRegNo(rec.RegNo)
	rec.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		if wafflemongo.IsDup(err) {
			return models.TCRecord{}, ErrDuplicateRegNo
		}
		return models.TCRecord{}, err
	}
	return rec, nil
}

// Lookup finds a certificate by registration number and date of birth.
// Both must match; returns mongo.ErrNoDocuments when they don't.
func (s *Store) Lookup(ctx context.Context, regNo, dob string) (*models.TCRecord, error) {
	var rec models.TCRecord
	filter := bson.M{
		"reg_no": NormalizeRegNo(regNo),
		"dob":    strings.TrimSpace(dob),
	}
	if err := s.c.FindOne(ctx, filter).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll returns every certificate, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.TCRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.TCRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetByID returns a single certificate record.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TCRecord, error) {
	var rec models.TCRecord
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a certificate by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of certificates.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// NormalizeRegNo canonicalizes a registration number for storage and lookup.
func NormalizeRegNo(regNo string) string {
	return strings.ToUpper(strings.TrimSpace(regNo))
}
