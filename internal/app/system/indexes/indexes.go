// internal/app/system/indexes/indexes.go
package indexes

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureContent(ctx, db); err != nil {
		problems = append(problems, "content: "+err.Error())
	}
	if err := ensureSiteSettings(ctx, db); err != nil {
		problems = append(problems, "site_settings: "+err.Error())
	}
	if err := ensureHeroSlides(ctx, db); err != nil {
		problems = append(problems, "hero_slides: "+err.Error())
	}
	if err := ensureHighlights(ctx, db); err != nil {
		problems = append(problems, "highlights: "+err.Error())
	}
	if err := ensureGallery(ctx, db); err != nil {
		problems = append(problems, "gallery: "+err.Error())
	}
	if err := ensureNews(ctx, db); err != nil {
		problems = append(problems, "news: "+err.Error())
	}
	if err := ensureFees(ctx, db); err != nil {
		problems = append(problems, "fees: "+err.Error())
	}
	if err := ensureDisclosures(ctx, db); err != nil {
		problems = append(problems, "disclosures: "+err.Error())
	}
	if err := ensureTransferCertificates(ctx, db); err != nil {
		problems = append(problems, "transfer_certificates: "+err.Error())
	}
	if err := ensureEnquiries(ctx, db); err != nil {
		problems = append(problems, "enquiries: "+err.Error())
	}
	if err := ensureRateLimits(ctx, db); err != nil {
		problems = append(problems, "rate_limits: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				// Names aligned (or we don't care) → reuse
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique login identifier
		{
			Keys: bson.D{
				{Key: "login_id_ci", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_users_loginidci"),
		},

		// User list queries: role + status + name sort
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "status", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_status_fullnameci_id"),
		},
	})
}

func ensureContent(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("content")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique slug for each structured page (about, activities, ...)
		{
			Keys: bson.D{
				{Key: "slug", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_content_slug"),
		},
	})
}

func ensureSiteSettings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("site_settings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique singleton - only one settings document
		{
			Keys: bson.D{
				{Key: "singleton", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_sitesettings_singleton"),
		},
	})
}

func ensureHeroSlides(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("hero_slides")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Carousel and logo-strip listing in display order
		{
			Keys: bson.D{
				{Key: "section", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_heroslides_section_created"),
		},
	})
}

func ensureHighlights(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("highlights")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Display order on the home page
		{
			Keys: bson.D{
				{Key: "order", Value: 1},
			},
			Options: options.Index().SetName("idx_highlights_order"),
		},
	})
}

func ensureGallery(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("gallery")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Newest-first listing
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_gallery_created"),
		},
		// Category filter tabs
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_gallery_category_created"),
		},
	})
}

func ensureNews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("news")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Newest-first listing with urgent items pinned
		{
			Keys: bson.D{
				{Key: "urgent", Value: -1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("idx_news_urgent_date"),
		},
		// Category filter tabs
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("idx_news_category_date"),
		},
	})
}

func ensureFees(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("fees")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Level-ordered fee table
		{
			Keys: bson.D{
				{Key: "level", Value: 1},
			},
			Options: options.Index().SetName("idx_fees_level"),
		},
	})
}

func ensureDisclosures(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("disclosures")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Category tabs on the public disclosure page
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_disclosures_category_created"),
		},
	})
}

func ensureTransferCertificates(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("transfer_certificates")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Registration numbers are unique across all sessions
		{
			Keys: bson.D{
				{Key: "reg_no", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_tc_regno"),
		},
		// Public lookup path: reg_no + dob
		{
			Keys: bson.D{
				{Key: "reg_no", Value: 1},
				{Key: "dob", Value: 1},
			},
			Options: options.Index().SetName("idx_tc_regno_dob"),
		},
	})
}

func ensureEnquiries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("enquiries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Newest-first inbox listing
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_enquiries_created"),
		},
		// Status filter and "new" badge count
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_enquiries_status_created"),
		},
	})
}

func ensureRateLimits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("rate_limits")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique login_id for fast lookups
		{
			Keys: bson.D{
				{Key: "login_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_ratelimit_login_id"),
		},
		// TTL index on last_attempt - automatically clean up old records after 24 hours
		{
			Keys: bson.D{
				{Key: "last_attempt", Value: 1},
			},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_ratelimit_ttl"),
		},
	})
}
