// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	contentstore "github.com/brightland/schoolsite/internal/app/store/content"
	settingsstore "github.com/brightland/schoolsite/internal/app/store/settings"
	userstore "github.com/brightland/schoolsite/internal/app/store/users"
	"github.com/brightland/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeed holds the credentials for the initial admin account,
// taken from configuration.
type AdminSeed struct {
	LoginID  string
	Password string
	Name     string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, admin AdminSeed) error {
	if err := seedAdmin(ctx, db, logger, admin); err != nil {
		return err
	}
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	if err := seedContent(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the initial admin account when no users exist.
// If the configured login ID or password is blank, seeding is skipped
// so a fresh database never gets a guessable account.
func seedAdmin(ctx context.Context, db *mongo.Database, logger *zap.Logger, admin AdminSeed) error {
	store := userstore.New(db)

	count, err := store.Count(ctx, bson.M{})
	if err != nil {
		logger.Error("failed to count users", zap.Error(err))
		return err
	}
	if count > 0 {
		return nil
	}

	if admin.LoginID == "" || admin.Password == "" {
		logger.Warn("no users exist and seed_admin_login_id/seed_admin_password are unset; skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}

	_, err = store.Create(ctx, models.User{
		FullName:     name,
		LoginID:      &admin.LoginID,
		PasswordHash: &hashStr,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		logger.Error("failed to seed admin user", zap.Error(err))
		return err
	}
	logger.Info("seeded initial admin user", zap.String("login_id", admin.LoginID))
	return nil
}

// seedSettings creates the site settings document if missing so the
// admin dashboard has something to edit on first run.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)

	exists, err := store.Exists(ctx)
	if err != nil {
		logger.Error("failed to check site settings", zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	err = store.Upsert(ctx, settingsstore.UpdateInput{
		SchoolName:   models.DefaultSchoolName,
		WorkingHours: models.DefaultWorkingHours,
	})
	if err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return err
	}
	logger.Info("seeded default site settings")
	return nil
}

// seedContent establishes the structured content document for each
// public page when one doesn't exist yet. Only the hero section is
// written; the model Normalize methods fill usable zero values for the
// remaining sections on read.
func seedContent(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := contentstore.New(db)

	defaults := []struct {
		slug string
		hero models.Hero
	}{
		{models.ContentSlugAbout, models.Hero{Title: "About Our School"}},
		{models.ContentSlugActivities, models.Hero{Title: "Student Activities"}},
		{models.ContentSlugAcademics, models.Hero{Title: "Academics"}},
		{models.ContentSlugAdmission, models.Hero{Title: "Admissions"}},
		{models.ContentSlugFacilities, models.Hero{Title: "Our Facilities"}},
	}

	for _, d := range defaults {
		exists, err := store.Exists(ctx, d.slug)
		if err != nil {
			logger.Error("failed to check content document",
				zap.String("slug", d.slug),
				zap.Error(err))
			return err
		}
		if exists {
			continue
		}
		if err := store.SaveSection(ctx, d.slug, "hero", d.hero); err != nil {
			logger.Error("failed to seed content document",
				zap.String("slug", d.slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded content document", zap.String("slug", d.slug))
	}

	return nil
}
