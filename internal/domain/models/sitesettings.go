// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings holds school-wide contact and branding details that can
// be edited by admins. A single document per deployment.
type SiteSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	// Identity
	SchoolName string `bson:"school_name" json:"school_name"`

	// Contact details shown in the site header and footer
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	WorkingHours string `bson:"working_hours,omitempty" json:"working_hours,omitempty"`

	// Social links (empty means the icon is not rendered)
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`

	// Logo (file upload)
	LogoPath string `bson:"logo_path,omitempty" json:"logo_path,omitempty"` // Storage path for uploaded logo
	LogoName string `bson:"logo_name,omitempty" json:"logo_name,omitempty"` // Original filename

	// Audit fields
	UpdatedAt     *time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}

// HasLogo returns true if a logo has been uploaded.
func (s *SiteSettings) HasLogo() bool {
	return s.LogoPath != ""
}

// HasSocialLinks reports whether any social profile is configured.
func (s *SiteSettings) HasSocialLinks() bool {
	return s.Facebook != "" || s.Instagram != "" || s.YouTube != "" || s.Twitter != ""
}

// DefaultSchoolName is used when no settings document exists yet.
const DefaultSchoolName = "Brightland Public School"

// DefaultWorkingHours is the default office hours line.
const DefaultWorkingHours = "Mon - Sat: 8:00 AM - 2:00 PM"
