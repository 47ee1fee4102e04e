// internal/domain/models/media.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hero slide sections. Slides in the "hero" section rotate on the home
// page banner; "brand_logo" holds the logo strip images.
const (
	HeroSectionMain  = "hero"
	HeroSectionBrand = "brand_logo"
)

// IsValidHeroSection checks if a section name is recognized.
func IsValidHeroSection(s string) bool {
	return s == HeroSectionMain || s == HeroSectionBrand
}

// HeroSlide is one banner or brand-logo image. Display order is insertion
// order (created_at ascending).
type HeroSlide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Section   string             `bson:"section" json:"section"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Image     string             `bson:"image" json:"image"` // storage path or absolute URL
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Gallery media types.
const (
	GalleryTypeImage = "image"
	GalleryTypeVideo = "video"
)

// GalleryItem is one photo or video in the public gallery.
type GalleryItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Type      string             `bson:"type" json:"type"` // image or video
	FileURL   string             `bson:"file_url" json:"file_url"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsVideo reports whether the item renders as an embedded video.
func (g *GalleryItem) IsVideo() bool {
	return g.Type == GalleryTypeVideo
}
