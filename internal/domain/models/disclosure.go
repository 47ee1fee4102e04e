// internal/domain/models/disclosure.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Disclosure categories. General entries are plain key/value facts
// (affiliation number, trust name...); the other two carry a document.
const (
	DisclosureCategoryGeneral   = "general"
	DisclosureCategoryMandatory = "mandatory"
	DisclosureCategoryAcademic  = "academic"
)

// IsValidDisclosureCategory checks if a category is recognized.
func IsValidDisclosureCategory(c string) bool {
	switch c {
	case DisclosureCategoryGeneral, DisclosureCategoryMandatory, DisclosureCategoryAcademic:
		return true
	}
	return false
}

// DisclosureDoc is one public-disclosure entry. General-category entries
// set Value and no file; document categories set FileURL.
type DisclosureDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Category  string             `bson:"category" json:"category"`
	Value     string             `bson:"value,omitempty" json:"value,omitempty"`
	FileURL   string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsGeneral reports whether the entry is a plain key/value fact.
func (d *DisclosureDoc) IsGeneral() bool {
	return d.Category == DisclosureCategoryGeneral
}
