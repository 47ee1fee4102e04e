// internal/domain/models/highlight.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultHighlightIcon is used when a highlight names an icon that is
// not in the known set.
const DefaultHighlightIcon = "star"

// highlightIcons maps the icon keys offered in the admin editor to the
// CSS class rendered on the public site.
var highlightIcons = map[string]string{
	"star":      "icon-star",
	"book":      "icon-book",
	"trophy":    "icon-trophy",
	"globe":     "icon-globe",
	"users":     "icon-users",
	"flask":     "icon-flask",
	"music":     "icon-music",
	"shield":    "icon-shield",
	"bus":       "icon-bus",
	"computer":  "icon-computer",
	"library":   "icon-library",
	"sparkles":  "icon-sparkles",
	"heart":     "icon-heart",
	"lightbulb": "icon-lightbulb",
}

// HighlightIconKeys returns the icon keys offered to the editor, in a
// stable order.
func HighlightIconKeys() []string {
	return []string{
		"star", "book", "trophy", "globe", "users", "flask", "music",
		"shield", "bus", "computer", "library", "sparkles", "heart",
		"lightbulb",
	}
}

// HighlightIconClass resolves an icon key to its CSS class, falling
// back to the default icon for unknown keys.
func HighlightIconClass(key string) string {
	if cls, ok := highlightIcons[key]; ok {
		return cls
	}
	return highlightIcons[DefaultHighlightIcon]
}

// Highlight is one "why choose us" card shown on the home page.
type Highlight struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	Order       int                `bson:"order" json:"order"`
}

// IconClass returns the CSS class for the highlight's icon.
func (h *Highlight) IconClass() string { return HighlightIconClass(h.Icon) }
