// internal/domain/models/news.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News categories shown as filter tabs on the public page.
const (
	NewsCategoryAnnouncement = "Announcement"
	NewsCategoryEvent        = "Event"
	NewsCategoryAchievement  = "Achievement"
	NewsCategoryCircular     = "Circular"
)

// AllNewsCategories returns the category options for the admin form.
func AllNewsCategories() []string {
	return []string{
		NewsCategoryAnnouncement,
		NewsCategoryEvent,
		NewsCategoryAchievement,
		NewsCategoryCircular,
	}
}

// NewsItem is one news or notice entry. FullContent is admin-entered rich
// text and must be sanitized before display.
type NewsItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FullContent string             `bson:"full_content,omitempty" json:"full_content,omitempty"`
	Urgent      bool               `bson:"urgent" json:"urgent"`
	FileURL     string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
}

// HasAttachment reports whether a downloadable file accompanies the item.
func (n *NewsItem) HasAttachment() bool {
	return n.FileURL != ""
}
