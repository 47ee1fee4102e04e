// internal/domain/models/enquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry workflow states.
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusResolved  = "resolved"
)

// AllEnquiryStatuses returns the workflow states in progression order.
func AllEnquiryStatuses() []string {
	return []string{EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusResolved}
}

// IsValidEnquiryStatus checks if a status is recognized.
func IsValidEnquiryStatus(s string) bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusResolved:
		return true
	}
	return false
}

// Enquiry is a message submitted through the public contact form.
// New submissions always start in status "new".
type Enquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
