// internal/domain/models/fee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeeLevel is one row of the fee structure table. Color and Bg are theme
// class hints for the public card rendering; they are opaque to the server.
type FeeLevel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Level        string             `bson:"level" json:"level"`     // e.g. "Primary"
	Classes      string             `bson:"classes" json:"classes"` // e.g. "I - V"
	AdmissionFee string             `bson:"admission_fee" json:"admission_fee"`
	TuitionFee   string             `bson:"tuition_fee" json:"tuition_fee"`
	Color        string             `bson:"color,omitempty" json:"color,omitempty"`
	Bg           string             `bson:"bg,omitempty" json:"bg,omitempty"`
	PDFURL       string             `bson:"pdf_url,omitempty" json:"pdf_url,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasPDF reports whether a downloadable fee schedule is attached.
func (f *FeeLevel) HasPDF() bool {
	return f.PDFURL != ""
}
