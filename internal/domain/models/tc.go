// internal/domain/models/tc.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transfer certificate file kinds.
const (
	TCFilePDF   = "pdf"
	TCFileImage = "image"
)

// TCRecord is an issued transfer certificate. RegNo is unique across
// the collection; lookups match RegNo plus date of birth.
type TCRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentName string             `bson:"student_name" json:"student_name"`
	Session     string             `bson:"session" json:"session"`
	RegNo       string             `bson:"reg_no" json:"reg_no"`
	DOB         string             `bson:"dob" json:"dob"`
	FileType    string             `bson:"file_type" json:"file_type"`
	FileURL     string             `bson:"file_url" json:"file_url"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// IsPDF reports whether the stored certificate is a PDF.
func (t *TCRecord) IsPDF() bool { return t.FileType == TCFilePDF }
