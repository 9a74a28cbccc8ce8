// model.go this code defines the data model for the application
package datastore

import (
	"time"

	"gorm.io/gorm"

	"github.com/tastebase/tastebase/internal/errors"
)

// Restaurant represents a single restaurant in the directory
type Restaurant struct {
	ID            uint     `gorm:"primaryKey"`
	Name          string   `gorm:"type:varchar(50)"`
	StreetAddress string   `gorm:"type:varchar(50)"`
	Description   string   `gorm:"type:varchar(250)"`
	Reviews       []Review `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"` // One-to-many relationship with cascade delete
}

// Review represents a user's star review of a restaurant. Rows are
// append-only, ReviewDate is set at creation and never updated.
type Review struct {
	ID           uint   `gorm:"primaryKey"`
	RestaurantID uint   `gorm:"index;not null;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;foreignKey:RestaurantID;references:ID"` // Foreign key to associate with Restaurant
	UserName     string `gorm:"type:varchar(30)"`
	Rating       *int   // 1-5, or nil when the reviewer left no rating
	ReviewText   string `gorm:"type:varchar(500)"`
	ReviewDate   time.Time
}

// BeforeSave enforces the rating bounds at the model level.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return errors.Newf("rating %d out of range, must be between 1 and 5", *r.Rating).
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// ImageUpload represents one ingested image file in the upload ledger
type ImageUpload struct {
	ID         uint         `gorm:"primaryKey"`
	Filename   string       `gorm:"type:varchar(255);not null;index:idx_image_uploads_filename"`
	User       string       `gorm:"type:varchar(255);not null;index:idx_image_uploads_user"`
	PixelCount int64        `gorm:"not null"` // sum of child color counts at creation time
	UploadDate time.Time    `gorm:"not null;index:idx_image_uploads_upload_date"`
	ImagePath  string       // path of the stored file, relative to the upload root
	Colors     []ImageColor `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"` // One-to-many relationship with cascade delete
}

// ImageColor represents a dominant-color histogram entry for an upload.
// Rows are created in one batch with their parent and never modified.
type ImageColor struct {
	ID      uint  `gorm:"primaryKey"`
	ImageID uint  `gorm:"index;not null;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;foreignKey:ImageID;references:ID"` // Foreign key to associate with ImageUpload
	R       uint8 // red channel value 0-255
	G       uint8 // green channel value 0-255
	B       uint8 // blue channel value 0-255
	Count   int64 // number of pixels with this exact color
}
