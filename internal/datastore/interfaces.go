// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/tastebase/tastebase/internal/conf"
	"github.com/tastebase/tastebase/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the relational store.
type Interface interface {
	Open() error
	Close() error

	// Restaurant directory
	SaveRestaurant(restaurant *Restaurant) error
	GetRestaurant(id string) (Restaurant, error)
	DeleteRestaurant(id string) error
	GetReviews(restaurantID string) ([]Review, error)
	SaveReview(review *Review) error

	// Image upload ledger
	SaveUpload(upload *ImageUpload, colors []ImageColor) error
	GetUpload(id string) (ImageUpload, error)
	DeleteUpload(id string) error
	SearchUploads(filter UploadFilter) ([]ImageUpload, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Database.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Database.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		// Settings validation rejects this combination before we get here
		return nil
	}
}

// SaveRestaurant inserts a new restaurant row.
func (ds *DataStore) SaveRestaurant(restaurant *Restaurant) error {
	if err := ds.DB.Create(restaurant).Error; err != nil {
		return errors.New(fmt.Errorf("saving restaurant: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// GetRestaurant retrieves a restaurant by its ID.
func (ds *DataStore) GetRestaurant(id string) (Restaurant, error) {
	restaurantID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return Restaurant{}, fmt.Errorf("converting ID to integer: %w", err)
	}

	var restaurant Restaurant
	if err := ds.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Restaurant{}, errors.New(err).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Context("restaurant_id", restaurantID).
				Build()
		}
		return Restaurant{}, fmt.Errorf("getting restaurant with ID %d: %w", restaurantID, err)
	}
	return restaurant, nil
}

// DeleteRestaurant removes a restaurant and its reviews in one transaction.
func (ds *DataStore) DeleteRestaurant(id string) error {
	restaurantID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("converting ID to integer: %w", err)
	}

	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&Review{}).Error; err != nil {
			return fmt.Errorf("deleting reviews for restaurant ID %d: %w", restaurantID, err)
		}
		if err := tx.Delete(&Restaurant{}, restaurantID).Error; err != nil {
			return fmt.Errorf("deleting restaurant with ID %d: %w", restaurantID, err)
		}
		return nil
	})
}

// GetReviews returns all reviews for a restaurant, newest first.
func (ds *DataStore) GetReviews(restaurantID string) ([]Review, error) {
	id, err := strconv.ParseUint(restaurantID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("converting ID to integer: %w", err)
	}

	var reviews []Review
	if err := ds.DB.Where("restaurant_id = ?", id).
		Order("review_date DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("getting reviews for restaurant ID %d: %w", id, err)
	}
	return reviews, nil
}

// SaveReview inserts a new review row. The rating bounds are enforced by the
// Review model's BeforeSave hook.
func (ds *DataStore) SaveReview(review *Review) error {
	if err := ds.DB.Create(review).Error; err != nil {
		if errors.HasCategory(err, errors.CategoryValidation) {
			return err
		}
		return errors.New(fmt.Errorf("saving review: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("restaurant_id", review.RestaurantID).
			Build()
	}
	return nil
}

// SaveUpload stores an upload and its color records as a single transaction.
// On any failure the transaction is rolled back and neither the parent nor
// any child row is persisted.
func (ds *DataStore) SaveUpload(upload *ImageUpload, colors []ImageColor) error {
	tx := ds.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("starting transaction: %w", tx.Error)
	}

	// Roll back the transaction if a panic occurs
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Omit the association so GORM does not auto-save colors from the
	// parent struct; children are created explicitly below.
	if err := tx.Omit("Colors").Create(upload).Error; err != nil {
		tx.Rollback()
		return errors.New(fmt.Errorf("saving upload: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	for i := range colors {
		colors[i].ImageID = upload.ID
		if err := tx.Create(&colors[i]).Error; err != nil {
			tx.Rollback()
			return errors.New(fmt.Errorf("saving color record: %w", err)).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("image_id", upload.ID).
				Build()
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetUpload retrieves an upload by its ID with its color records preloaded.
func (ds *DataStore) GetUpload(id string) (ImageUpload, error) {
	uploadID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return ImageUpload{}, fmt.Errorf("converting ID to integer: %w", err)
	}

	var upload ImageUpload
	if err := ds.DB.Preload("Colors").First(&upload, uploadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ImageUpload{}, errors.New(err).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Context("upload_id", uploadID).
				Build()
		}
		return ImageUpload{}, fmt.Errorf("getting upload with ID %d: %w", uploadID, err)
	}
	return upload, nil
}

// DeleteUpload removes an upload and its color records in one transaction.
func (ds *DataStore) DeleteUpload(id string) error {
	uploadID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("converting ID to integer: %w", err)
	}

	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", uploadID).Delete(&ImageColor{}).Error; err != nil {
			return fmt.Errorf("deleting color records for upload ID %d: %w", uploadID, err)
		}
		if err := tx.Delete(&ImageUpload{}, uploadID).Error; err != nil {
			return fmt.Errorf("deleting upload with ID %d: %w", uploadID, err)
		}
		return nil
	})
}
