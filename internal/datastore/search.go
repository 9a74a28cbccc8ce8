// search.go: query composition for the upload listing
package datastore

import (
	"fmt"
	"strings"
)

// Sort keys accepted by SearchUploads. Anything else falls back to the
// default rather than erroring.
const (
	SortByFilename   = "filename"
	SortByUser       = "user"
	SortByUploadDate = "upload_date"
	SortByPixelCount = "pixel_count"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// allowedSortKeys guards the ORDER BY column against injection; only
// column names from this set ever reach the SQL string.
var allowedSortKeys = map[string]bool{
	SortByFilename:   true,
	SortByUser:       true,
	SortByUploadDate: true,
	SortByPixelCount: true,
}

// UploadFilter describes the optional filters and sorting for the upload
// listing. Zero values mean "no filter".
type UploadFilter struct {
	User      string // case-insensitive substring match on user
	Filename  string // case-insensitive substring match on filename
	MinPixels *int64 // inclusive lower bound on pixel_count
	MaxPixels *int64 // inclusive upper bound on pixel_count
	SortBy    string // one of the SortBy constants, default upload_date
	Order     string // "asc" or "desc", default desc
}

// SortColumn returns the effective sort column after applying the
// allow-list fallback.
func (f *UploadFilter) SortColumn() string {
	if allowedSortKeys[f.SortBy] {
		return f.SortBy
	}
	return SortByUploadDate
}

// SortDirection returns the effective sort direction.
func (f *UploadFilter) SortDirection() string {
	if strings.EqualFold(f.Order, OrderAsc) {
		return "ASC"
	}
	return "DESC"
}

// SearchUploads returns the uploads matching the filter, sorted per the
// filter's sort key and direction.
func (ds *DataStore) SearchUploads(filter UploadFilter) ([]ImageUpload, error) {
	query := ds.DB.Model(&ImageUpload{})

	if filter.User != "" {
		query = query.Where("LOWER(user) LIKE ?", "%"+strings.ToLower(filter.User)+"%")
	}
	if filter.Filename != "" {
		query = query.Where("LOWER(filename) LIKE ?", "%"+strings.ToLower(filter.Filename)+"%")
	}
	if filter.MinPixels != nil {
		query = query.Where("pixel_count >= ?", *filter.MinPixels)
	}
	if filter.MaxPixels != nil {
		query = query.Where("pixel_count <= ?", *filter.MaxPixels)
	}

	query = query.Order(fmt.Sprintf("%s %s", filter.SortColumn(), filter.SortDirection()))

	var uploads []ImageUpload
	if err := query.Find(&uploads).Error; err != nil {
		return nil, fmt.Errorf("searching uploads: %w", err)
	}
	return uploads, nil
}
