// mock_datastore_test.go: testify mock of the datastore interface for
// handler tests.
package api

import (
	"github.com/stretchr/testify/mock"

	"github.com/tastebase/tastebase/internal/datastore"
)

type MockDataStore struct {
	mock.Mock
}

func (m *MockDataStore) Open() error  { return m.Called().Error(0) }
func (m *MockDataStore) Close() error { return m.Called().Error(0) }

func (m *MockDataStore) SaveRestaurant(restaurant *datastore.Restaurant) error {
	return m.Called(restaurant).Error(0)
}

func (m *MockDataStore) GetRestaurant(id string) (datastore.Restaurant, error) {
	args := m.Called(id)
	return args.Get(0).(datastore.Restaurant), args.Error(1)
}

func (m *MockDataStore) DeleteRestaurant(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockDataStore) GetReviews(restaurantID string) ([]datastore.Review, error) {
	args := m.Called(restaurantID)
	return args.Get(0).([]datastore.Review), args.Error(1)
}

func (m *MockDataStore) SaveReview(review *datastore.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockDataStore) SaveUpload(upload *datastore.ImageUpload, colors []datastore.ImageColor) error {
	return m.Called(upload, colors).Error(0)
}

func (m *MockDataStore) GetUpload(id string) (datastore.ImageUpload, error) {
	args := m.Called(id)
	return args.Get(0).(datastore.ImageUpload), args.Error(1)
}

func (m *MockDataStore) DeleteUpload(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockDataStore) SearchUploads(filter datastore.UploadFilter) ([]datastore.ImageUpload, error) {
	args := m.Called(filter)
	return args.Get(0).([]datastore.ImageUpload), args.Error(1)
}
