package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tastebase/tastebase/internal/datastore"
)

func intPtr(v int) *int { return &v }

func TestSummarize_NoReviews(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0.0, summary.AvgRating)
	assert.Equal(t, 0, summary.ReviewCount)
	assert.Equal(t, 0, summary.StarsPercent)
}

func TestSummarize_SingleFiveStar(t *testing.T) {
	summary := Summarize([]datastore.Review{{Rating: intPtr(5)}})
	assert.Equal(t, 5.0, summary.AvgRating)
	assert.Equal(t, 1, summary.ReviewCount)
	assert.Equal(t, 100, summary.StarsPercent)
}

func TestSummarize_MixedRatings(t *testing.T) {
	summary := Summarize([]datastore.Review{
		{Rating: intPtr(4)},
		{Rating: intPtr(2)},
		{Rating: intPtr(3)},
	})
	assert.InDelta(t, 3.0, summary.AvgRating, 1e-9)
	assert.Equal(t, 3, summary.ReviewCount)
	assert.Equal(t, 60, summary.StarsPercent)
}

func TestSummarize_UnsetRatingCountsAsZero(t *testing.T) {
	summary := Summarize([]datastore.Review{
		{Rating: intPtr(4)},
		{Rating: nil},
	})
	assert.InDelta(t, 2.0, summary.AvgRating, 1e-9)
	assert.Equal(t, 2, summary.ReviewCount)
	assert.Equal(t, 40, summary.StarsPercent)
}

func TestSummarize_RoundsPercent(t *testing.T) {
	// avg 1.666... -> 33.333...% -> 33
	summary := Summarize([]datastore.Review{
		{Rating: intPtr(1)},
		{Rating: intPtr(2)},
		{Rating: intPtr(2)},
	})
	assert.Equal(t, 33, summary.StarsPercent)
}
