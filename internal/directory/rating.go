// Package directory contains read-time derived values for the restaurant
// directory. Nothing here is cached or stored; every render recomputes from
// raw review rows.
package directory

import (
	"math"

	"github.com/tastebase/tastebase/internal/datastore"
)

// RatingSummary is the derived rating aggregate for one restaurant.
type RatingSummary struct {
	AvgRating    float64 // arithmetic mean of ratings, 0 with no reviews
	ReviewCount  int     // number of reviews
	StarsPercent int     // round(avg/5*100), 0 with no reviews, for display
}

// Summarize computes the rating aggregate from raw review rows. A review
// without a rating counts toward ReviewCount and contributes 0 to the mean.
func Summarize(reviews []datastore.Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{}
	}

	var total int
	for i := range reviews {
		if reviews[i].Rating != nil {
			total += *reviews[i].Rating
		}
	}

	avg := float64(total) / float64(len(reviews))
	return RatingSummary{
		AvgRating:    avg,
		ReviewCount:  len(reviews),
		StarsPercent: int(math.Round(avg / 5.0 * 100)),
	}
}
