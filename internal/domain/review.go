package domain

import "time"

// Review is a customer review of a business. Only active reviews count
// toward the rating aggregate.
type Review struct {
	ID         int64
	BusinessID int64
	Rating     int // 1-5
	Active     bool
	CreatedAt  time.Time
}

// RatingSummary is the live aggregate of a business's active reviews.
type RatingSummary struct {
	// Average is the mean active rating rounded to 1 decimal, 0.0 with no reviews.
	Average float64
	Count   int
}
