package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a rating left by a user for a product bought in a delivered order.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	OrderID   uuid.UUID `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Images    []Image   `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether the review was written by userID.
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	ProductID *uuid.UUID
	UserID    *uuid.UUID
	Page      PageRequest
}

// RatingStats is the live review aggregate of one product.
type RatingStats struct {
	Average float64
	Count   int64
}

// Rounded returns the average rounded to one decimal place, 0 without reviews.
func (s RatingStats) Rounded() float64 {
	if s.Count == 0 {
		return 0
	}

	return math.Round(s.Average*10) / 10
}
