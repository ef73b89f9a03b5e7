package structs

import "time"

// Review is one customer review as served by the upstream API.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Author    string    `json:"author,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSummary wraps a product's reviews with aggregates.
type ReviewSummary struct {
	AverageRating float64  `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
	Reviews       []Review `json:"reviews"`
}

// ReviewEligibility reports whether the authenticated user may review a
// product.
type ReviewEligibility struct {
	CanReview      bool    `json:"can_review"`
	HasPurchased   bool    `json:"has_purchased"`
	ExistingReview *Review `json:"existing_review,omitempty"`
}

// AddReviewRequest is the body of POST /reviews/add.
type AddReviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
