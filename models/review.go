package models

import (
	"encoding/json"
	"time"
)

// Review is a guest's rating and message. Each user has at most one.
type Review struct {
	ID           string
	UserID       string
	NameSnapshot string
	Rating       int
	Message      string
	ImageURL     *string
	Approved     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

// ReviewInput is the body of POST and PUT /api/reviews. Rating accepts
// both 4 and "4".
type ReviewInput struct {
	Message  string      `json:"message"`
	Rating   json.Number `json:"rating"`
	ImageURL string      `json:"imageUrl"`
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Name:      r.NameSnapshot,
		Rating:    r.Rating,
		Message:   r.Message,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// OwnReview is the caller's own review as returned by /api/auth/me.
type OwnReview struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewDefaults pre-fills the review form.
type ReviewDefaults struct {
	Rating   int     `json:"rating"`
	Message  string  `json:"message"`
	ImageURL *string `json:"imageUrl"`
}

func NewOwnReview(r Review) OwnReview {
	return OwnReview{
		ID:        r.ID,
		Rating:    r.Rating,
		Message:   r.Message,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// DefaultReviewRating pre-selects the rating of an empty form.
const DefaultReviewRating = 5

// NewReviewDefaults copies r into the form, or returns an empty form when r
// is nil.
func NewReviewDefaults(r *Review) ReviewDefaults {
	if r == nil {
		return ReviewDefaults{Rating: DefaultReviewRating}
	}
	return ReviewDefaults{Rating: r.Rating, Message: r.Message, ImageURL: r.ImageURL}
}
