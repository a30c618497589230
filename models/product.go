package models

import (
	"encoding/json"
	"time"
)

// Product is the single event page edited from the admin screen.
type Product struct {
	ID           string
	Title        string
	Subtitle     *string
	Description  string
	HeroImageURL *string
	Gallery      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// ProductUpdate is the admin PUT body. Missing strings are treated as empty.
// Gallery is kept raw: anything but an array of strings is filtered later.
type ProductUpdate struct {
	Title        string          `json:"title"`
	Subtitle     *string         `json:"subtitle"`
	Description  string          `json:"description"`
	HeroImageURL *string         `json:"heroImageUrl"`
	Gallery      json.RawMessage `json:"gallery"`
}

// ProductResponse is the public view of the product.
type ProductResponse struct {
	Title        string   `json:"title"`
	Subtitle     *string  `json:"subtitle"`
	Description  string   `json:"description"`
	HeroImageURL *string  `json:"heroImageUrl"`
	Gallery      []string `json:"gallery"`
}

// NewProductResponse converts p; the gallery is never null.
func NewProductResponse(p Product) ProductResponse {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return ProductResponse{
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Description:  p.Description,
		HeroImageURL: p.HeroImageURL,
		Gallery:      gallery,
	}
}
