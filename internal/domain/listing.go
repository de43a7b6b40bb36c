package domain

import "time"

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
)

// Listing is a single catalog item offered by a seller.
type Listing struct {
	ID          string
	SellerID    string
	SellerName  string
	Title       string
	Description string
	Price       float64
	Category    string
	College     string
	ImageURL    string
	Status      ListingStatus
	CreatedAt   time.Time
	SoldAt      *time.Time
}
