package app

import (
	"context"
	"time"

	"github.com/puthiwat7/UniMart/internal/clock"
	"github.com/puthiwat7/UniMart/internal/domain"
)

type ListingRepository interface {
	CreateListing(ctx context.Context, listing domain.Listing) error
	GetListing(ctx context.Context, id string) (domain.Listing, error)
	SearchListings(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	MarkSold(ctx context.Context, id string, soldAt time.Time) error
}

// SellerReader resolves the seller account so listings carry a denormalized
// seller name.
type SellerReader interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

type ListingFilter struct {
	Query    string
	Category string
	College  string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

type ListingService struct {
	repo  ListingRepository
	users SellerReader
	clock clock.Clock
}

func NewListingService(repo ListingRepository, users SellerReader, clk clock.Clock) *ListingService {
	return &ListingService{
		repo:  repo,
		users: users,
		clock: clk,
	}
}

type CreateListingInput struct {
	SellerID    string
	Title       string
	Description string
	Price       float64
	Category    string
	College     string
	ImageURL    string
}

func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (domain.Listing, error) {
	if in.Title == "" {
		return domain.Listing{}, domain.ErrTitleRequired
	}
	if in.Price <= 0 {
		return domain.Listing{}, domain.ErrInvalidPrice
	}
	if in.College != "" && domain.BuildingsFor(in.College) == nil {
		return domain.Listing{}, domain.ErrUnknownCollege
	}

	seller, err := s.users.GetUser(ctx, in.SellerID)
	if err != nil {
		return domain.Listing{}, err
	}

	listing := domain.Listing{
		ID:          newID(),
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		College:     in.College,
		ImageURL:    in.ImageURL,
		Status:      domain.ListingStatusActive,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return domain.Listing{}, err
	}
	return listing, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (domain.Listing, error) {
	return s.repo.GetListing(ctx, id)
}

func (s *ListingService) Search(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	switch filter.Sort {
	case "", SortNewest:
		filter.Sort = SortNewest
	case SortPriceAsc, SortPriceDesc:
	default:
		filter.Sort = SortNewest
	}
	return s.repo.SearchListings(ctx, filter)
}

// Delete removes a listing; only the seller who posted it may do so.
func (s *ListingService) Delete(ctx context.Context, callerID, id string) error {
	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != callerID {
		return domain.ErrNotListingOwner
	}
	return s.repo.DeleteListing(ctx, id)
}

// MarkSold flips an active listing to sold, recording the sale time.
func (s *ListingService) MarkSold(ctx context.Context, callerID, id string) (domain.Listing, error) {
	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if listing.SellerID != callerID {
		return domain.Listing{}, domain.ErrNotListingOwner
	}
	if listing.Status != domain.ListingStatusActive {
		return domain.Listing{}, domain.ErrListingNotActive
	}

	soldAt := s.clock.Now()
	if err := s.repo.MarkSold(ctx, id, soldAt); err != nil {
		return domain.Listing{}, err
	}
	listing.Status = domain.ListingStatusSold
	listing.SoldAt = &soldAt
	return listing, nil
}

type SalesSummary struct {
	Listings []domain.Listing
	Total    int
	Active   int
	Sold     int
}

// MySales returns the seller's listings with active/sold tallies.
func (s *ListingService) MySales(ctx context.Context, sellerID string) (SalesSummary, error) {
	listings, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return SalesSummary{}, err
	}
	summary := SalesSummary{Listings: listings, Total: len(listings)}
	for _, l := range listings {
		switch l.Status {
		case domain.ListingStatusSold:
			summary.Sold++
		default:
			summary.Active++
		}
	}
	return summary, nil
}
