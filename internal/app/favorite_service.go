package app

import (
	"context"

	"github.com/puthiwat7/UniMart/internal/domain"
)

type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, listingID string) error
	RemoveFavorite(ctx context.Context, userID, listingID string) error
	ListFavorites(ctx context.Context, userID string) ([]domain.Listing, error)
}

// ListingReader is the catalog lookup favorites need to validate targets.
type ListingReader interface {
	GetListing(ctx context.Context, id string) (domain.Listing, error)
}

type FavoriteService struct {
	repo     FavoriteRepository
	listings ListingReader
}

func NewFavoriteService(repo FavoriteRepository, listings ListingReader) *FavoriteService {
	return &FavoriteService{repo: repo, listings: listings}
}

// Add marks a listing as a favorite. Adding twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID string) error {
	if _, err := s.listings.GetListing(ctx, listingID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, listingID)
}

func (s *FavoriteService) Remove(ctx context.Context, userID, listingID string) error {
	return s.repo.RemoveFavorite(ctx, userID, listingID)
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.repo.ListFavorites(ctx, userID)
}
