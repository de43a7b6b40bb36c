package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puthiwat7/UniMart/internal/domain"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, listingID string) error {
	const stmt = `
INSERT INTO favorites (user_id, listing_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id, listing_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, stmt, userID, listingID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListFavorites(ctx context.Context, userID string) ([]domain.Listing, error) {
	query := `
SELECT ` + prefixedListingColumns("l") + `
FROM favorites f
JOIN listings l ON l.id = f.listing_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

func prefixedListingColumns(alias string) string {
	cols := []string{"id", "seller_id", "seller_name", "title", "description", "price", "category", "college", "image_url", "status", "created_at", "sold_at"}
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}
