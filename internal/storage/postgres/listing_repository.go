package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const listingColumns = `id, seller_id, seller_name, title, description, price, category, college, image_url, status, created_at, sold_at`

func (r *ListingRepository) CreateListing(ctx context.Context, listing domain.Listing) error {
	const stmt = `
INSERT INTO listings (id, seller_id, seller_name, title, description, price, category, college, image_url, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		listing.ID,
		listing.SellerID,
		listing.SellerName,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.College,
		listing.ImageURL,
		listing.Status,
		listing.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Listing{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Listing{}, domain.ErrListingNotFound
		}
		return domain.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

// SearchListings filters and sorts in SQL; conditions are appended only for
// the filter fields actually set.
func (r *ListingRepository) SearchListings(ctx context.Context, filter app.ListingFilter) ([]domain.Listing, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + listingColumns + ` FROM listings WHERE status = 'active'`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		sb.WriteString(` AND (title ILIKE ` + p + ` OR description ILIKE ` + p + `)`)
	}
	if filter.Category != "" {
		sb.WriteString(` AND category = ` + arg(filter.Category))
	}
	if filter.College != "" {
		sb.WriteString(` AND college = ` + arg(filter.College))
	}
	if filter.MinPrice != nil {
		sb.WriteString(` AND price >= ` + arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		sb.WriteString(` AND price <= ` + arg(*filter.MaxPrice))
	}

	switch filter.Sort {
	case app.SortPriceAsc:
		sb.WriteString(` ORDER BY price ASC, created_at DESC`)
	case app.SortPriceDesc:
		sb.WriteString(` ORDER BY price DESC, created_at DESC`)
	default:
		sb.WriteString(` ORDER BY created_at DESC`)
	}

	rows, err := r.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE seller_id = $1 ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, sellerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list by seller: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) MarkSold(ctx context.Context, id string, soldAt time.Time) error {
	const stmt = `UPDATE listings SET status = 'sold', sold_at = $2 WHERE id = $1 AND status = 'active'`

	tag, err := r.exec(ctx, stmt, id, soldAt)
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotActive
	}
	return nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var status string
	err := row.Scan(
		&l.ID, &l.SellerID, &l.SellerName, &l.Title, &l.Description, &l.Price,
		&l.Category, &l.College, &l.ImageURL, &status, &l.CreatedAt, &l.SoldAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Status = domain.ListingStatus(status)
	return l, nil
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var out []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

func (r *ListingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ListingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ListingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
