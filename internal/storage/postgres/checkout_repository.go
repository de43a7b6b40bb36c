package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puthiwat7/UniMart/internal/domain"
)

// CheckoutRepository backs the checkout engine: catalog and profile reads
// plus the settlement order records.
type CheckoutRepository struct {
	pool     *pgxpool.Pool
	listings *ListingRepository
	users    *UserRepository
}

func NewCheckoutRepository(pool *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{
		pool:     pool,
		listings: NewListingRepository(pool),
		users:    NewUserRepository(pool),
	}
}

func (r *CheckoutRepository) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	return r.listings.GetListing(ctx, id)
}

func (r *CheckoutRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.users.GetUser(ctx, id)
}

const orderColumns = `id, listing_id, buyer_id, item_title, display_price, seller_label, delivery_college, delivery_building, notes, reference_code, status, created_at`

func (r *CheckoutRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, listing_id, buyer_id, item_title, display_price, seller_label, delivery_college, delivery_building, notes, reference_code, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, stmt,
		order.ID,
		order.ListingID,
		order.BuyerID,
		order.ItemTitle,
		order.DisplayPrice,
		order.SellerLabel,
		order.DeliveryCollege,
		order.DeliveryBuilding,
		order.Notes,
		order.ReferenceCode,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *CheckoutRepository) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, buyerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID, &o.ListingID, &o.BuyerID, &o.ItemTitle, &o.DisplayPrice, &o.SellerLabel,
			&o.DeliveryCollege, &o.DeliveryBuilding, &o.Notes, &o.ReferenceCode, &status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}
