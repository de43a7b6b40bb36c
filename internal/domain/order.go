package domain

import "time"

type OrderStatus string

const (
	// OrderStatusPendingVerification means the buyer asserted payment and
	// a human will reconcile the transfer against the reference code.
	OrderStatusPendingVerification OrderStatus = "pending_verification"
	OrderStatusVerified            OrderStatus = "verified"
	OrderStatusRejected            OrderStatus = "rejected"
)

// Order is the settlement record written when a buyer confirms payment.
// It carries the intent's snapshot so reconciliation does not depend on the
// listing still existing unchanged.
type Order struct {
	ID               string
	ListingID        string
	BuyerID          string
	ItemTitle        string
	DisplayPrice     float64
	SellerLabel      string
	DeliveryCollege  string
	DeliveryBuilding string
	Notes            string
	ReferenceCode    string
	Status           OrderStatus
	CreatedAt        time.Time
}
