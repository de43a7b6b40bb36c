package app

import (
	"context"
	"sync"

	"github.com/puthiwat7/UniMart/internal/clock"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// CheckoutRepository provides the external lookups and the settlement sink
// the checkout engine needs: the catalog, the buyer profile, and the order
// records written once a buyer asserts payment.
type CheckoutRepository interface {
	GetListing(ctx context.Context, id string) (domain.Listing, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
}

// Buyer-facing readiness messages, most relevant unmet condition first.
const (
	msgUploadQRFirst  = "Please upload your payment QR code in your profile first"
	msgSelectCollege  = "Please select your delivery college"
	msgSelectBuilding = "Please select your building"
)

// CheckoutService drives the order-payment workflow: at most one in-flight
// OrderIntent per buyer, gated on delivery details and a payment QR on
// file, expiring on a tick-driven countdown. Starting a new order replaces
// the buyer's prior intent; the replaced intent leaves the slot map before
// the new one is installed, so a late tick can never touch it.
type CheckoutService struct {
	repo  CheckoutRepository
	clock clock.Clock

	mu      sync.Mutex
	intents map[string]*domain.OrderIntent
}

func NewCheckoutService(repo CheckoutRepository, clk clock.Clock) *CheckoutService {
	return &CheckoutService{
		repo:    repo,
		clock:   clk,
		intents: make(map[string]*domain.OrderIntent),
	}
}

type StartOrderInput struct {
	ListingID        string
	DeliveryCollege  string
	DeliveryBuilding string
	Notes            string
}

// IntentStatus is the read-only projection of a buyer's active intent.
type IntentStatus struct {
	State            domain.IntentState
	ListingID        string
	ItemTitle        string
	DisplayPrice     float64
	SellerLabel      string
	DeliveryCollege  string
	DeliveryBuilding string
	Notes            string
	ReferenceCode    string
	RemainingSeconds int
	FormattedTime    string
	Severity         domain.CountdownSeverity
	PaymentQR        string
}

// StartOrder opens the payment window for a listing. The readiness gate is
// re-checked here even though the UI disables the action, so an incomplete
// request can never start a countdown. Any prior in-flight intent for the
// buyer is discarded without confirmation.
func (s *CheckoutService) StartOrder(ctx context.Context, buyerID string, in StartOrderInput) (IntentStatus, error) {
	buyer, err := s.repo.GetUser(ctx, buyerID)
	if err != nil {
		return IntentStatus{}, err
	}
	if !buyer.HasPaymentQR() {
		return IntentStatus{}, domain.ErrPaymentQRRequired
	}
	if err := domain.ValidateDelivery(in.DeliveryCollege, in.DeliveryBuilding); err != nil {
		return IntentStatus{}, err
	}

	listing, err := s.repo.GetListing(ctx, in.ListingID)
	if err != nil {
		return IntentStatus{}, err
	}
	if listing.Status != domain.ListingStatusActive {
		return IntentStatus{}, domain.ErrListingNotActive
	}

	intent := domain.NewOrderIntent(listing, in.DeliveryCollege, in.DeliveryBuilding, in.Notes, newReferenceCode(), s.clock.Now())

	s.mu.Lock()
	s.intents[buyerID] = intent
	s.mu.Unlock()

	return statusOf(intent, buyer.PaymentQR), nil
}

// Tick advances every in-flight countdown by one second and reports how
// many intents expired on this tick. Terminal intents are untouched; the
// expired ones stay in their slot so the buyer still sees the lapse notice.
func (s *CheckoutService) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for _, intent := range s.intents {
		if intent.Tick() {
			expired++
		}
	}
	return expired
}

// Status returns the buyer's active intent, including the payment QR to
// show on the payment screen.
func (s *CheckoutService) Status(ctx context.Context, buyerID string) (IntentStatus, error) {
	s.mu.Lock()
	intent, ok := s.intents[buyerID]
	s.mu.Unlock()
	if !ok {
		return IntentStatus{}, domain.ErrNoActiveOrder
	}

	buyer, err := s.repo.GetUser(ctx, buyerID)
	if err != nil {
		return IntentStatus{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(intent, buyer.PaymentQR), nil
}

// Cancel discards the buyer's awaiting-payment intent.
func (s *CheckoutService) Cancel(buyerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[buyerID]
	if !ok {
		return domain.ErrNoActiveOrder
	}
	if intent.State == domain.IntentStateExpired {
		return domain.ErrOrderExpired
	}
	if err := intent.Cancel(); err != nil {
		return err
	}
	delete(s.intents, buyerID)
	return nil
}

// ConfirmPaymentMade records the buyer's payment assertion and writes the
// settlement record for out-of-band verification. No payment is verified
// here. The intent leaves the slot before the write, so the countdown can
// no longer expire it.
func (s *CheckoutService) ConfirmPaymentMade(ctx context.Context, buyerID string) (domain.Order, error) {
	s.mu.Lock()
	intent, ok := s.intents[buyerID]
	if !ok {
		s.mu.Unlock()
		return domain.Order{}, domain.ErrNoActiveOrder
	}
	if err := intent.ConfirmPayment(); err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	delete(s.intents, buyerID)
	order := domain.Order{
		ID:               newID(),
		ListingID:        intent.ListingID,
		BuyerID:          buyerID,
		ItemTitle:        intent.ItemTitle,
		DisplayPrice:     intent.DisplayPrice,
		SellerLabel:      intent.SellerLabel,
		DeliveryCollege:  intent.DeliveryCollege,
		DeliveryBuilding: intent.DeliveryBuilding,
		Notes:            intent.Notes,
		ReferenceCode:    intent.ReferenceCode,
		Status:           domain.OrderStatusPendingVerification,
		CreatedAt:        s.clock.Now(),
	}
	s.mu.Unlock()

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Dismiss clears the buyer's slot regardless of state (closing the payment
// screen discards the intent).
func (s *CheckoutService) Dismiss(buyerID string) {
	s.mu.Lock()
	delete(s.intents, buyerID)
	s.mu.Unlock()
}

// ListOrders returns the buyer's settlement records, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.repo.ListOrdersByBuyer(ctx, buyerID)
}

type ReadinessStatus struct {
	Ready bool
	// Message names the single most relevant unmet condition: missing
	// payment QR, then missing college, then missing building.
	Message string
	// Buildings lists the valid choices for the selected college.
	Buildings []string
}

// Readiness evaluates the order gate for the given delivery selection.
func (s *CheckoutService) Readiness(ctx context.Context, buyerID, college, building string) (ReadinessStatus, error) {
	buyer, err := s.repo.GetUser(ctx, buyerID)
	if err != nil {
		return ReadinessStatus{}, err
	}

	status := ReadinessStatus{Buildings: domain.BuildingsFor(college)}
	if !buyer.HasPaymentQR() {
		status.Message = msgUploadQRFirst
		return status, nil
	}
	switch domain.ValidateDelivery(college, building) {
	case nil:
		status.Ready = true
	case domain.ErrCollegeRequired, domain.ErrUnknownCollege:
		status.Message = msgSelectCollege
		status.Buildings = nil
	default:
		// Building missing, or invalidated by a college change.
		status.Message = msgSelectBuilding
	}
	return status, nil
}

func statusOf(intent *domain.OrderIntent, paymentQR string) IntentStatus {
	return IntentStatus{
		State:            intent.State,
		ListingID:        intent.ListingID,
		ItemTitle:        intent.ItemTitle,
		DisplayPrice:     intent.DisplayPrice,
		SellerLabel:      intent.SellerLabel,
		DeliveryCollege:  intent.DeliveryCollege,
		DeliveryBuilding: intent.DeliveryBuilding,
		Notes:            intent.Notes,
		ReferenceCode:    intent.ReferenceCode,
		RemainingSeconds: intent.RemainingSeconds,
		FormattedTime:    intent.FormattedTime(),
		Severity:         intent.Severity(),
		PaymentQR:        paymentQR,
	}
}
