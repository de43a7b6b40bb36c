package domain

import (
	"fmt"
	"time"
)

type IntentState string

const (
	IntentStateAwaitingPayment IntentState = "awaiting_payment"
	IntentStateConfirmed       IntentState = "confirmed"
	IntentStateCancelled       IntentState = "cancelled"
	IntentStateExpired         IntentState = "expired"
)

// PaymentWindowSeconds is the countdown length for a new order intent.
const PaymentWindowSeconds = 600

type CountdownSeverity string

const (
	SeverityNormal   CountdownSeverity = "normal"
	SeverityWarning  CountdownSeverity = "warning"
	SeverityCritical CountdownSeverity = "critical"
)

const (
	warningThresholdSeconds  = 180
	criticalThresholdSeconds = 60
)

// OrderIntent is one in-progress purchase attempt awaiting manual payment.
// Listing fields are snapshotted at creation so the payment screen stays
// stable if the catalog changes underneath it. The reference code is set
// once at creation and never changes.
type OrderIntent struct {
	ListingID        string
	ItemTitle        string
	DisplayPrice     float64
	SellerLabel      string
	DeliveryCollege  string
	DeliveryBuilding string
	Notes            string
	ReferenceCode    string
	State            IntentState
	RemainingSeconds int
	CreatedAt        time.Time
}

// NewOrderIntent snapshots the listing and starts the payment window.
func NewOrderIntent(listing Listing, college, building, notes, referenceCode string, now time.Time) *OrderIntent {
	return &OrderIntent{
		ListingID:        listing.ID,
		ItemTitle:        listing.Title,
		DisplayPrice:     listing.Price,
		SellerLabel:      listing.SellerName,
		DeliveryCollege:  college,
		DeliveryBuilding: building,
		Notes:            notes,
		ReferenceCode:    referenceCode,
		State:            IntentStateAwaitingPayment,
		RemainingSeconds: PaymentWindowSeconds,
		CreatedAt:        now,
	}
}

// Tick advances the countdown by one second. Outside the awaiting-payment
// state it is a no-op, so a stray tick can never drive the remaining time
// negative or re-expire a settled intent. It reports whether this tick
// transitioned the intent to expired.
func (i *OrderIntent) Tick() bool {
	if i.State != IntentStateAwaitingPayment {
		return false
	}
	i.RemainingSeconds--
	if i.RemainingSeconds <= 0 {
		i.RemainingSeconds = 0
		i.State = IntentStateExpired
		return true
	}
	return false
}

// Cancel discards an awaiting-payment intent.
func (i *OrderIntent) Cancel() error {
	if i.State != IntentStateAwaitingPayment {
		return ErrOrderNotPayable
	}
	i.State = IntentStateCancelled
	return nil
}

// ConfirmPayment records the buyer's payment-made assertion. It does not
// verify payment; settlement verification happens out of band.
func (i *OrderIntent) ConfirmPayment() error {
	switch i.State {
	case IntentStateAwaitingPayment:
		i.State = IntentStateConfirmed
		return nil
	case IntentStateExpired:
		return ErrOrderExpired
	default:
		return ErrOrderNotPayable
	}
}

// FormattedTime renders the remaining window as "M:SS" (600 -> "10:00").
func (i *OrderIntent) FormattedTime() string {
	return FormatCountdown(i.RemainingSeconds)
}

// Severity maps remaining time to a presentation band: critical at or under
// 60 seconds, warning at or under 180, normal above.
func (i *OrderIntent) Severity() CountdownSeverity {
	switch {
	case i.RemainingSeconds <= criticalThresholdSeconds:
		return SeverityCritical
	case i.RemainingSeconds <= warningThresholdSeconds:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// FormatCountdown formats whole seconds as minutes and zero-padded seconds.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
