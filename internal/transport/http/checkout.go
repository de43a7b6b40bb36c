package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// Buyer-facing workflow notices.
const (
	msgOrderExpired    = "Order has expired due to timeout. Please try again."
	msgPaymentRecorded = "Thank you! We will verify your payment within 2-4 hours and notify you once confirmed."
	msgOrderCancelled  = "Order cancelled."
)

// CheckoutEngine is the interface the checkout endpoints need.
type CheckoutEngine interface {
	Readiness(ctx context.Context, buyerID, college, building string) (app.ReadinessStatus, error)
	StartOrder(ctx context.Context, buyerID string, in app.StartOrderInput) (app.IntentStatus, error)
	Status(ctx context.Context, buyerID string) (app.IntentStatus, error)
	Cancel(buyerID string) error
	ConfirmPaymentMade(ctx context.Context, buyerID string) (domain.Order, error)
	Dismiss(buyerID string)
	ListOrders(ctx context.Context, buyerID string) ([]domain.Order, error)
}

// HandleCheckoutReadiness returns an HTTP handler evaluating the order gate
// for a delivery selection without starting anything.
func HandleCheckoutReadiness(svc CheckoutEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		status, err := svc.Readiness(r.Context(), UserID(r.Context()), q.Get("college"), q.Get("building"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := readinessResponse{
			Ready:     status.Ready,
			Message:   status.Message,
			Buildings: status.Buildings,
		}
		if resp.Buildings == nil {
			resp.Buildings = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleStartOrder returns an HTTP handler opening the payment window for a
// listing. A prior in-flight order for the caller is replaced.
func HandleStartOrder(svc CheckoutEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req startOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ListingID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "listing_id is required")
			return
		}

		status, err := svc.StartOrder(r.Context(), UserID(r.Context()), app.StartOrderInput{
			ListingID:        req.ListingID,
			DeliveryCollege:  req.DeliveryCollege,
			DeliveryBuilding: req.DeliveryBuilding,
			Notes:            req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toIntentResponse(status))
	}
}

// HandleCurrentOrder returns an HTTP handler for the caller's in-flight
// order: state polling, dismissal, cancel, and the payment-made assertion.
func HandleCurrentOrder(svc CheckoutEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action, ok := parseCurrentOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		buyerID := UserID(r.Context())

		switch action {
		case "":
			switch r.Method {
			case http.MethodGet:
				status, err := svc.Status(r.Context(), buyerID)
				if err != nil {
					writeDomainError(w, err)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(toIntentResponse(status))
			case http.MethodDelete:
				svc.Dismiss(buyerID)
				w.WriteHeader(http.StatusNoContent)
			default:
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			}
		case "cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			if err := svc.Cancel(buyerID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(messageResponse{Message: msgOrderCancelled})
		case "payment-made":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			order, err := svc.ConfirmPaymentMade(r.Context(), buyerID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(paymentMadeResponse{
				Message: msgPaymentRecorded,
				Order:   toOrderResponse(order),
			})
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// HandleOrders returns an HTTP handler listing the caller's settlement
// records.
func HandleOrders(svc CheckoutEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orders, err := svc.ListOrders(r.Context(), UserID(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toOrderResponse(order))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseCurrentOrderPath(path string) (action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "checkout" || parts[1] != "orders" || parts[2] != "current" {
		return "", false
	}
	switch len(parts) {
	case 3:
		return "", true
	case 4:
		return parts[3], true
	default:
		return "", false
	}
}

type startOrderRequest struct {
	ListingID        string `json:"listing_id"`
	DeliveryCollege  string `json:"delivery_college"`
	DeliveryBuilding string `json:"delivery_building"`
	Notes            string `json:"notes"`
}

type readinessResponse struct {
	Ready     bool     `json:"ready"`
	Message   string   `json:"message,omitempty"`
	Buildings []string `json:"buildings"`
}

type intentResponse struct {
	State            string  `json:"state"`
	ListingID        string  `json:"listing_id"`
	ItemTitle        string  `json:"item_title"`
	Price            float64 `json:"price"`
	Seller           string  `json:"seller"`
	DeliveryCollege  string  `json:"delivery_college"`
	DeliveryBuilding string  `json:"delivery_building"`
	Notes            string  `json:"notes,omitempty"`
	ReferenceCode    string  `json:"reference_code"`
	RemainingSeconds int     `json:"remaining_seconds"`
	FormattedTime    string  `json:"formatted_time"`
	Severity         string  `json:"severity"`
	PaymentQR        string  `json:"payment_qr,omitempty"`
	Message          string  `json:"message,omitempty"`
}

func toIntentResponse(status app.IntentStatus) intentResponse {
	resp := intentResponse{
		State:            string(status.State),
		ListingID:        status.ListingID,
		ItemTitle:        status.ItemTitle,
		Price:            status.DisplayPrice,
		Seller:           status.SellerLabel,
		DeliveryCollege:  status.DeliveryCollege,
		DeliveryBuilding: status.DeliveryBuilding,
		Notes:            status.Notes,
		ReferenceCode:    status.ReferenceCode,
		RemainingSeconds: status.RemainingSeconds,
		FormattedTime:    status.FormattedTime,
		Severity:         string(status.Severity),
		PaymentQR:        status.PaymentQR,
	}
	if status.State == domain.IntentStateExpired {
		resp.Message = msgOrderExpired
	}
	return resp
}

type messageResponse struct {
	Message string `json:"message"`
}

type paymentMadeResponse struct {
	Message string        `json:"message"`
	Order   orderResponse `json:"order"`
}

type orderResponse struct {
	ID               string    `json:"id"`
	ListingID        string    `json:"listing_id"`
	ItemTitle        string    `json:"item_title"`
	Price            float64   `json:"price"`
	Seller           string    `json:"seller"`
	DeliveryCollege  string    `json:"delivery_college"`
	DeliveryBuilding string    `json:"delivery_building"`
	Notes            string    `json:"notes,omitempty"`
	ReferenceCode    string    `json:"reference_code"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:               order.ID,
		ListingID:        order.ListingID,
		ItemTitle:        order.ItemTitle,
		Price:            order.DisplayPrice,
		Seller:           order.SellerLabel,
		DeliveryCollege:  order.DeliveryCollege,
		DeliveryBuilding: order.DeliveryBuilding,
		Notes:            order.Notes,
		ReferenceCode:    order.ReferenceCode,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
	}
}
