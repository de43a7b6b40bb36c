package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

type stubCheckoutEngine struct {
	readiness app.ReadinessStatus
	status    app.IntentStatus
	order     domain.Order
	err       error

	dismissed bool
}

func (s *stubCheckoutEngine) Readiness(_ context.Context, _, _, _ string) (app.ReadinessStatus, error) {
	return s.readiness, s.err
}

func (s *stubCheckoutEngine) StartOrder(_ context.Context, _ string, _ app.StartOrderInput) (app.IntentStatus, error) {
	return s.status, s.err
}

func (s *stubCheckoutEngine) Status(_ context.Context, _ string) (app.IntentStatus, error) {
	return s.status, s.err
}

func (s *stubCheckoutEngine) Cancel(_ string) error {
	return s.err
}

func (s *stubCheckoutEngine) ConfirmPaymentMade(_ context.Context, _ string) (domain.Order, error) {
	return s.order, s.err
}

func (s *stubCheckoutEngine) Dismiss(_ string) {
	s.dismissed = true
}

func (s *stubCheckoutEngine) ListOrders(_ context.Context, _ string) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Order{s.order}, nil
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	return req.WithContext(withUserID(req.Context(), "buyer-1"))
}

func TestHandleStartOrder(t *testing.T) {
	t.Parallel()

	awaiting := app.IntentStatus{
		State:            domain.IntentStateAwaitingPayment,
		ListingID:        "listing-1",
		ItemTitle:        "Wooden Desk Lamp",
		ReferenceCode:    "CUHKA1B2C3D4",
		RemainingSeconds: 600,
		FormattedTime:    "10:00",
		Severity:         domain.SeverityNormal,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"A"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"formatted_time":"10:00"`,
		},
		{
			name:           "invalid json",
			body:           `{"listing_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing listing id",
			body:           `{"delivery_college":"Shaw","delivery_building":"A"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "payment QR missing",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"A"}`,
			serviceErr:     domain.ErrPaymentQRRequired,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"payment_qr_required"`,
		},
		{
			name:           "invalid building",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"Z"}`,
			serviceErr:     domain.ErrInvalidBuilding,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"invalid_building"`,
		},
		{
			name:           "listing sold",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"A"}`,
			serviceErr:     domain.ErrListingNotActive,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "listing not found",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"A"}`,
			serviceErr:     domain.ErrListingNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "internal error",
			body:           `{"listing_id":"listing-1","delivery_college":"Shaw","delivery_building":"A"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCheckoutEngine{status: awaiting, err: tt.serviceErr}
			req := authedRequest(http.MethodPost, "/checkout/orders", tt.body)
			rec := httptest.NewRecorder()

			HandleStartOrder(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleCurrentOrder_Status(t *testing.T) {
	t.Parallel()

	t.Run("awaiting payment", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{status: app.IntentStatus{
			State:            domain.IntentStateAwaitingPayment,
			ReferenceCode:    "CUHKA1B2C3D4",
			RemainingSeconds: 59,
			FormattedTime:    "0:59",
			Severity:         domain.SeverityCritical,
			PaymentQR:        "data:image/png;base64,qr",
		}}
		req := authedRequest(http.MethodGet, "/checkout/orders/current", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{`"formatted_time":"0:59"`, `"severity":"critical"`, `"payment_qr":"data:image/png;base64,qr"`} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected response to contain %q, got %q", want, body)
			}
		}
	})

	t.Run("expired carries the lapse notice", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{status: app.IntentStatus{
			State:         domain.IntentStateExpired,
			FormattedTime: "0:00",
		}}
		req := authedRequest(http.MethodGet, "/checkout/orders/current", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), msgOrderExpired) {
			t.Fatalf("expected expiry notice, got %q", rec.Body.String())
		}
	})

	t.Run("no active order", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{err: domain.ErrNoActiveOrder}
		req := authedRequest(http.MethodGet, "/checkout/orders/current", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("dismiss", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{}
		req := authedRequest(http.MethodDelete, "/checkout/orders/current", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if !svc.dismissed {
			t.Fatalf("expected Dismiss to be called")
		}
	})
}

func TestHandleCurrentOrder_Cancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			expectedStatus: http.StatusOK,
			expectedSubstr: msgOrderCancelled,
		},
		{
			name:           "already expired",
			serviceErr:     domain.ErrOrderExpired,
			expectedStatus: http.StatusConflict,
			expectedSubstr: msgOrderExpired,
		},
		{
			name:           "no active order",
			serviceErr:     domain.ErrNoActiveOrder,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCheckoutEngine{err: tt.serviceErr}
			req := authedRequest(http.MethodPost, "/checkout/orders/current/cancel", "")
			rec := httptest.NewRecorder()

			HandleCurrentOrder(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleCurrentOrder_PaymentMade(t *testing.T) {
	t.Parallel()

	t.Run("success writes the verification notice", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{order: domain.Order{
			ID:            "order-1",
			ReferenceCode: "CUHKA1B2C3D4",
			Status:        domain.OrderStatusPendingVerification,
			CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}}
		req := authedRequest(http.MethodPost, "/checkout/orders/current/payment-made", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, msgPaymentRecorded) {
			t.Fatalf("expected verification notice, got %q", body)
		}
		if !strings.Contains(body, `"reference_code":"CUHKA1B2C3D4"`) {
			t.Fatalf("expected reference code, got %q", body)
		}
	})

	t.Run("expired window", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{err: domain.ErrOrderExpired}
		req := authedRequest(http.MethodPost, "/checkout/orders/current/payment-made", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("unknown action is 404", func(t *testing.T) {
		t.Parallel()
		svc := &stubCheckoutEngine{}
		req := authedRequest(http.MethodPost, "/checkout/orders/current/confirm", "")
		rec := httptest.NewRecorder()

		HandleCurrentOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHandleCheckoutReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		readiness      app.ReadinessStatus
		expectedSubstr string
	}{
		{
			name:           "ready",
			readiness:      app.ReadinessStatus{Ready: true, Buildings: []string{"A", "B"}},
			expectedSubstr: `"ready":true`,
		},
		{
			name:           "gate message",
			readiness:      app.ReadinessStatus{Message: "Please upload your payment QR code in your profile first"},
			expectedSubstr: `"message":"Please upload your payment QR code in your profile first"`,
		},
		{
			name:           "empty buildings encode as array",
			readiness:      app.ReadinessStatus{Message: "Please select your delivery college"},
			expectedSubstr: `"buildings":[]`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCheckoutEngine{readiness: tt.readiness}
			req := authedRequest(http.MethodGet, "/checkout/readiness?college=Shaw&building=A", "")
			rec := httptest.NewRecorder()

			HandleCheckoutReadiness(svc).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}
