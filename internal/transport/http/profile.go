package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// ProfileService is the minimal interface needed for the /me endpoints.
type ProfileService interface {
	Get(ctx context.Context, userID string) (domain.User, error)
	Update(ctx context.Context, userID string, in app.UpdateProfileInput) (domain.User, error)
	SetPaymentQR(ctx context.Context, userID, paymentQR string) error
}

// HandleMe returns an HTTP handler for reading and updating the caller's
// profile.
func HandleMe(svc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r.Context())

		switch r.Method {
		case http.MethodGet:
			user, err := svc.Get(r.Context(), userID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toUserResponse(user))
		case http.MethodPut:
			var req updateProfileRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			user, err := svc.Update(r.Context(), userID, app.UpdateProfileInput{
				Name:      req.Name,
				StudentID: req.StudentID,
				Email:     req.Email,
				College:   req.College,
				Phone:     req.Phone,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toUserResponse(user))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandlePaymentQR returns an HTTP handler for uploading the caller's
// payment-receiving QR image.
func HandlePaymentQR(svc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req paymentQRRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.PaymentQR == "" {
			writeError(w, http.StatusBadRequest, codePaymentQRRequired, domain.ErrPaymentQRRequired.Error())
			return
		}

		if err := svc.SetPaymentQR(r.Context(), UserID(r.Context()), req.PaymentQR); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	College   string `json:"college"`
	Phone     string `json:"phone"`
}

type paymentQRRequest struct {
	PaymentQR string `json:"payment_qr"`
}
