package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// Registrar is the minimal interface needed to register an account.
type Registrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.User, string, error)
}

// Authenticator is the minimal interface needed to log in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.User, string, error)
}

// HandleRegister returns an HTTP handler for account registration.
func HandleRegister(svc Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, codeInvalidCredentials, "email and password are required")
			return
		}

		user, token, err := svc.Register(r.Context(), app.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			Name:      req.Name,
			StudentID: req.StudentID,
			College:   req.College,
			Phone:     req.Phone,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(authResponse{
			Token: token,
			User:  toUserResponse(user),
		})
	}
}

// HandleLogin returns an HTTP handler for credential login.
func HandleLogin(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(authResponse{
			Token: token,
			User:  toUserResponse(user),
		})
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
	College   string `json:"college"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	StudentID    string    `json:"student_id"`
	College      string    `json:"college"`
	Phone        string    `json:"phone"`
	HasPaymentQR bool      `json:"has_payment_qr"`
	PaymentQR    string    `json:"payment_qr,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		StudentID:    user.StudentID,
		College:      user.College,
		Phone:        user.Phone,
		HasPaymentQR: user.HasPaymentQR(),
		PaymentQR:    user.PaymentQR,
		CreatedAt:    user.CreatedAt,
	}
}
