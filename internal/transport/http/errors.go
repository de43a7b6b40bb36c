package http

import (
	"encoding/json"
	"net/http"

	"github.com/puthiwat7/UniMart/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"

	codeEmailTaken         = "email_taken"
	codeInvalidCredentials = "invalid_credentials"
	codeUserNotFound       = "user_not_found"

	codeListingNotFound  = "listing_not_found"
	codeListingNotActive = "listing_not_active"
	codeNotListingOwner  = "not_listing_owner"
	codeTitleRequired    = "title_required"
	codeInvalidPrice     = "invalid_price"

	codePaymentQRRequired = "payment_qr_required"
	codeCollegeRequired   = "college_required"
	codeBuildingRequired  = "building_required"
	codeUnknownCollege    = "unknown_college"
	codeInvalidBuilding   = "invalid_building"

	codeNoActiveOrder   = "no_active_order"
	codeOrderNotPayable = "order_not_payable"
	codeOrderExpired    = "order_expired"

	codeInvalidID = "invalid_id"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps sentinel domain errors onto HTTP status + code.
// Readiness-gate failures surface as 409 so a client can distinguish
// "fix your profile or selection" from a malformed request.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEmailTaken:
		writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
	case domain.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case domain.ErrInvalidToken:
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrListingNotFound:
		writeError(w, http.StatusNotFound, codeListingNotFound, err.Error())
	case domain.ErrListingNotActive:
		writeError(w, http.StatusConflict, codeListingNotActive, err.Error())
	case domain.ErrNotListingOwner:
		writeError(w, http.StatusForbidden, codeNotListingOwner, err.Error())
	case domain.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case domain.ErrInvalidPrice:
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case domain.ErrPaymentQRRequired:
		writeError(w, http.StatusConflict, codePaymentQRRequired, err.Error())
	case domain.ErrCollegeRequired:
		writeError(w, http.StatusConflict, codeCollegeRequired, err.Error())
	case domain.ErrBuildingRequired:
		writeError(w, http.StatusConflict, codeBuildingRequired, err.Error())
	case domain.ErrUnknownCollege:
		writeError(w, http.StatusBadRequest, codeUnknownCollege, err.Error())
	case domain.ErrInvalidBuilding:
		writeError(w, http.StatusConflict, codeInvalidBuilding, err.Error())
	case domain.ErrNoActiveOrder:
		writeError(w, http.StatusNotFound, codeNoActiveOrder, err.Error())
	case domain.ErrOrderNotPayable:
		writeError(w, http.StatusConflict, codeOrderNotPayable, err.Error())
	case domain.ErrOrderExpired:
		writeError(w, http.StatusConflict, codeOrderExpired, msgOrderExpired)
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
