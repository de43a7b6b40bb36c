package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")

	ErrListingNotFound  = errors.New("listing not found")
	ErrListingNotActive = errors.New("listing is not active")
	ErrNotListingOwner  = errors.New("not the listing owner")
	ErrTitleRequired    = errors.New("title required")
	ErrInvalidPrice     = errors.New("invalid price")

	ErrPaymentQRRequired = errors.New("payment QR code required")
	ErrCollegeRequired   = errors.New("delivery college required")
	ErrBuildingRequired  = errors.New("delivery building required")
	ErrUnknownCollege    = errors.New("unknown delivery college")
	ErrInvalidBuilding   = errors.New("building not valid for college")

	ErrNoActiveOrder   = errors.New("no active order")
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
	ErrOrderExpired    = errors.New("order has expired")

	ErrInvalidID = errors.New("invalid id")
)
