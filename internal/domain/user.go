package domain

import "time"

// User is a registered marketplace account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	StudentID    string
	College      string
	Phone        string
	// PaymentQR holds the buyer's payment-receiving QR image (data URL);
	// empty means no QR is on file.
	PaymentQR string
	CreatedAt time.Time
}

// HasPaymentQR reports whether a payment-receiving QR code is on file.
func (u User) HasPaymentQR() bool {
	return u.PaymentQR != ""
}
