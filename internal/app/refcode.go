package app

import (
	"math/rand/v2"
	"strings"
)

const (
	referenceCodePrefix = "CUHK"
	referenceCodeDigits = 8
	referenceAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// newReferenceCode builds a human-readable reconciliation token: a fixed
// prefix plus eight characters drawn from A-Z0-9. It identifies an order in
// a payment note; it is not a security credential.
func newReferenceCode() string {
	var b strings.Builder
	b.Grow(len(referenceCodePrefix) + referenceCodeDigits)
	b.WriteString(referenceCodePrefix)
	for i := 0; i < referenceCodeDigits; i++ {
		b.WriteByte(referenceAlphabet[rand.IntN(len(referenceAlphabet))])
	}
	return b.String()
}
