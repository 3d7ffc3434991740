// Package identity holds the anonymization primitives: the one-way hash that
// is the only stored linkage to real-world identity, and the Ghost ID users
// are known by everywhere else.
package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// HashData returns the hex SHA-256 of data. Used for phone numbers and
// refresh tokens; plaintext is never persisted.
func HashData(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// NewGhostID generates a public identifier like #GH-9921-LAG.
func NewGhostID() string {
	return fmt.Sprintf("#GH-%04d-LAG", randomRange(1000, 9999))
}

// NewOrderID generates a public order identifier like #ORD-4821.
func NewOrderID() string {
	return fmt.Sprintf("#ORD-%04d", randomRange(1000, 9999))
}

// NewSecureCode generates the 4-digit handover code a rider must collect
// from the patient to complete a delivery.
func NewSecureCode() string {
	return fmt.Sprintf("%04d", randomRange(1000, 9999))
}

// NewOTP generates a 6-digit one-time password.
func NewOTP() string {
	return fmt.Sprintf("%06d", randomRange(100000, 999999))
}

func randomRange(min, max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(err)
	}
	return n.Int64() + min
}
