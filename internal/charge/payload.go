// Package charge implements the tamper-evident delivery-charge payload: a
// canonical string signed at render time and echoed back by the client at
// order submission. Verification failures are downgraded to configured
// defaults rather than rejected, so a stale or altered payload can never
// block an order.
package charge

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ronginpran/checkout-api/internal/pricing"
)

// ErrMalformed reports a payload that does not parse as productID:dhaka:outside.
var ErrMalformed = errors.New("charge: malformed payload")

// Payload is the decoded delivery-charge configuration in effect at render time.
type Payload struct {
	ProductID int64
	Charges   pricing.Charges
}

// Encode renders the canonical wire form.
func (p Payload) Encode() string {
	return fmt.Sprintf("%d:%d:%d", p.ProductID, p.Charges.Dhaka, p.Charges.Outside)
}

// Decode parses the canonical wire form.
func Decode(encoded string) (Payload, error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 3 {
		return Payload{}, ErrMalformed
	}
	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || productID < 0 {
		return Payload{}, ErrMalformed
	}
	dhaka, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || dhaka < 0 {
		return Payload{}, ErrMalformed
	}
	outside, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || outside < 0 {
		return Payload{}, ErrMalformed
	}
	return Payload{ProductID: productID, Charges: pricing.Charges{Dhaka: dhaka, Outside: outside}}, nil
}

// Signer signs and verifies charge payloads with a keyed hash.
type Signer struct {
	secret []byte
}

// NewSigner constructs a Signer from the server secret.
func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

// Sign returns the hex-encoded HMAC-SHA256 of the encoded payload.
func (s Signer) Sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue encodes and signs a payload in one step.
func (s Signer) Issue(p Payload) (encoded, hash string) {
	encoded = p.Encode()
	return encoded, s.Sign(encoded)
}

// Verify checks the hash against the encoded payload in constant time and
// decodes it. Validity is binary: a hash match means the embedded charges
// are trusted, anything else means the caller falls back to its own
// configuration.
func (s Signer) Verify(encoded, hash string) (Payload, bool) {
	if encoded == "" || hash == "" {
		return Payload{}, false
	}
	want := s.Sign(encoded)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(strings.TrimSpace(hash)))) {
		return Payload{}, false
	}
	p, err := Decode(encoded)
	if err != nil {
		return Payload{}, false
	}
	return p, true
}

// ResolveCharges returns the charge table to trust for an order: the
// verified payload when valid and issued for the same product, otherwise
// the configured defaults.
func (s Signer) ResolveCharges(encoded, hash string, productID int64, defaults pricing.Charges) (pricing.Charges, bool) {
	p, ok := s.Verify(encoded, hash)
	if !ok || p.ProductID != productID {
		return defaults, false
	}
	return p.Charges, true
}
