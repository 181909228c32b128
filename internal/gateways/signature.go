package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrMissingSecret = errors.New("payment gateway secret is empty")

// SignatureVerifier checks payment signatures issued by the gateway: the
// lowercase hex HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the
// merchant secret.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret string) (*SignatureVerifier, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &SignatureVerifier{secret: []byte(secret)}, nil
}

func (v *SignatureVerifier) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. Hex case is ignored.
func (v *SignatureVerifier) Verify(orderID, paymentID, signature string) bool {
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(signature)))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(got, mac.Sum(nil))
}
