package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrEmptySignature is returned when the caller supplied no signature at all.
var ErrEmptySignature = errors.New("signature is empty")

// SignPayload returns the hex HMAC-SHA256 of payload keyed by secret
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature is the hex HMAC-SHA256 of body
// under secret. A mismatch is not an error.
func VerifySignature(body []byte, signature, secret string) (bool, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false, ErrEmptySignature
	}
	expected := SignPayload(body, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1, nil
}

// SecureEqual compares two secrets without leaking timing information
func SecureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
