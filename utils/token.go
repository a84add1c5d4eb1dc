package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a URL-safe random token of nBytes entropy,
// hex-encoded. Used for email verification and password reset links.
func GenerateToken(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
