package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword derives the local-mode wire form of a password: SHA-256,
// hex-encoded, hashed again, hex-encoded. The backend stores and compares
// this digest; the raw password never leaves the client in local mode.
func HashPassword(password string) string {
	first := sha256.Sum256([]byte(password))
	second := sha256.Sum256([]byte(hex.EncodeToString(first[:])))
	return hex.EncodeToString(second[:])
}
