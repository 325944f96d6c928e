package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeSpace replaces non-breaking spaces, collapses whitespace runs and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\u00a0", " ")), " ")
}

// HashKey returns the hex SHA-256 of parts joined by the unit separator.
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}
