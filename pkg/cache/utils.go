package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key joins parts with ':'.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Fingerprint returns a short stable digest of s, safe to embed in a key.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
