// pkg/utils/hash.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// CacheKey builds the digest that identifies one (city, query) analysis.
// Both parts are trimmed and lowercased so trivially different inputs share
// a cache entry.
func CacheKey(city, query string) string {
	raw := strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(query))
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// RequestIDFromKey derives the short display-only request id from a cache key.
func RequestIDFromKey(cacheKey string) string {
	if len(cacheKey) < 12 {
		return cacheKey
	}
	return cacheKey[:12]
}

// GenerateRandomID generates a random ID
func GenerateRandomID(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
