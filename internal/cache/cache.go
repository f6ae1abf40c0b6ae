// Package cache backs the session-scoped article extraction memo.
// Nothing here persists beyond the process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the session cache interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "scicheck:v1:" + hex.EncodeToString(hash[:])
}
