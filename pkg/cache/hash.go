package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a namespaced cache key from structured parts, formatted
// as prefix:hash(parts). Artifact keys are built this way from the spec
// hash plus the fit options so that the same spec fitted at a different
// size or padding never collides.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 of data as a 64-char hex string. It is the
// canonical spec hash: identical raw spec bytes always map to the same
// artifact, and pipeline results surface it for traceability.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
