package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a stage-prefixed cache key from the inputs that identify
// the entry: "<stage>:<sha256 of the JSON-encoded parts>". Boards are keyed
// by file contents, placements by board hash plus run options, artifacts by
// placement hash plus format.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return stage + ":" + Hash(data)
}

// Hash returns the full SHA-256 of data as a 64-character hex string. The
// pipeline uses it both for cache keys and for the board content hashes
// reported in placement results.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
