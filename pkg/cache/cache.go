// Package cache provides caching for the placement pipeline: parsed boards,
// finished placement solutions, and rendered artifacts. Backends range from
// a local file cache for CLI usage to Redis for the server.
package cache

import (
	"context"
	"time"
)

// TTL constants for different content types.
const (
	// TTLBoard is how long parsed board files stay cached. Board files
	// change rarely between runs; the key includes a content hash so a
	// stale entry can never shadow an edited file.
	TTLBoard = 24 * time.Hour

	// TTLPlacement is how long finished placement solutions stay cached.
	// A solution is fully determined by board hash and tuning parameters.
	TTLPlacement = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (reports, ratsnest
	// graphics) stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for caching backends.
// All methods are safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlacementKeyOpts are the run parameters that determine a placement
// solution. Two runs with equal board hashes and equal options produce the
// same solution and share a cache entry.
type PlacementKeyOpts struct {
	ConfigHash string  `json:"config_hash"`
	Iterations int     `json:"iterations"`
	Dt         float64 `json:"dt"`
	Snap       bool    `json:"snap"`
}

// ArtifactKeyOpts identify a rendered artifact derived from a placement.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
// Implementations must be deterministic: equal inputs yield equal keys.
type Keyer interface {
	// BoardKey generates a key for a parsed board, from the SHA-256 hash
	// of the board file contents.
	BoardKey(contentHash string) string

	// PlacementKey generates a key for a placement solution.
	PlacementKey(boardHash string, opts PlacementKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(placementHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
// Keys embed a stage prefix and a SHA-256 hash of the identifying inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BoardKey generates a key for a parsed board.
func (k *DefaultKeyer) BoardKey(contentHash string) string {
	return "board:" + contentHash
}

// PlacementKey generates a key for a placement solution.
func (k *DefaultKeyer) PlacementKey(boardHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", boardHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", placementHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
