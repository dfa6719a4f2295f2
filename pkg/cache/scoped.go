package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects or server
// tenants get disjoint cache namespaces.
//
// Example usage:
//
//	// Project-specific keys on a shared Redis backend
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "proj:sensor-hub:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// BoardKey generates a prefixed key for a parsed board.
func (k *ScopedKeyer) BoardKey(contentHash string) string {
	return k.prefix + k.inner.BoardKey(contentHash)
}

// PlacementKey generates a prefixed key for a placement solution.
func (k *ScopedKeyer) PlacementKey(boardHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(boardHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(placementHash, opts)
}
