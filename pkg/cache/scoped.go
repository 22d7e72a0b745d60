package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so a shared cache never serves artifacts rendered by another build.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
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

// FrameKey generates a prefixed key for layout pass caching.
func (k *ScopedKeyer) FrameKey(catalogHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(catalogHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}
