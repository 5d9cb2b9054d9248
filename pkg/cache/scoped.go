package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments can share one Redis instance.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(specHash, opts)
}

// PublishedKey implements [Keyer].
func (k *ScopedKeyer) PublishedKey(specHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.PublishedKey(specHash, opts)
}
