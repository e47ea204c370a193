package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This keeps cache entries for different institutions (or different users
// of a shared server) from colliding.
//
// Example usage:
//
//	// Institution-specific keys
//	instKeyer := NewScopedKeyer(NewDefaultKeyer(), "ualberta:")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CatalogKey generates a prefixed key for catalog caching.
func (k *ScopedKeyer) CatalogKey(sourceHash string) string {
	return k.prefix + k.inner.CatalogKey(sourceHash)
}

// OrderKey generates a prefixed key for topological order caching.
func (k *ScopedKeyer) OrderKey(catalogHash string) string {
	return k.prefix + k.inner.OrderKey(catalogHash)
}

// EligibilityKey generates a prefixed key for eligibility caching.
func (k *ScopedKeyer) EligibilityKey(catalogHash string, completed []string) string {
	return k.prefix + k.inner.EligibilityKey(catalogHash, completed)
}
