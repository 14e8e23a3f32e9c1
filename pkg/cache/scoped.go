package cache

// ScopedKeyer wraps a Keyer and prepends a fixed prefix to every key.
//
// The CLI scopes keys by build version, so artifacts rendered by an older
// binary are never returned after an upgrade:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), buildinfo.CacheScope()+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
