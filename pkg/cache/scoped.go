package cache

// ScopedKeyer wraps a Keyer with a prefix so several stores or tenants can
// share one cache without colliding.
//
// Example usage:
//
//	// Keys of the HTTP service
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
//
//	// Keys of the CLI
//	cliKeyer := NewDefaultKeyer()
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

// ExportKey generates a prefixed export key.
func (k *ScopedKeyer) ExportKey(graphHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(graphHash, opts)
}

// AnalysisKey generates a prefixed analysis key.
func (k *ScopedKeyer) AnalysisKey(graphHash string) string {
	return k.prefix + k.inner.AnalysisKey(graphHash)
}
