package cache

import "github.com/matzehuels/visigraph/pkg/settings"

// Keyer builds cache keys.
type Keyer interface {
	// ExportKey keys a rendered export of the graph whose .vsg text hashes
	// to graphHash.
	ExportKey(graphHash string, opts ExportKeyOpts) string

	// AnalysisKey keys the function results of a graph.
	AnalysisKey(graphHash string) string
}

// ExportKeyOpts are the export options that change the rendered output.
type ExportKeyOpts struct {
	Format  string           `json:"format"`
	Display settings.Display `json:"display"`
	Padding float64          `json:"padding,omitempty"`
	Scale   float64          `json:"scale,omitempty"`
	// Transparent drops the background.
	Transparent bool `json:"transparent,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExportKey returns "export:" followed by a hash of the graph hash and
// options.
func (DefaultKeyer) ExportKey(graphHash string, opts ExportKeyOpts) string {
	return hashKey("export", graphHash, opts)
}

// AnalysisKey returns "analysis:" followed by a hash of the graph hash.
func (DefaultKeyer) AnalysisKey(graphHash string) string {
	return hashKey("analysis", graphHash)
}
