// Package cli implements the visigraph command-line interface.
//
// The commands work on .vsg documents (and node-link JSON) on disk or in
// the configured document store:
//   - generate: build a graph from a named family
//   - layout, relax: arrange vertices, relax shows the force simulation live
//   - analyze: evaluate every graph function and print a table
//   - export: render SVG, DOT, Graphviz SVG, PNG or PDF
//   - watch: re-export documents whenever they change on disk
//   - serve: run the HTTP API
//   - store, config, cache: manage documents, settings and cached exports
//
// Settings come from visigraph.toml, VISIGRAPH_ environment variables and
// flags, in that order of priority. All commands support --verbose (-v) for
// debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/pkg/buildinfo"
	"github.com/matzehuels/visigraph/pkg/cache"
	"github.com/matzehuels/visigraph/pkg/settings"
	"github.com/matzehuels/visigraph/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "visigraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Visigraph draws, lays out and analyzes graphs",
		Long: `Visigraph is a graph theory workbench. It generates graphs from well-known
families, arranges them with geometric and force-directed layouts, evaluates
graph functions such as connectivity and diameter, and exports drawings.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installHooks(c.Logger)
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "settings file (default: ./"+settings.DefaultFile+" if present)")
	pf.String("store", store.BackendFile, "document store backend: file, redis, mongo")
	pf.String("store-dir", "", "directory of the file store")
	pf.String("redis-addr", "", "redis address for the redis store")
	pf.String("mongo-uri", "", "connection URI for the mongo store")
	pf.String("cache-dir", "", "export cache directory")
	pf.Bool("no-cache", false, "disable the export cache")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.relaxCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// loadSettings resolves settings for cmd. Flags that map to settings keys
// override the file and environment.
func (c *CLI) loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	cfg, err := settings.Load(c.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Settings loaded", "file", c.configPath, "store", cfg.Storage.Backend)
	return cfg, nil
}

// openStore connects to the configured document store.
func (c *CLI) openStore(ctx context.Context, cfg *settings.Settings) (store.Store, error) {
	return store.Open(ctx, cfg.Storage)
}

// openCache returns the export cache, or a null cache when disabled or
// unavailable.
func (c *CLI) openCache(cfg *settings.Settings) cache.Cache {
	ch, err := cache.New(cfg.Cache)
	if err != nil {
		c.Logger.Warn("Cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return ch
}
