package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/internal/server"
	"github.com/matzehuels/visigraph/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve generators, layouts, analysis, exports and the document store over HTTP.

Graph payloads are .vsg documents. Documents are kept in the configured
store backend. Press Ctrl+C to shut down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			ch := c.openCache(cfg)
			defer ch.Close()

			srv := server.New(cfg, st,
				server.WithCache(ch, cache.TTL(cfg.Cache)),
				server.WithLogger(c.Logger))
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from server.addr, :8080)")

	return cmd
}
