package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/internal/watch"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "watch <graph>...",
		Short: "Re-export graphs whenever they change",
		Long: `Watch documents and export each one again after every save.

Every file is exported once at start. The export is written next to the
document with the format's extension. Invalid documents are reported and
skipped until the next change. Press Ctrl+C to stop.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg, "")
			if err != nil {
				return err
			}
			ch := c.openCache(cfg)
			defer ch.Close()
			exp := newExporter(ch, cfg.Cache)

			update := func(ctx context.Context, path string) error {
				g, err := readGraph(path, nil, cfg)
				if err != nil {
					return err
				}
				data, _, err := exp.export(ctx, g, opts)
				if err != nil {
					return err
				}
				out := exportPath(path, opts.Format)
				if err := writeOutput(out, data, nil); err != nil {
					return err
				}
				loggerFromContext(ctx).Info("Exported", "file", filepath.Base(out), "vertices", g.Vertices.Len(), "edges", g.Edges.Len())
				return nil
			}

			w, err := watch.New(args, update, watch.WithInitialRun(), watch.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			printInfo("Watching %d file(s), press Ctrl+C to stop", len(w.Files()))
			return w.Run(cmd.Context())
		},
	}
	flags.register(cmd)

	return cmd
}
