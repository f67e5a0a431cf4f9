package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/store"
)

// storeCommand creates the document store command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage documents in the document store",
		Long: `Manage documents in the configured store.

The backend is selected with --store or storage.backend: file keeps one JSON
file per document, redis and mongo share documents between machines.`,
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storePutCommand creates the "store put" subcommand.
func (c *CLI) storePutCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "put <graph>",
		Short: "Save a graph as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			g, err := readGraph(args[0], cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var doc *store.Document
			if id == "" {
				doc, err = store.SaveGraph(ctx, st, g)
			} else {
				doc = &store.Document{ID: id, Name: g.Name.Get(), Content: string(codec.MarshalGraph(g))}
				err = st.Put(ctx, doc)
			}
			if err != nil {
				return err
			}
			printSuccess("Stored %s", g.Name.Get())
			printKeyValue("id", doc.ID)
			printKeyValue("backend", cfg.Storage.Backend)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "document id (default: a new UUID; an existing id is replaced)")
	return cmd
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Load a document into a file",
		Args:  cobra.ExactArgs(1),
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

			g, err := store.LoadGraph(ctx, st, args[0], cfg)
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + ".vsg"
			}
			if err := writeGraph(g, output, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != stdio {
				printSuccess("Loaded %s", g.Name.Get())
				printFile(output)
				printStats(g.Vertices.Len(), g.Edges.Len(), false)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <id>.vsg)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents, most recent first",
		Args:  cobra.NoArgs,
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

			docs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No documents")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), documentTable(docs, time.Now()))
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete documents",
		Args:    cobra.MinimumNArgs(1),
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

			for _, id := range args {
				if err := st.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

func documentTable(docs []store.Summary, now time.Time) string {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{d.ID, d.Name, humanSize(d.Size), formatRelativeTime(d.UpdatedAt, now)}
	}
	return renderTable([]string{"ID", "Name", "Size", "Updated"}, rows, func(row, col int) lipgloss.Style {
		if col == 0 {
			return StyleNumber
		}
		if col >= 2 {
			return StyleDim
		}
		return StyleValue
	})
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
