package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// exportFlags are the drawing options shared by export and watch.
type exportFlags struct {
	format      string
	padding     float64
	scale       float64
	transparent bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(exportFormats, ", ")+" (default: from --output, else svg)")
	fs.Float64Var(&f.padding, "padding", 20, "margin around the drawing")
	fs.Float64Var(&f.scale, "scale", 2, "pixel density for png")
	fs.BoolVar(&f.transparent, "transparent", false, "leave out the background")
	fs.Bool("vertex-labels", false, "draw vertex labels")
	fs.Bool("edge-handles", false, "draw handles of selected edges")
	fs.Bool("crossings", false, "mark edge crossings")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exportFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *exportFlags) options(cfg *settings.Settings, output string) (exportOptions, error) {
	format := f.format
	if format == "" && output != "" && output != stdio {
		format = formatFromPath(output)
	}
	if format == "" {
		format = formatSVG
	}
	if _, ok := exportExtension[format]; !ok {
		return exportOptions{}, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (available: %s)",
			format, strings.Join(exportFormats, ", "))
	}
	return exportOptions{
		Format:      format,
		Padding:     f.padding,
		Scale:       f.scale,
		Transparent: f.transparent,
		Display:     cfg.Display,
		Palette:     &cfg.Palette,
	}, nil
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		flags  exportFlags
	)

	cmd := &cobra.Command{
		Use:   "export <graph>",
		Short: "Render a graph as SVG, DOT, PNG or PDF",
		Long: `Render a graph to a drawing.

Formats:
  svg       vector drawing at the stored vertex positions
  dot       Graphviz source with pinned positions
  graphviz  SVG rendered by Graphviz from the dot source
  png, pdf  raster and print output, converted with rsvg-convert

Display options (labels, weights, handles, crossings, captions) come from the
[display] settings and the flags below. Rendered exports are cached by
document content and options.`,
		Example: `  visigraph export petersen.vsg
  visigraph export g.vsg -o g.png --scale 3
  visigraph export g.vsg -f dot -o - | dot -Kneato -n -Tpng > g.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg, output)
			if err != nil {
				return err
			}
			input := args[0]
			g, err := readGraph(input, cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}

			ch := c.openCache(cfg)
			defer ch.Close()
			data, cached, err := newExporter(ch, cfg.Cache).export(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = exportPath(input, opts.Format)
			}
			if err := writeOutput(output, data, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != stdio {
				printSuccess("Exported %s", strings.ToUpper(opts.Format))
				printFile(output)
				printStats(g.Vertices.Len(), g.Edges.Len(), cached)
				printDetail("%s", humanSize(len(data)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input> with the format's extension)")
	flags.register(cmd)

	return cmd
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
