package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/pkg/layout"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "layout <graph> <algorithm>...",
		Short: "Arrange the vertices of a graph",
		Long: `Arrange the vertices of a graph with one or more layout algorithms.

Algorithms run in the order given. Each acts on the selected vertices, or on
the whole graph when nothing is selected. The force algorithm runs the
spring simulation until it settles or reaches force.max_steps.

The input may be a .vsg or node-link .json file, or - for a .vsg document on
stdin. The result replaces the input file unless --output is given.`,
		Example: `  visigraph layout petersen.vsg circle
  visigraph layout g.vsg grid force --max-steps 500 -o relaxed.vsg`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return nil
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(layout.Names(), "\n"))
				return nil
			}
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			input := args[0]
			g, err := readGraph(input, cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), "Arranging...")
			spinner.Start()
			for _, name := range args[1:] {
				spinner.SetMessage(fmt.Sprintf("Running %s...", name))
				moved, err := layout.Run(cmd.Context(), g, name)
				if err != nil {
					spinner.StopWithError("Layout failed")
					return err
				}
				if !moved {
					c.Logger.Debug("Layout left graph unchanged", "algorithm", name)
				}
			}
			spinner.Stop()

			if output == "" {
				output = input
			}
			if err := writeGraph(g, output, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != stdio {
				prog.done(fmt.Sprintf("Arranged %d vertices", g.Vertices.Len()))
				printSuccess("Layout complete")
				printFile(output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file, - for stdout (default: overwrite input)")
	f.BoolVarP(&list, "list", "l", false, "list layout algorithms")
	f.Float64("grid-spacing", 0, "distance between grid cells")
	f.Float64("tree-spacing", 0, "distance between tree levels")
	f.Float64("circle-radius", 0, "circle radius as a multiple of the vertex radius")
	addForceFlags(f)
	cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return []string{"vsg", "json"}, cobra.ShellCompDirectiveFilterFileExt
		}
		return layout.Names(), cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}
