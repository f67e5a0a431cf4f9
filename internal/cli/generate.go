package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/visigraph/pkg/generator"
	"github.com/matzehuels/visigraph/pkg/layout"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output   string
		name     string
		arrange  string
		list     bool
		loops    bool
		multiple bool
		directed bool
		cycles   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <family> [parameters...]",
		Short: "Generate a graph from a named family",
		Long: `Generate a graph from a named family such as cycle, complete or wheel.

Parameters follow the family name, e.g. "generate complete-bipartite 3 4".
Each family declares which edge rules it supports. Rule flags override the
family's defaults unless the family forces the rule.

Use --list to see every family with its parameters and rules.`,
		Example: `  visigraph generate cycle 6
  visigraph generate symmetric-tree 3 2 --layout tree -o tree.vsg
  visigraph generate complete 5 -o - | visigraph analyze -`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := generator.Builtin()
			if list {
				fmt.Fprintln(cmd.OutOrStdout(), generatorTable(reg.List()))
				return nil
			}

			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			o := generator.Overrides{
				Loops:         changedBool(cmd.Flags(), "loops", loops),
				MultipleEdges: changedBool(cmd.Flags(), "multiple", multiple),
				DirectedEdges: changedBool(cmd.Flags(), "directed", directed),
				Cycles:        changedBool(cmd.Flags(), "cycles", cycles),
			}
			g, err := reg.Run(cmd.Context(), args[0], strings.Join(args[1:], " "), o, cfg)
			if err != nil {
				return err
			}
			if name != "" {
				g.Name.Set(name)
			}
			if arrange != "" {
				if _, err := layout.Run(cmd.Context(), g, arrange); err != nil {
					return err
				}
			}

			if output == "" {
				output = args[0] + ".vsg"
			}
			if err := writeGraph(g, output, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != stdio {
				printSuccess("Generated %s", g.Name.Get())
				printFile(output)
				printStats(g.Vertices.Len(), g.Edges.Len(), false)
				printNewline()
				printNextStep("Export", "visigraph export "+output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <family>.vsg)")
	f.StringVar(&name, "name", "", "graph name (default: family name and parameters)")
	f.StringVar(&arrange, "layout", "", "layout algorithm to apply after generating")
	f.BoolVarP(&list, "list", "l", false, "list available families")
	f.BoolVar(&loops, "loops", false, "allow loops")
	f.BoolVar(&multiple, "multiple", false, "allow parallel edges")
	f.BoolVar(&directed, "directed", false, "make edges directed")
	f.BoolVar(&cycles, "cycles", false, "allow cycles")
	_ = cmd.RegisterFlagCompletionFunc("layout", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return layout.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for _, gen := range generator.Builtin().List() {
			names = append(names, gen.Name())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}

// changedBool returns a pointer to v if the flag was given explicitly.
func changedBool(f *pflag.FlagSet, name string, v bool) *bool {
	if !f.Changed(name) {
		return nil
	}
	return &v
}

// generatorTable lists generator families with their parameters and rules.
func generatorTable(gens []generator.Generator) string {
	rows := make([][]string, 0, len(gens))
	for _, gen := range gens {
		r := gen.Rules()
		rows = append(rows, []string{
			gen.Name(),
			gen.Description(),
			gen.Parameters().Description,
			r.Loops.String(),
			r.MultipleEdges.String(),
			r.DirectedEdges.String(),
			r.Cycles.String(),
		})
	}
	return renderTable(
		[]string{"Family", "Description", "Parameters", "Loops", "Multiple", "Directed", "Cycles"},
		rows,
		func(row, col int) lipgloss.Style {
			if col == 0 {
				return StyleNumber
			}
			if col >= 3 && strings.HasPrefix(rows[row][col], "forced") {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		},
	)
}
