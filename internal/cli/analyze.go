package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visigraph/pkg/cache"
	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/functions"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON   bool
		function string
	)

	cmd := &cobra.Command{
		Use:   "analyze <graph>",
		Short: "Evaluate graph functions",
		Long: `Evaluate every read-only graph function, such as connectivity, cycle
detection, crossing count, diameter and radius, and print the results.

Functions that modify the graph, like two-coloring, run only when named with
--function; the modified graph is not saved.

Results are cached by document content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			g, err := readGraph(args[0], cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if function != "" {
				v, err := functions.Evaluate(g, function)
				if err != nil {
					return err
				}
				if asJSON {
					if f, ok := v.(float64); ok && math.IsInf(f, 0) {
						v = functions.Format(f)
					}
					return json.NewEncoder(out).Encode(functions.Result{Name: function, Value: v})
				}
				fmt.Fprintln(out, functions.Format(v))
				return nil
			}

			results, cached, err := c.evaluateAll(cmd, g, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			fmt.Fprintln(out, resultTable(results))
			printStats(g.Vertices.Len(), g.Edges.Len(), cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().StringVarP(&function, "function", "f", "", "evaluate a single function")
	_ = cmd.RegisterFlagCompletionFunc("function", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return functions.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// evaluateAll runs functions.EvaluateAll through the analysis cache.
func (c *CLI) evaluateAll(cmd *cobra.Command, g *graph.Graph, cfg *settings.Settings) ([]functions.Result, bool, error) {
	ctx := cmd.Context()
	ch := c.openCache(cfg)
	defer ch.Close()

	key := cache.NewScopedKeyer(nil, "cli:").AnalysisKey(cache.Hash(codec.MarshalGraph(g)))
	if data, ok, err := ch.Get(ctx, key); err == nil && ok {
		var results []functions.Result
		if err := json.Unmarshal(data, &results); err == nil {
			return results, true, nil
		}
	}

	results := functions.EvaluateAll(g)
	data, err := json.Marshal(results)
	if err != nil {
		return nil, false, err
	}
	if err := ch.Set(ctx, key, data, cache.TTL(cfg.Cache)); err != nil {
		c.Logger.Warn("Cache write failed", "err", err)
	}
	return results, false, nil
}

// resultTable formats function results. Failed functions show their error.
func resultTable(results []functions.Result) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		value := functions.Format(r.Value)
		if r.Error != "" {
			value = r.Error
		}
		rows[i] = []string{r.Name, value}
	}
	return renderTable([]string{"Function", "Value"}, rows, func(row, col int) lipgloss.Style {
		switch {
		case col == 0:
			return StyleDim
		case results[row].Error != "":
			return StyleError
		default:
			return StyleValue
		}
	})
}
