package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/layout"
)

// relaxCommand creates the relax command.
func (c *CLI) relaxCommand() *cobra.Command {
	var (
		output   string
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "relax <graph>",
		Short: "Run the force simulation interactively",
		Long: `Run the force-directed simulation and watch the graph settle in the terminal.

The simulation stops on its own once the kinetic energy falls below
force.threshold or after force.max_steps steps.

Keys: space pauses, s or enter saves and quits, q discards and quits.

With --headless the simulation runs to completion without the preview and
the result is written immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadSettings(cmd)
			if err != nil {
				return err
			}
			input := args[0]
			g, err := readGraph(input, cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			if output == "" {
				output = input
			}

			prog := newProgress(c.Logger)
			sim := layout.NewSimulation(g)
			if headless {
				spinner := newSpinnerWithContext(cmd.Context(), "Relaxing...")
				spinner.Start()
				energy, settled, err := sim.Run(cmd.Context())
				spinner.Stop()
				if err != nil {
					return err
				}
				if !settled {
					printWarning("Stopped after %d steps without settling (energy %.4g)", sim.Steps(), energy)
				}
			} else {
				m := newRelaxModel(g, sim)
				final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return err
				}
				if !final.(relaxModel).save {
					printInfo("Discarded")
					return nil
				}
			}

			if err := writeGraph(g, output, cmd.OutOrStdout()); err != nil {
				return err
			}
			if output != stdio {
				prog.done(fmt.Sprintf("Relaxed %d vertices in %d steps", g.Vertices.Len(), sim.Steps()))
				printFile(output)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file, - for stdout (default: overwrite input)")
	f.BoolVar(&headless, "headless", false, "run without the interactive preview")
	addForceFlags(f)

	return cmd
}

// addForceFlags registers the flags mapped to force settings.
func addForceFlags(f *pflag.FlagSet) {
	f.Float64("attractive-force", 0, "spring constant of edges")
	f.Float64("repulsive-force", 0, "charge of vertices")
	f.Float64("damping", 0, "velocity kept per step")
	f.Float64("speed", 0, "position change per unit velocity")
	f.Float64("threshold", 0, "kinetic energy below which the graph has settled")
	f.Int("max-steps", 0, "step limit")
}

// =============================================================================
// relaxModel - Interactive force simulation
// =============================================================================

const relaxTick = 30 * time.Millisecond

// stepsPerTick keeps the animation smooth for small force.speed values.
const stepsPerTick = 4

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(relaxTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type relaxModel struct {
	g         *graph.Graph
	sim       *layout.Simulation
	speed     float64
	threshold float64
	maxSteps  int

	energy  float64
	settled bool
	paused  bool
	save    bool
	width   int
	height  int
}

func newRelaxModel(g *graph.Graph, sim *layout.Simulation) relaxModel {
	f := g.Settings().Force
	return relaxModel{
		g:         g,
		sim:       sim,
		speed:     f.Speed,
		threshold: f.Threshold,
		maxSteps:  max(f.MaxSteps, 1),
		width:     60,
		height:    20,
	}
}

func (m relaxModel) Init() tea.Cmd {
	return tick()
}

func (m relaxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s", "enter":
			m.save = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 10)
		m.height = max(msg.Height-8, 5)
	case tickMsg:
		if m.paused || m.settled {
			return m, tick()
		}
		for range stepsPerTick {
			m.energy = m.sim.Step(m.speed)
			if m.energy < m.threshold || m.sim.Steps() >= m.maxSteps {
				m.settled = true
				break
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m relaxModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Relaxing " + m.g.Name.Get()))
	b.WriteString("\n")
	status := StyleNumber.Render("running")
	switch {
	case m.settled && m.energy < m.threshold:
		status = StyleSuccess.Render("settled")
	case m.settled:
		status = StyleWarning.Render("step limit")
	case m.paused:
		status = StyleDim.Render("paused")
	}
	b.WriteString(fmt.Sprintf("%s  step %s/%d  energy %s\n\n",
		status, StyleValue.Render(fmt.Sprint(m.sim.Steps())), m.maxSteps, StyleValue.Render(fmt.Sprintf("%.4g", m.energy))))

	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Render(canvas(m.g, m.width, m.height)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause  s save  q quit"))
	return b.String()
}

// canvas draws g as characters on a w by h grid, scaled to fit. Edges are
// straight dotted lines between their endpoints.
func canvas(g *graph.Graph, w, h int) string {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}

	lo, hi, ok := g.Bounds()
	if ok {
		spanX, spanY := math.Max(hi.X-lo.X, 1), math.Max(hi.Y-lo.Y, 1)
		// Terminal cells are about twice as tall as wide.
		scale := math.Min(float64(w-1)/spanX, 2*float64(h-1)/spanY)
		cell := func(v *graph.Vertex) (int, int) {
			p := v.Position()
			return int(math.Round((p.X - lo.X) * scale)), int(math.Round((p.Y - lo.Y) * scale / 2))
		}
		set := func(x, y int, r rune) {
			if y >= 0 && y < h && x >= 0 && x < w {
				cells[y][x] = r
			}
		}
		for _, e := range g.Edges.Items() {
			if e.IsLoop() {
				continue
			}
			x0, y0 := cell(e.From())
			x1, y1 := cell(e.To())
			n := max(abs(x1-x0), abs(y1-y0))
			for i := 1; i < n; i++ {
				t := float64(i) / float64(n)
				set(x0+int(math.Round(t*float64(x1-x0))), y0+int(math.Round(t*float64(y1-y0))), '·')
			}
		}
		for _, v := range g.Vertices.Items() {
			x, y := cell(v)
			set(x, y, '●')
		}
	}

	lines := make([]string, h)
	for i, row := range cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
