package generator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/layout"
)

var (
	orderPattern = regexp.MustCompile(`^\s*0*([1-9]\d{0,6})\s*$`)
	pairPattern  = regexp.MustCompile(`^\s*0*([1-9]\d{0,6})\s+0*([1-9]\d{0,6})\s*$`)

	// cycleOrderPattern accepts orders of at least three.
	cycleOrderPattern = regexp.MustCompile(`^\s*0*([1-9]\d{1,6}|[3-9])\s*$`)

	// cycleTailPattern is a cycle order of at least three followed by a
	// positive length.
	cycleTailPattern = regexp.MustCompile(`^\s*0*([1-9]\d{1,6}|[3-9])\s+0*([1-9]\d{0,6})\s*$`)
)

// Builtin returns a registry holding every built-in generator.
func Builtin() *Registry {
	r := NewRegistry()
	for _, gen := range []Generator{
		emptyGraph(),
		cycleGraph(),
		completeGraph(),
		completeBipartiteGraph(),
		symmetricTree(),
		starGraph(),
		wheelGraph(),
		ladderGraph(),
		panGraph(),
		antiprismGraph(),
		crownGraph(),
		circulantGraph(),
		lollipopGraph(),
		tadpoleGraph(),
	} {
		r.MustRegister(gen)
	}
	return r
}

// simpleUndirected are the rules of families that are simple undirected
// graphs with cycles.
var simpleUndirected = Rules{
	Loops:         DefaultFalse,
	MultipleEdges: DefaultFalse,
	DirectedEdges: ForcedFalse,
	Cycles:        ForcedTrue,
}

// ring places n vertices clockwise on a circle around center, starting at
// the top. The radius grows with n.
func ring(g *graph.Graph, center geometry.Point, n int) []*graph.Vertex {
	return ringAt(g, center, g.Settings().Arrange.CircleRadiusMultiplier*float64(n), n, 0)
}

// ringAt is ring with an explicit radius, rotated clockwise by phase.
func ringAt(g *graph.Graph, center geometry.Point, radius float64, n int, phase float64) []*graph.Vertex {
	step := 2 * math.Pi / float64(n)
	out := make([]*graph.Vertex, n)
	for i := range n {
		a := step*float64(i) - math.Pi/2 + phase
		out[i] = g.AddVertex(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return out
}

// connectCycle joins consecutive vertices of vs and the last to the first.
func connectCycle(g *graph.Graph, vs []*graph.Vertex) {
	for i := range vs {
		g.Connect(vs[i], vs[(i+1)%len(vs)])
	}
}

// tail hangs a path of n vertices above v.
func tail(g *graph.Graph, v *graph.Vertex, n int) {
	spacing := g.Settings().Arrange.GridSpacing
	prev := v
	for i := 1; i <= n; i++ {
		next := g.AddVertex(v.X.Get(), v.Y.Get()-float64(i)*spacing)
		g.Connect(prev, next)
		prev = next
	}
}

// row places n vertices on the horizontal line y, centered on x = 0.
func row(g *graph.Graph, n int, y float64) []*graph.Vertex {
	spacing := g.Settings().Arrange.GridSpacing
	out := make([]*graph.Vertex, n)
	for i := range n {
		out[i] = g.AddVertex((float64(i)-float64(n-1)/2)*spacing, y)
	}
	return out
}

func emptyGraph() Generator {
	return &family{
		name:        "empty",
		description: "Empty graph",
		rules: Rules{
			Loops:         DefaultFalse,
			MultipleEdges: DefaultFalse,
			DirectedEdges: DefaultFalse,
			Cycles:        DefaultTrue,
		},
		params: Parameters{
			Description: "[order (optional)]",
			Pattern:     regexp.MustCompile(`^\s*0*(\d{1,7})?\s*$`),
		},
		size: func(a []int) (float64, float64) { return float64(max(a[0], 0)), 0 },
		build: func(g *graph.Graph, args []int) {
			for range max(args[0], 0) {
				g.AddVertex(0, 0)
			}
			layout.Grid(g)
		},
	}
}

func cycleGraph() Generator {
	return &family{
		name:        "cycle",
		description: "Cycle graph",
		rules:       simpleUndirected,
		params: Parameters{
			Description: "[order]",
			Pattern:     regexp.MustCompile(`^\s*0*(\d{1,7})\s*$`),
		},
		size: func(a []int) (float64, float64) { return float64(a[0]), float64(a[0]) },
		build: func(g *graph.Graph, args []int) {
			n := args[0]
			if n == 0 {
				return
			}
			connectCycle(g, ring(g, geometry.Point{}, n))
		},
	}
}

func completeGraph() Generator {
	return &family{
		name:        "complete",
		description: "Complete graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order]", Pattern: orderPattern},
		size:        completeSize,
		build: func(g *graph.Graph, args []int) {
			vs := ring(g, geometry.Point{}, args[0])
			for i := range vs {
				for j := i + 1; j < len(vs); j++ {
					g.Connect(vs[i], vs[j])
				}
			}
		},
	}
}

func completeBipartiteGraph() Generator {
	return &family{
		name:        "complete-bipartite",
		description: "Complete bipartite graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of set A] [order of set B]", Pattern: pairPattern},
		size:        func(a []int) (float64, float64) { return float64(a[0] + a[1]), float64(a[0]) * float64(a[1]) },
		build: func(g *graph.Graph, args []int) {
			spacing := g.Settings().Arrange.GridSpacing
			a := row(g, args[0], -spacing)
			b := row(g, args[1], spacing)
			for _, from := range a {
				for _, to := range b {
					g.Connect(from, to)
				}
			}
		},
	}
}

func symmetricTree() Generator {
	return &family{
		name:        "symmetric-tree",
		description: "Symmetric tree",
		rules: Rules{
			Loops:         ForcedFalse,
			MultipleEdges: ForcedFalse,
			DirectedEdges: ForcedFalse,
			Cycles:        ForcedFalse,
		},
		params: Parameters{
			Description: "[levels] [fan-out]",
			Pattern:     regexp.MustCompile(`^\s*0*([1-9]|10)\s*0*([1-9]\d{0,6})\s*$`),
		},
		size: treeSize,
		build: func(g *graph.Graph, args []int) {
			branch(g, args[0], args[1], geometry.Point{})
		},
	}
}

func completeSize(a []int) (vertices, edges float64) {
	n := float64(a[0])
	return n, n * (n - 1) / 2
}

// treeSize counts the vertices of a symmetric tree: the sum of fanOut^i for
// i up to levels. A tree has one edge fewer.
func treeSize(a []int) (vertices, edges float64) {
	levels, fanOut := a[0], float64(a[1])
	for i := range levels + 1 {
		vertices += math.Pow(fanOut, float64(i))
	}
	return vertices, vertices - 1
}

// branch adds a subtree of the given depth rooted at p. Branches spread
// evenly around their parent and reach further out the closer they are
// to the root.
func branch(g *graph.Graph, level, fanOut int, p geometry.Point) *graph.Vertex {
	root := g.AddVertex(p.X, p.Y)
	if level == 0 {
		return root
	}
	reach := 100 * math.Pow(float64(level), 1.3)
	step := 2 * math.Pi / float64(fanOut)
	for i := range fanOut {
		a := step * float64(i)
		child := branch(g, level-1, fanOut, p.Add(geometry.Pt(reach*math.Cos(a), reach*math.Sin(a))))
		g.Connect(root, child)
	}
	return root
}

func starGraph() Generator {
	return &family{
		name:        "star",
		description: "Star graph",
		rules: Rules{
			Loops:         DefaultFalse,
			MultipleEdges: DefaultFalse,
			DirectedEdges: ForcedFalse,
			Cycles:        DefaultTrue,
		},
		params: Parameters{Description: "[order]", Pattern: orderPattern},
		size:   func(a []int) (float64, float64) { return float64(a[0]), float64(a[0] - 1) },
		build: func(g *graph.Graph, args []int) {
			hub := g.AddVertex(0, 0)
			if args[0] == 1 {
				return
			}
			for _, leaf := range ring(g, geometry.Point{}, args[0]-1) {
				g.Connect(hub, leaf)
			}
		},
	}
}

func wheelGraph() Generator {
	return &family{
		name:        "wheel",
		description: "Wheel graph",
		rules:       simpleUndirected,
		params: Parameters{
			Description: "[order]",
			Pattern:     regexp.MustCompile(`^\s*0*([4-9]|[1-9]\d{1,6})\s*$`),
		},
		size: wheelSize,
		build: func(g *graph.Graph, args []int) {
			hub := g.AddVertex(0, 0)
			rim := ring(g, geometry.Point{}, args[0]-1)
			for _, v := range rim {
				g.Connect(hub, v)
			}
			connectCycle(g, rim)
		},
	}
}

func wheelSize(a []int) (vertices, edges float64) {
	n := float64(a[0])
	return n, 2 * (n - 1)
}

func ladderGraph() Generator {
	return &family{
		name:        "ladder",
		description: "Ladder graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[rungs]", Pattern: orderPattern},
		size:        ladderSize,
		build: func(g *graph.Graph, args []int) {
			spacing := g.Settings().Arrange.GridSpacing
			var prevTop, prevBottom *graph.Vertex
			for col := range args[0] {
				x := float64(col) * spacing
				top := g.AddVertex(x, 0)
				bottom := g.AddVertex(x, spacing)
				g.Connect(top, bottom)
				if col > 0 {
					g.Connect(prevTop, top)
					g.Connect(prevBottom, bottom)
				}
				prevTop, prevBottom = top, bottom
			}
		},
	}
}

func ladderSize(a []int) (vertices, edges float64) {
	n := float64(a[0])
	return 2 * n, 3*n - 2
}

func panGraph() Generator {
	return &family{
		name:        "pan",
		description: "Pan graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of cycle]", Pattern: cycleOrderPattern},
		size:        func(a []int) (float64, float64) { return float64(a[0] + 1), float64(a[0] + 1) },
		build: func(g *graph.Graph, args []int) {
			vs := ring(g, geometry.Point{}, args[0])
			connectCycle(g, vs)
			tail(g, vs[0], 1)
		},
	}
}

func antiprismGraph() Generator {
	return &family{
		name:        "antiprism",
		description: "Antiprism graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of base]", Pattern: cycleOrderPattern},
		size:        func(a []int) (float64, float64) { return 2 * float64(a[0]), 4 * float64(a[0]) },
		build: func(g *graph.Graph, args []int) {
			n := args[0]
			radius := g.Settings().Arrange.CircleRadiusMultiplier * float64(n)
			spread := 2.0
			if n == 3 {
				spread = 2.75
			}
			inner := ringAt(g, geometry.Point{}, radius, n, 0)
			// Outer vertex i sits between inner vertices i and i+1.
			outer := ringAt(g, geometry.Point{}, spread*radius, n, math.Pi/float64(n))
			connectCycle(g, inner)
			connectCycle(g, outer)
			for i := range n {
				g.Connect(inner[i], outer[i])
				g.Connect(inner[(i+1)%n], outer[i])
			}
		},
	}
}

func crownGraph() Generator {
	return &family{
		name:        "crown",
		description: "Crown graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of each set]", Pattern: cycleOrderPattern},
		size:        crownSize,
		build: func(g *graph.Graph, args []int) {
			spacing := g.Settings().Arrange.GridSpacing
			top := row(g, args[0], -spacing)
			bottom := row(g, args[0], spacing)
			for j, from := range top {
				for k, to := range bottom {
					if j != k {
						g.Connect(from, to)
					}
				}
			}
		},
	}
}

func crownSize(a []int) (vertices, edges float64) {
	n := float64(a[0])
	return 2 * n, n * (n - 1)
}

func circulantGraph() Generator {
	return &family{
		name:        "circulant",
		description: "Circulant graph",
		rules:       simpleUndirected,
		params: Parameters{
			Description: "[order] : [offset 0] [offset 1] ...",
			Pattern:     regexp.MustCompile(`^\s*0*([1-9]\d{1,6}|[3-9])\s*:(\s*0*[1-9]\d{0,6}(?:\s+0*[1-9]\d{0,6})*)\s*$`),
		},
		args: circulantArgs,
		size: func(a []int) (float64, float64) { return float64(a[0]), float64(a[0]) * float64(len(a)-1) },
		build: func(g *graph.Graph, args []int) {
			n := args[0]
			vs := ring(g, geometry.Point{}, n)
			for _, offset := range args[1:] {
				for i := range n {
					g.Connect(vs[i], vs[(i+offset)%n])
				}
			}
		},
	}
}

// circulantArgs returns the order followed by the offsets. Offsets above
// half the order would repeat a smaller offset in the other direction.
func circulantArgs(groups []string) ([]int, error) {
	n, err := strconv.Atoi(groups[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameters, err, "circulant: order %q", groups[0])
	}
	args := []int{n}
	for _, s := range strings.Fields(groups[1]) {
		offset, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameters, err, "circulant: offset %q", s)
		}
		if offset > n/2 {
			return nil, errors.New(errors.ErrCodeInvalidParameters,
				"circulant: offset %d is more than half the order %d", offset, n)
		}
		args = append(args, offset)
	}
	return args, nil
}

func lollipopGraph() Generator {
	return &family{
		name:        "lollipop",
		description: "Lollipop graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of lollipop] [order of stick]", Pattern: cycleTailPattern},
		size:        lollipopSize,
		build: func(g *graph.Graph, args []int) {
			head := ring(g, geometry.Point{}, args[0])
			for i := range head {
				for j := i + 1; j < len(head); j++ {
					g.Connect(head[i], head[j])
				}
			}
			tail(g, head[0], args[1])
		},
	}
}

func lollipopSize(a []int) (vertices, edges float64) {
	m, n := float64(a[0]), float64(a[1])
	return m + n, m*(m-1)/2 + n
}

func tadpoleGraph() Generator {
	return &family{
		name:        "tadpole",
		description: "Tadpole graph",
		rules:       simpleUndirected,
		params:      Parameters{Description: "[order of cycle] [order of tail]", Pattern: cycleTailPattern},
		size:        func(a []int) (float64, float64) { return float64(a[0] + a[1]), float64(a[0] + a[1]) },
		build: func(g *graph.Graph, args []int) {
			vs := ring(g, geometry.Point{}, args[0])
			connectCycle(g, vs)
			tail(g, vs[0], args[1])
		},
	}
}
