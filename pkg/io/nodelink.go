package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/layout"
	"github.com/matzehuels/visigraph/pkg/settings"
)

type nodeLink struct {
	Name     string `json:"name,omitempty"`
	Directed bool   `json:"directed,omitempty"`
	Nodes    []node `json:"nodes"`
	Edges    []edge `json:"edges"`
}

type node struct {
	ID     string   `json:"id"`
	Label  string   `json:"label,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Color  *int     `json:"color,omitempty"`
}

type edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Label  string   `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Color  *int     `json:"color,omitempty"`
}

// WriteNodeLink encodes g in the node-link interchange format.
func WriteNodeLink(g *graph.Graph, w io.Writer) error {
	out := nodeLink{
		Name:     g.Name.Get(),
		Directed: g.Rules().DirectedEdges,
		Nodes:    make([]node, 0, g.Vertices.Len()),
		Edges:    make([]edge, 0, g.Edges.Len()),
	}
	for _, v := range g.Vertices.Items() {
		x, y, weight, color := v.X.Get(), v.Y.Get(), v.Weight.Get(), v.Color.Get()
		nd := node{ID: v.ID.Get(), Label: v.Label.Get(), X: &x, Y: &y, Weight: &weight}
		if color >= 0 {
			nd.Color = &color
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges.Items() {
		weight, color := e.Weight.Get(), e.Color.Get()
		ed := edge{From: e.From().ID.Get(), To: e.To().ID.Get(), Label: e.Label.Get(), Weight: &weight}
		if color >= 0 {
			ed.Color = &color
		}
		out.Edges = append(out.Edges, ed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ReadNodeLink decodes a node-link graph. The graph allows loops, multiple
// edges and cycles; edges are directed when the document says so. Nodes
// without both coordinates are arranged on a circle.
func ReadNodeLink(r io.Reader, cfg *settings.Settings) (*graph.Graph, error) {
	var data nodeLink
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode")
	}

	cfg = settings.OrDefault(cfg)
	name := data.Name
	if name == "" {
		name = cfg.Graph.Name
	}
	g := graph.New(name, graph.Rules{
		Loops:         true,
		MultipleEdges: true,
		DirectedEdges: data.Directed,
		Cycles:        true,
	}, cfg)

	byID := make(map[string]*graph.Vertex, len(data.Nodes))
	var unplaced []*graph.Vertex
	for _, n := range data.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeParse, "node without id")
		}
		if _, dup := byID[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeParse, "node %s: duplicate id", n.ID)
		}
		v := graph.NewVertex(cfg, n.ID, 0, 0)
		if n.X != nil && n.Y != nil {
			v.SetPosition(geometry.Pt(*n.X, *n.Y))
		} else {
			unplaced = append(unplaced, v)
		}
		if n.Label != "" {
			v.Label.Set(n.Label)
		}
		if n.Weight != nil {
			v.Weight.Set(*n.Weight)
		}
		if n.Color != nil {
			v.Color.Set(*n.Color)
		}
		byID[n.ID] = v
	}

	var err error
	g.Batch(func() {
		for _, n := range data.Nodes {
			g.Vertices.Add(byID[n.ID])
		}
		for _, ed := range data.Edges {
			from, to := byID[ed.From], byID[ed.To]
			if from == nil || to == nil {
				err = errors.New(errors.ErrCodeParse, "edge %s->%s: unknown node", ed.From, ed.To)
				return
			}
			e := g.NewEdge(from, to)
			if ed.Label != "" {
				e.Label.Set(ed.Label)
			}
			if ed.Weight != nil {
				e.Weight.Set(*ed.Weight)
			}
			if ed.Color != nil {
				e.Color.Set(*ed.Color)
			}
			g.Edges.Add(e)
		}
		if len(unplaced) > 0 {
			for _, v := range unplaced {
				v.Selected.Set(true)
			}
			layout.Circle(g)
			for _, v := range unplaced {
				v.Selected.Set(false)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
