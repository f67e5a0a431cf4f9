package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/palette"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Document is a decoded graph document.
type Document struct {
	Graph *graph.Graph
	// Palette is the palette stored with the graph, or nil.
	Palette *palette.Palette
}

// Option configures MarshalGraph.
type Option func(*marshalOptions)

type marshalOptions struct {
	palette *palette.Palette
}

// WithPalette stores p alongside the graph.
func WithPalette(p palette.Palette) Option {
	return func(o *marshalOptions) { o.palette = &p }
}

// =============================================================================
// Encoding
// =============================================================================

// MarshalGraph encodes g as a document.
func MarshalGraph(g *graph.Graph, opts ...Option) []byte {
	var o marshalOptions
	for _, opt := range opts {
		opt(&o)
	}
	return []byte(Format(GraphObject(g, o.palette)))
}

// GraphObject builds the document object for g. p is stored when non-nil.
func GraphObject(g *graph.Graph, p *palette.Palette) *Object {
	rules := g.Rules()
	obj := NewObject().
		Set("name", g.Name.Get()).
		Set("tag", g.Tag.Get()).
		Set("allowLoops", rules.Loops).
		Set("allowMultipleEdges", rules.MultipleEdges).
		Set("allowDirectedEdges", rules.DirectedEdges).
		Set("allowCycles", rules.Cycles)

	vertices := make([]any, 0, g.Vertices.Len())
	for _, v := range g.Vertices.Items() {
		vertices = append(vertices, vertexObject(v))
	}
	edges := make([]any, 0, g.Edges.Len())
	for _, e := range g.Edges.Items() {
		edges = append(edges, edgeObject(e))
	}
	captions := make([]any, 0, g.Captions.Len())
	for _, c := range g.Captions.Items() {
		captions = append(captions, captionObject(c))
	}
	obj.Set("vertices", vertices).Set("edges", edges).Set("captions", captions)

	if p != nil {
		obj.Set("palette", paletteObject(*p))
	}
	return obj
}

func vertexObject(v *graph.Vertex) *Object {
	return NewObject().
		Set("id", v.ID.Get()).
		Set("x", v.X.Get()).
		Set("y", v.Y.Get()).
		Set("label", v.Label.Get()).
		Set("radius", v.Radius.Get()).
		Set("color", v.Color.Get()).
		Set("weight", v.Weight.Get()).
		Set("isSelected", v.Selected.Get()).
		Set("tag", v.Tag.Get())
}

func edgeObject(e *graph.Edge) *Object {
	obj := NewObject().
		Set("id", e.ID.Get()).
		Set("isDirected", e.Directed).
		Set("from", e.From().ID.Get()).
		Set("to", e.To().ID.Get()).
		Set("weight", e.Weight.Get()).
		Set("color", e.Color.Get()).
		Set("label", e.Label.Get()).
		Set("isSelected", e.Selected.Get()).
		Set("thickness", e.Thickness.Get()).
		Set("tag", e.Tag.Get()).
		Set("isLinear", e.IsLinear())
	h := e.Handle.Get()
	return obj.Set("handleX", h.X).Set("handleY", h.Y)
}

func captionObject(c *graph.Caption) *Object {
	return NewObject().
		Set("x", c.X.Get()).
		Set("y", c.Y.Get()).
		Set("text", c.Text.Get()).
		Set("size", c.Size.Get()).
		Set("isSelected", c.Selected.Get()).
		Set("tag", c.Tag.Get())
}

func paletteObject(p palette.Palette) *Object {
	elements := make([]any, len(p.Elements))
	for i, c := range p.Elements {
		elements[i] = c
	}
	return NewObject().
		Set("background", p.Background).
		Set("selectionBoxFill", p.SelectionBoxFill).
		Set("selectionBoxLine", p.SelectionBoxLine).
		Set("vertexLine", p.VertexLine).
		Set("selectedVertexFill", p.SelectedFill).
		Set("selectedVertexLine", p.SelectedLine).
		Set("edgeHandle", p.EdgeHandle).
		Set("selectedEdge", p.SelectedEdge).
		Set("captionText", p.CaptionText).
		Set("captionButtonFill", p.CaptionFill).
		Set("captionButtonLine", p.CaptionLine).
		Set("uncoloredEdge", p.UncoloredEdge).
		Set("uncoloredVertex", p.UncoloredVertex).
		Set("crossing", p.Crossing).
		Set("elements", elements)
}

// =============================================================================
// Decoding
// =============================================================================

// UnmarshalGraph decodes a document and returns its graph. A nil cfg uses
// [settings.Default]. Errors carry ErrCodeParse.
func UnmarshalGraph(data []byte, cfg *settings.Settings) (*graph.Graph, error) {
	doc, err := Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	return doc.Graph, nil
}

// Unmarshal decodes a document with its optional palette.
func Unmarshal(data []byte, cfg *settings.Settings) (*Document, error) {
	obj, err := ParseObject(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read graph document")
	}
	doc, err := decodeDocument(obj, settings.OrDefault(cfg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode graph document")
	}
	return doc, nil
}

// fields reads typed members of one object. The first failure sticks and
// later reads return zero values.
type fields struct {
	obj   *Object
	where string
	err   error
}

func (f *fields) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf("%s: %s", f.where, fmt.Sprintf(format, args...))
	}
}

func (f *fields) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := f.obj.Get(k); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f *fields) str(def string, keys ...string) string {
	v, ok := f.lookup(keys...)
	if !ok {
		return def
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		f.fail("%s: expected a string", keys[0])
		return def
	}
}

func (f *fields) num(def float64, keys ...string) float64 {
	v, ok := f.lookup(keys...)
	if !ok {
		return def
	}
	n, isNum := v.(float64)
	if !isNum {
		f.fail("%s: expected a number", keys[0])
		return def
	}
	return n
}

func (f *fields) required(keys ...string) float64 {
	if _, ok := f.lookup(keys...); !ok {
		f.fail("missing %s", keys[0])
		return 0
	}
	return f.num(0, keys...)
}

func (f *fields) integer(def int, keys ...string) int {
	n := f.num(float64(def), keys...)
	if n != math.Trunc(n) {
		f.fail("%s: expected an integer", keys[0])
		return def
	}
	return int(n)
}

func (f *fields) boolean(def bool, keys ...string) bool {
	v, ok := f.lookup(keys...)
	if !ok {
		return def
	}
	b, isBool := v.(bool)
	if !isBool {
		f.fail("%s: expected a boolean", keys[0])
		return def
	}
	return b
}

func (f *fields) color(def palette.Color, key string) palette.Color {
	s := f.str("", key)
	if s == "" {
		return def
	}
	c, err := palette.ParseHex(s)
	if err != nil {
		f.fail("%s: %v", key, err)
		return def
	}
	return c
}

func (f *fields) objects(keys ...string) []*Object {
	v, ok := f.lookup(keys...)
	if !ok {
		return nil
	}
	items, isArray := v.([]any)
	if !isArray {
		f.fail("%s: expected an array", keys[0])
		return nil
	}
	out := make([]*Object, 0, len(items))
	for i, item := range items {
		obj, isObj := item.(*Object)
		if !isObj {
			f.fail("%s[%d]: expected an object", keys[0], i)
			return nil
		}
		out = append(out, obj)
	}
	return out
}

func decodeDocument(obj *Object, cfg *settings.Settings) (*Document, error) {
	f := &fields{obj: obj, where: "graph"}
	d := cfg.Graph
	rules := graph.Rules{
		Loops:         f.boolean(d.AllowLoops, "allowLoops", "areLoopsAllowed"),
		MultipleEdges: f.boolean(d.AllowMultiple, "allowMultipleEdges", "areMultipleEdgesAllowed"),
		DirectedEdges: f.boolean(d.AllowDirected, "allowDirectedEdges", "areDirectedEdgesAllowed"),
		Cycles:        f.boolean(d.AllowCycles, "allowCycles", "areCyclesAllowed"),
	}
	g := graph.New(f.str(d.Name, "name"), rules, cfg)
	g.Tag.Set(f.str("", "tag"))

	vertexObjs := f.objects("vertices", "vertexes")
	edgeObjs := f.objects("edges")
	captionObjs := f.objects("captions")
	var p *palette.Palette
	if pv, ok := obj.Get("palette"); ok && pv != nil {
		po, isObj := pv.(*Object)
		if !isObj {
			f.fail("palette: expected an object")
		} else {
			decoded, err := decodePalette(po, cfg.Palette)
			if err != nil {
				return nil, err
			}
			p = &decoded
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	byID := make(map[string]*graph.Vertex, len(vertexObjs))
	vertices := make([]*graph.Vertex, 0, len(vertexObjs))
	for i, vo := range vertexObjs {
		v, err := decodeVertex(vo, i, cfg)
		if err != nil {
			return nil, err
		}
		id := v.ID.Get()
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("vertex %d: duplicate id %q", i, id)
		}
		byID[id] = v
		vertices = append(vertices, v)
	}

	var err error
	g.Batch(func() {
		g.Vertices.AddAll(vertices...)
		for i, eo := range edgeObjs {
			if err = decodeEdge(g, eo, i, byID); err != nil {
				return
			}
		}
		for i, co := range captionObjs {
			var c *graph.Caption
			if c, err = decodeCaption(co, i, cfg); err != nil {
				return
			}
			g.Captions.Add(c)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Document{Graph: g, Palette: p}, nil
}

func decodeVertex(obj *Object, i int, cfg *settings.Settings) (*graph.Vertex, error) {
	f := &fields{obj: obj, where: fmt.Sprintf("vertex %d", i)}
	d := cfg.Vertex
	id := f.str(strconv.Itoa(i), "id")
	v := graph.NewVertex(cfg, id, f.required("x"), f.required("y"))
	v.Label.Set(f.str(d.Prefix+id, "label"))
	v.Radius.Set(f.num(d.Radius, "radius"))
	v.Color.Set(f.integer(d.Color, "color"))
	v.Weight.Set(f.num(d.Weight, "weight"))
	v.Selected.Set(f.boolean(false, "isSelected"))
	v.Tag.Set(f.str("", "tag"))
	return v, f.err
}

func decodeEdge(g *graph.Graph, obj *Object, i int, byID map[string]*graph.Vertex) error {
	f := &fields{obj: obj, where: fmt.Sprintf("edge %d", i)}
	d := g.Settings().Edge
	fromID, toID := f.str("", "from", "from.id"), f.str("", "to", "to.id")
	directed := f.boolean(g.Rules().DirectedEdges, "isDirected")
	if f.err != nil {
		return f.err
	}
	from, to := byID[fromID], byID[toID]
	if from == nil || to == nil {
		return fmt.Errorf("edge %d: unknown endpoint %q -> %q", i, fromID, toID)
	}

	e := g.NewDirectedEdge(directed, from, to)
	if _, ok := f.lookup("id"); ok {
		e.ID.Set(f.str("", "id"))
	}
	e.Label.Set(f.str(d.Prefix+e.ID.Get(), "label"))
	e.Weight.Set(f.num(d.Weight, "weight"))
	e.Color.Set(f.integer(d.Color, "color"))
	e.Thickness.Set(f.num(d.Thickness, "thickness"))
	e.Selected.Set(f.boolean(false, "isSelected"))
	e.Tag.Set(f.str("", "tag"))
	// Linear edges keep their exact handle when the document has one;
	// older documents only stored it for curved edges.
	_, hasX := f.lookup("handleX")
	_, hasY := f.lookup("handleY")
	if (hasX && hasY) || !f.boolean(true, "isLinear") {
		e.Handle.Set(geometry.Pt(f.required("handleX"), f.required("handleY")))
	}
	if f.err != nil {
		return f.err
	}
	if !g.Edges.Add(e) {
		return fmt.Errorf("edge %d: %q -> %q violates the graph rules", i, fromID, toID)
	}
	return nil
}

func decodeCaption(obj *Object, i int, cfg *settings.Settings) (*graph.Caption, error) {
	f := &fields{obj: obj, where: fmt.Sprintf("caption %d", i)}
	c := graph.NewCaption(cfg, f.required("x"), f.required("y"), f.str("", "text"))
	c.Size.Set(f.num(cfg.Caption.FontSize, "size"))
	c.Selected.Set(f.boolean(false, "isSelected"))
	c.Tag.Set(f.str("", "tag"))
	return c, f.err
}

func decodePalette(obj *Object, def palette.Palette) (palette.Palette, error) {
	f := &fields{obj: obj, where: "palette"}
	p := palette.Palette{
		Background:       f.color(def.Background, "background"),
		SelectionBoxFill: f.color(def.SelectionBoxFill, "selectionBoxFill"),
		SelectionBoxLine: f.color(def.SelectionBoxLine, "selectionBoxLine"),
		VertexLine:       f.color(def.VertexLine, "vertexLine"),
		SelectedFill:     f.color(def.SelectedFill, "selectedVertexFill"),
		SelectedLine:     f.color(def.SelectedLine, "selectedVertexLine"),
		EdgeHandle:       f.color(def.EdgeHandle, "edgeHandle"),
		SelectedEdge:     f.color(def.SelectedEdge, "selectedEdge"),
		CaptionText:      f.color(def.CaptionText, "captionText"),
		CaptionFill:      f.color(def.CaptionFill, "captionButtonFill"),
		CaptionLine:      f.color(def.CaptionLine, "captionButtonLine"),
		UncoloredEdge:    f.color(def.UncoloredEdge, "uncoloredEdge"),
		UncoloredVertex:  f.color(def.UncoloredVertex, "uncoloredVertex"),
		Crossing:         f.color(def.Crossing, "crossing"),
		Elements:         def.Elements,
	}
	if v, ok := obj.Get("elements"); ok && v != nil {
		items, isArray := v.([]any)
		if !isArray {
			f.fail("elements: expected an array")
		}
		p.Elements = make([]palette.Color, 0, len(items))
		for i, item := range items {
			s, isStr := item.(string)
			if !isStr {
				f.fail("elements[%d]: expected a color string", i)
				break
			}
			c, err := palette.ParseHex(s)
			if err != nil {
				f.fail("elements[%d]: %v", i, err)
				break
			}
			p.Elements = append(p.Elements, c)
		}
	}
	return p, f.err
}
