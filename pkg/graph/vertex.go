package graph

import (
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/observable"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Vertex is a node of a graph.
type Vertex struct {
	observable.Base

	ID       *observable.Property[string]
	X        *observable.Property[float64]
	Y        *observable.Property[float64]
	Label    *observable.Property[string]
	Radius   *observable.Property[float64]
	Color    *observable.Property[int] // palette index, -1 for uncolored
	Weight   *observable.Property[float64]
	Selected *observable.Property[bool]
	Tag      *observable.Property[string]
}

// NewVertex creates a standalone vertex labeled with the configured prefix
// followed by id. A nil cfg uses [settings.Default].
func NewVertex(cfg *settings.Settings, id string, x, y float64) *Vertex {
	d := settings.OrDefault(cfg).Vertex
	v := &Vertex{
		ID:       observable.NewProperty(id),
		X:        observable.NewProperty(x),
		Y:        observable.NewProperty(y),
		Label:    observable.NewProperty(d.Prefix + id),
		Radius:   observable.NewProperty(d.Radius),
		Color:    observable.NewProperty(d.Color),
		Weight:   observable.NewProperty(d.Weight),
		Selected: observable.NewProperty(false),
		Tag:      observable.NewProperty(""),
	}
	relay(&v.Base, v, v.ID, v.X, v.Y, v.Label, v.Radius, v.Color, v.Weight, v.Selected, v.Tag)
	return v
}

// Position returns the vertex location.
func (v *Vertex) Position() geometry.Point {
	return geometry.Pt(v.X.Get(), v.Y.Get())
}

// SetPosition moves the vertex, emitting a single event.
func (v *Vertex) SetPosition(p geometry.Point) {
	if !p.IsFinite() {
		return
	}
	v.Batch(func() {
		v.X.Set(p.X)
		v.Y.Set(p.Y)
	})
}

// Translate moves the vertex by (dx, dy).
func (v *Vertex) Translate(dx, dy float64) {
	v.SetPosition(v.Position().Add(geometry.Pt(dx, dy)))
}

// Clone returns a standalone copy with the same property values.
func (v *Vertex) Clone() *Vertex {
	c := NewVertex(nil, v.ID.Get(), v.X.Get(), v.Y.Get())
	c.Label.Set(v.Label.Get())
	c.Radius.Set(v.Radius.Get())
	c.Color.Set(v.Color.Get())
	c.Weight.Set(v.Weight.Get())
	c.Selected.Set(v.Selected.Get())
	c.Tag.Set(v.Tag.Get())
	return c
}
