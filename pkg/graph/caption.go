package graph

import (
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/observable"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Caption is free text anchored at a point.
type Caption struct {
	observable.Base

	X        *observable.Property[float64]
	Y        *observable.Property[float64]
	Text     *observable.Property[string]
	Size     *observable.Property[float64]
	Selected *observable.Property[bool]
	Tag      *observable.Property[string]
}

// NewCaption creates a standalone caption. An empty text falls back to the
// configured default text. A nil cfg uses [settings.Default].
func NewCaption(cfg *settings.Settings, x, y float64, text string) *Caption {
	d := settings.OrDefault(cfg).Caption
	if text == "" {
		text = d.Text
	}
	c := &Caption{
		X:        observable.NewProperty(x),
		Y:        observable.NewProperty(y),
		Text:     observable.NewProperty(text),
		Size:     observable.NewProperty(d.FontSize),
		Selected: observable.NewProperty(false),
		Tag:      observable.NewProperty(""),
	}
	relay(&c.Base, c, c.X, c.Y, c.Text, c.Size, c.Selected, c.Tag)
	return c
}

// Position returns the anchor point.
func (c *Caption) Position() geometry.Point {
	return geometry.Pt(c.X.Get(), c.Y.Get())
}

// Clone returns a standalone copy with the same property values.
func (c *Caption) Clone() *Caption {
	n := NewCaption(nil, c.X.Get(), c.Y.Get(), c.Text.Get())
	n.Size.Set(c.Size.Get())
	n.Selected.Set(c.Selected.Get())
	n.Tag.Set(c.Tag.Get())
	return n
}
