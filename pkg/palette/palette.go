package palette

// Common colors.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(255, 255, 255)
	Blue      = RGB(0, 0, 255)
	Red       = RGB(255, 0, 0)
	LightGray = RGB(192, 192, 192)
)

// Palette assigns colors to the parts of a drawn graph.
type Palette struct {
	Background       Color   `koanf:"background" toml:"background"`
	SelectionBoxFill Color   `koanf:"selection_box_fill" toml:"selection_box_fill"`
	SelectionBoxLine Color   `koanf:"selection_box_line" toml:"selection_box_line"`
	VertexLine       Color   `koanf:"vertex_line" toml:"vertex_line"`
	SelectedFill     Color   `koanf:"selected_vertex_fill" toml:"selected_vertex_fill"`
	SelectedLine     Color   `koanf:"selected_vertex_line" toml:"selected_vertex_line"`
	EdgeHandle       Color   `koanf:"edge_handle" toml:"edge_handle"`
	SelectedEdge     Color   `koanf:"selected_edge" toml:"selected_edge"`
	CaptionText      Color   `koanf:"caption_text" toml:"caption_text"`
	CaptionFill      Color   `koanf:"caption_button_fill" toml:"caption_button_fill"`
	CaptionLine      Color   `koanf:"caption_button_line" toml:"caption_button_line"`
	UncoloredEdge    Color   `koanf:"uncolored_edge" toml:"uncolored_edge"`
	UncoloredVertex  Color   `koanf:"uncolored_vertex" toml:"uncolored_vertex"`
	Crossing         Color   `koanf:"crossing" toml:"crossing"`
	Elements         []Color `koanf:"elements" toml:"elements"`
}

// Default returns the workbench palette.
func Default() Palette {
	elements := []Color{Black, RGB(185, 122, 27)}
	for h := 0; h < 6; h++ {
		elements = append(elements, HSB(float64(h)/6, .95, .95))
	}
	return Palette{
		Background:       RGB(250, 250, 250),
		SelectionBoxFill: RGBA(150, 150, 255, 100),
		SelectionBoxLine: RGBA(150, 150, 255, 200),
		VertexLine:       Black,
		SelectedFill:     RGBA(0, 0, 255, 75),
		SelectedLine:     Blue,
		EdgeHandle:       LightGray,
		SelectedEdge:     Blue,
		CaptionText:      Black,
		CaptionFill:      RGB(230, 230, 230),
		CaptionLine:      RGB(193, 193, 193),
		UncoloredEdge:    Black,
		UncoloredVertex:  RGB(193, 193, 193),
		Crossing:         Red,
		Elements:         elements,
	}
}

// VertexFill returns the fill color for a vertex with the given color index.
func (p Palette) VertexFill(index int) Color {
	if index < 0 || len(p.Elements) == 0 {
		return p.UncoloredVertex
	}
	return p.Elements[index%len(p.Elements)]
}

// EdgeLine returns the stroke color for an edge with the given color index.
func (p Palette) EdgeLine(index int) Color {
	if index < 0 || len(p.Elements) == 0 {
		return p.UncoloredEdge
	}
	return p.Elements[index%len(p.Elements)]
}
