// Package settings holds the tunable constants of the graph model, layout
// engine and exporters.
//
// Settings are an explicit value passed to the constructors that need
// them; there is no process-wide instance. [Default] returns the built-in
// values and [Load] layers a TOML file, environment variables and command
// line flags on top of them.
package settings

import "github.com/matzehuels/visigraph/pkg/palette"

// Settings is the complete configuration.
type Settings struct {
	Vertex   VertexDefaults  `koanf:"vertex" toml:"vertex"`
	Edge     EdgeDefaults    `koanf:"edge" toml:"edge"`
	Caption  CaptionDefaults `koanf:"caption" toml:"caption"`
	Graph    GraphDefaults   `koanf:"graph" toml:"graph"`
	Geometry Geometry        `koanf:"geometry" toml:"geometry"`
	Arrange  Arrange         `koanf:"arrange" toml:"arrange"`
	Force    Force           `koanf:"force" toml:"force"`
	Display  Display         `koanf:"display" toml:"display"`
	Palette  palette.Palette `koanf:"palette" toml:"palette"`
	Storage  Storage         `koanf:"storage" toml:"storage"`
	Cache    Cache           `koanf:"cache" toml:"cache"`
	Server   Server          `koanf:"server" toml:"server"`
}

// VertexDefaults are the initial property values of new vertices.
type VertexDefaults struct {
	Prefix string  `koanf:"prefix" toml:"prefix"`
	Radius float64 `koanf:"radius" toml:"radius"`
	Color  int     `koanf:"color" toml:"color"`
	Weight float64 `koanf:"weight" toml:"weight"`
}

// EdgeDefaults are the initial property values of new edges.
type EdgeDefaults struct {
	Prefix            string  `koanf:"prefix" toml:"prefix"`
	Weight            float64 `koanf:"weight" toml:"weight"`
	Color             int     `koanf:"color" toml:"color"`
	Thickness         float64 `koanf:"thickness" toml:"thickness"`
	LoopDiameter      float64 `koanf:"loop_diameter" toml:"loop_diameter"`
	HandleRadiusRatio float64 `koanf:"handle_radius_ratio" toml:"handle_radius_ratio"`
	ArrowRatio        float64 `koanf:"arrow_ratio" toml:"arrow_ratio"`
}

// CaptionDefaults are the initial property values of new captions.
type CaptionDefaults struct {
	Text     string  `koanf:"text" toml:"text"`
	FontSize float64 `koanf:"font_size" toml:"font_size"`
}

// GraphDefaults describe a graph created without explicit rules.
type GraphDefaults struct {
	Name          string `koanf:"name" toml:"name"`
	AllowLoops    bool   `koanf:"allow_loops" toml:"allow_loops"`
	AllowDirected bool   `koanf:"allow_directed" toml:"allow_directed"`
	AllowMultiple bool   `koanf:"allow_multiple" toml:"allow_multiple"`
	AllowCycles   bool   `koanf:"allow_cycles" toml:"allow_cycles"`
}

// Geometry holds tolerances of edge geometry.
type Geometry struct {
	// SnapMarginRatio is the largest handle distance from the straight
	// line, relative to the edge length, at which an edge counts as linear.
	SnapMarginRatio float64 `koanf:"snap_margin_ratio" toml:"snap_margin_ratio"`
	// CloseDistance is the squared distance below which a point counts as
	// lying on a segment.
	CloseDistance float64 `koanf:"close_distance" toml:"close_distance"`
}

// Arrange holds the spacing constants of the placement algorithms.
type Arrange struct {
	CircleRadiusMultiplier float64 `koanf:"circle_radius_multiplier" toml:"circle_radius_multiplier"`
	GridSpacing            float64 `koanf:"grid_spacing" toml:"grid_spacing"`
	TreeSpacing            float64 `koanf:"tree_spacing" toml:"tree_spacing"`
	ContractFactor         float64 `koanf:"contract_factor" toml:"contract_factor"`
	ExpandFactor           float64 `koanf:"expand_factor" toml:"expand_factor"`
}

// Force holds the constants of the force-directed simulation.
type Force struct {
	Attractive    float64 `koanf:"attractive" toml:"attractive"`
	Repulsive     float64 `koanf:"repulsive" toml:"repulsive"`
	Damping       float64 `koanf:"damping" toml:"damping"`
	RestScale     float64 `koanf:"rest_scale" toml:"rest_scale"`
	MinDistanceSq float64 `koanf:"min_distance_sq" toml:"min_distance_sq"`
	Coulomb       float64 `koanf:"coulomb" toml:"coulomb"`
	Speed         float64 `koanf:"speed" toml:"speed"`
	Threshold     float64 `koanf:"threshold" toml:"threshold"`
	MaxSteps      int     `koanf:"max_steps" toml:"max_steps"`
}

// Display toggles optional elements of exported drawings.
type Display struct {
	VertexLabels  bool `koanf:"vertex_labels" toml:"vertex_labels"`
	VertexWeights bool `koanf:"vertex_weights" toml:"vertex_weights"`
	EdgeHandles   bool `koanf:"edge_handles" toml:"edge_handles"`
	EdgeLabels    bool `koanf:"edge_labels" toml:"edge_labels"`
	EdgeWeights   bool `koanf:"edge_weights" toml:"edge_weights"`
	Captions      bool `koanf:"captions" toml:"captions"`
	Crossings     bool `koanf:"crossings" toml:"crossings"`
}

// Storage selects and configures the document store.
type Storage struct {
	// Backend is one of "file", "redis" or "mongo".
	Backend string `koanf:"backend" toml:"backend"`
	// Dir is the file backend's directory. Empty means the user config
	// directory.
	Dir   string `koanf:"dir" toml:"dir"`
	Redis Redis  `koanf:"redis" toml:"redis"`
	Mongo Mongo  `koanf:"mongo" toml:"mongo"`
}

// Redis configures the Redis document store.
type Redis struct {
	Addr     string `koanf:"addr" toml:"addr"`
	Password string `koanf:"password" toml:"password"`
	DB       int    `koanf:"db" toml:"db"`
	Prefix   string `koanf:"prefix" toml:"prefix"`
}

// Mongo configures the MongoDB document store.
type Mongo struct {
	URI        string `koanf:"uri" toml:"uri"`
	Database   string `koanf:"database" toml:"database"`
	Collection string `koanf:"collection" toml:"collection"`
}

// Cache configures the export cache.
type Cache struct {
	// Dir is the cache directory. Empty means the user cache directory.
	Dir string `koanf:"dir" toml:"dir"`
	// TTLHours is how long cached exports stay valid.
	TTLHours float64 `koanf:"ttl_hours" toml:"ttl_hours"`
	// Disabled bypasses the cache.
	Disabled bool `koanf:"disabled" toml:"disabled"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `koanf:"addr" toml:"addr"`
	// MaxVertices and MaxEdges bound the graphs POST /generate builds.
	// Zero disables a limit.
	MaxVertices int `koanf:"max_vertices" toml:"max_vertices"`
	MaxEdges    int `koanf:"max_edges" toml:"max_edges"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Vertex: VertexDefaults{
			Prefix: "v",
			Radius: 5,
			Color:  -1,
			Weight: 1,
		},
		Edge: EdgeDefaults{
			Prefix:            "e",
			Weight:            1,
			Color:             -1,
			Thickness:         0.75,
			LoopDiameter:      50,
			HandleRadiusRatio: 1.5,
			ArrowRatio:        4,
		},
		Caption: CaptionDefaults{
			FontSize: 14,
		},
		Graph: GraphDefaults{
			Name:          "Untitled",
			AllowLoops:    true,
			AllowDirected: false,
			AllowMultiple: true,
			AllowCycles:   true,
		},
		Geometry: Geometry{
			SnapMarginRatio: 0.05,
			CloseDistance:   0.01,
		},
		Arrange: Arrange{
			CircleRadiusMultiplier: 10,
			GridSpacing:            100,
			TreeSpacing:            150,
			ContractFactor:         0.8,
			ExpandFactor:           1.25,
		},
		Force: Force{
			Attractive:    0.01,
			Repulsive:     0.001,
			Damping:       0.85,
			RestScale:     10,
			MinDistanceSq: 900,
			Coulomb:       8987551787,
			Speed:         1,
			Threshold:     0.01,
			MaxSteps:      5000,
		},
		Display: Display{
			VertexLabels: true,
			EdgeHandles:  true,
			Captions:     true,
		},
		Palette: palette.Default(),
		Storage: Storage{
			Backend: "file",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "visigraph:",
			},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "visigraph",
				Collection: "documents",
			},
		},
		Cache: Cache{
			TTLHours: 24,
		},
		Server: Server{
			Addr:        ":8080",
			MaxVertices: 10000,
			MaxEdges:    100000,
		},
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Palette.Elements = append([]palette.Color(nil), s.Palette.Elements...)
	return &c
}

// OrDefault returns s, or the built-in settings when s is nil.
func OrDefault(s *Settings) *Settings {
	if s == nil {
		return Default()
	}
	return s
}
