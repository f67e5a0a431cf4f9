package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/palette"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "v", s.Vertex.Prefix)
	assert.Equal(t, -1, s.Vertex.Color)
	assert.Equal(t, 0.05, s.Geometry.SnapMarginRatio)
	assert.Equal(t, 0.85, s.Force.Damping)
	assert.Equal(t, "Untitled", s.Graph.Name)
	assert.Len(t, s.Palette.Elements, 8)
}

func TestClone(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Palette.Elements[0] = palette.White
	c.Force.Damping = 0.5
	assert.Equal(t, palette.Black, s.Palette.Elements[0])
	assert.Equal(t, 0.85, s.Force.Damping)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
[arrange]
grid_spacing = 42.0

[vertex]
prefix = "n"

[palette]
background = "#10203040"
elements = ["#FF0000FF", "#00FF00FF"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, s.Arrange.GridSpacing)
	assert.Equal(t, "n", s.Vertex.Prefix)
	assert.Equal(t, palette.RGBA(0x10, 0x20, 0x30, 0x40), s.Palette.Background)
	assert.Equal(t, []palette.Color{palette.Red, palette.RGB(0, 255, 0)}, s.Palette.Elements)
	assert.Equal(t, 150.0, s.Arrange.TreeSpacing, "untouched keys keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VISIGRAPH_FORCE__REPULSIVE", "0.002")
	t.Setenv("VISIGRAPH_ARRANGE__GRID_SPACING", "80")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("grid-spacing", 100, "")
	fs.Float64("damping", 0.85, "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse([]string{"--damping=0.5", "--unrelated"}))

	s, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 0.002, s.Force.Repulsive)
	assert.Equal(t, 80.0, s.Arrange.GridSpacing, "unchanged flag must not override env")
	assert.Equal(t, 0.5, s.Force.Damping)
}

func TestWriteLoadRoundTrip(t *testing.T) {
	s := Default()
	s.Edge.Thickness = 2.5
	s.Palette.Crossing = palette.RGBA(1, 2, 3, 4)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	assert.Contains(t, buf.String(), `crossing = "#01020304"`)

	path := filepath.Join(t.TempDir(), "visigraph.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestLoadStorageOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VISIGRAPH_STORAGE__REDIS__ADDR", "cache:6380")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("store", "file", "")
	require.NoError(t, fs.Parse([]string{"--store=redis"}))

	s, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "redis", s.Storage.Backend)
	assert.Equal(t, "cache:6380", s.Storage.Redis.Addr)
	assert.Equal(t, "visigraph", s.Storage.Mongo.Database)
	assert.Equal(t, ":8080", s.Server.Addr)
}
