package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/functions"
	graphio "github.com/matzehuels/visigraph/pkg/io"
	"github.com/matzehuels/visigraph/pkg/observability"
)

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, nil, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"generate", "layout", "relax", "analyze", "export", "watch", "serve", "store", "config", "cache", "version", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.vsg")
	mustRun(t, "generate", "wheel", "5", "--name", "my wheel", "-o", path)

	g, err := graphio.Import(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name.Get() != "my wheel" {
		t.Errorf("name = %q", g.Name.Get())
	}
	if g.Vertices.Len() == 0 {
		t.Error("generated graph is empty")
	}
}

func TestGenerateToStdout(t *testing.T) {
	out := mustRun(t, "generate", "complete", "4", "-o", "-")
	if !strings.HasPrefix(out, `{ "name" : `) {
		t.Errorf("stdout should carry a .vsg document, got %.40q", out)
	}
}

func TestGenerateList(t *testing.T) {
	out := mustRun(t, "generate", "--list")
	for _, want := range []string{"cycle", "complete-bipartite", "forced false"} {
		if !strings.Contains(out, want) {
			t.Errorf("--list output missing %q", want)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown family", []string{"generate", "dodecahedron", "-o", "-"}, errors.ErrCodeGeneratorNotFound},
		{"bad parameters", []string{"generate", "cycle", "many", "-o", "-"}, errors.ErrCodeInvalidParameters},
		{"unknown layout", []string{"generate", "cycle", "3", "--layout", "spiral", "-o", "-"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, nil, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestChangedBool(t *testing.T) {
	cmd := New(io.Discard, log.InfoLevel).generateCommand()
	if err := cmd.ParseFlags([]string{"--directed=false"}); err != nil {
		t.Fatal(err)
	}
	if got := changedBool(cmd.Flags(), "directed", false); got == nil || *got {
		t.Errorf("explicit --directed=false = %v, want pointer to false", got)
	}
	if got := changedBool(cmd.Flags(), "loops", false); got != nil {
		t.Errorf("absent --loops = %v, want nil", *got)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "c.vsg")
	out := filepath.Join(dir, "grid.json")
	mustRun(t, "generate", "cycle", "6", "-o", in)
	mustRun(t, "layout", in, "grid", "contract", "-o", out)

	g, err := graphio.Import(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Vertices.Len() != 6 {
		t.Errorf("vertices = %d, want 6", g.Vertices.Len())
	}

	_, err = runCLI(t, nil, "layout", in, "spiral")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown algorithm error = %v", err)
	}
}

func TestLayoutList(t *testing.T) {
	out := mustRun(t, "layout", "--list")
	if !strings.Contains(out, "force\n") || !strings.Contains(out, "circle\n") {
		t.Errorf("layout --list = %q", out)
	}
}

func TestRelaxHeadless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k4.vsg")
	mustRun(t, "generate", "complete", "4", "-o", path)
	before, _ := os.ReadFile(path)
	mustRun(t, "relax", path, "--headless", "--max-steps", "20")
	after, _ := os.ReadFile(path)
	if bytes.Equal(before, after) {
		t.Error("relax should move vertices")
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.vsg")
	cacheDir := filepath.Join(dir, "cache")
	mustRun(t, "generate", "cycle", "5", "-o", path)

	for range 2 {
		out := mustRun(t, "analyze", path, "--json", "--cache-dir", cacheDir)
		var results []functions.Result
		if err := json.Unmarshal([]byte(out), &results); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		values := map[string]any{}
		for _, r := range results {
			values[r.Name] = r.Value
		}
		if values["vertex-count"] != float64(5) || values["cyclic"] != true {
			t.Errorf("results = %v", values)
		}
	}

	if out := mustRun(t, "analyze", path, "-f", "diameter"); strings.TrimSpace(out) != "2" {
		t.Errorf("diameter = %q, want 2", out)
	}
}

func TestAnalyzeStdin(t *testing.T) {
	doc := mustRun(t, "generate", "complete", "3", "-o", "-")
	out, err := runCLI(t, strings.NewReader(doc), "analyze", "-", "-f", "edge-count")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Errorf("edge-count = %q, want 3", out)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.vsg")
	mustRun(t, "generate", "cycle", "3", "-o", path)

	mustRun(t, "export", path, "--no-cache")
	data, err := os.ReadFile(filepath.Join(dir, "c.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("svg export starts with %.20q", data)
	}

	out := mustRun(t, "export", path, "-f", "dot", "-o", "-", "--no-cache")
	if !strings.HasPrefix(out, "graph ") {
		t.Errorf("dot export starts with %.20q", out)
	}

	_, err = runCLI(t, nil, "export", path, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("gif export error = %v", err)
	}
}

func TestExportFormatSelection(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.svg", formatSVG},
		{"out.PNG", formatPNG},
		{"out.pdf", formatPDF},
		{"out.dot", formatDOT},
		{"out.gv", formatDOT},
		{"out.gv.svg", formatGraphviz},
		{"out.txt", ""},
	}
	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.want {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	if got := exportPath("dir/g.vsg", formatGraphviz); got != "dir/g.gv.svg" {
		t.Errorf("exportPath = %q", got)
	}
	if got := exportPath(stdio, formatPNG); got != "graph.png" {
		t.Errorf("exportPath(stdin) = %q", got)
	}
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "docs")
	path := filepath.Join(dir, "c.vsg")
	mustRun(t, "generate", "cycle", "4", "--name", "square", "-o", path)

	mustRun(t, "store", "put", path, "--id", "sq", "--store-dir", storeDir)
	out := mustRun(t, "store", "list", "--store-dir", storeDir)
	if !strings.Contains(out, "sq") || !strings.Contains(out, "square") {
		t.Errorf("store list = %q", out)
	}

	back := filepath.Join(dir, "back.vsg")
	mustRun(t, "store", "get", "sq", "-o", back, "--store-dir", storeDir)
	g, err := graphio.Import(back, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name.Get() != "square" || g.Vertices.Len() != 4 {
		t.Errorf("loaded %q with %d vertices", g.Name.Get(), g.Vertices.Len())
	}

	mustRun(t, "store", "delete", "sq", "--store-dir", storeDir)
	_, err = runCLI(t, nil, "store", "get", "sq", "--store-dir", storeDir)
	if !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("get after delete error = %v", err)
	}
}

func TestStoreUnknownBackend(t *testing.T) {
	_, err := runCLI(t, nil, "store", "list", "--store", "etcd")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visigraph.toml")
	mustRun(t, "config", "init", path)

	if _, err := runCLI(t, nil, "config", "init", path); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want INVALID_PATH", err)
	}
	mustRun(t, "config", "init", path, "--force")

	out := mustRun(t, "config", "show", "--config", path, "--max-steps", "7")
	if !strings.Contains(out, "[force]") || !strings.Contains(out, "max_steps = 7") {
		t.Errorf("config show missing flag override:\n%s", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out := mustRun(t, "version", "--json")
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatal(err)
	}
	if info["version"] == "" {
		t.Errorf("version info = %v", info)
	}
}
