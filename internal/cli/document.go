package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/visigraph/pkg/cache"
	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	graphio "github.com/matzehuels/visigraph/pkg/io"
	"github.com/matzehuels/visigraph/pkg/observability"
	"github.com/matzehuels/visigraph/pkg/palette"
	"github.com/matzehuels/visigraph/pkg/render"
	"github.com/matzehuels/visigraph/pkg/render/dot"
	"github.com/matzehuels/visigraph/pkg/render/svg"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// stdio names standard input or output in place of a file.
const stdio = "-"

// readGraph loads a document from path, or a .vsg document from stdin.
func readGraph(path string, stdin io.Reader, cfg *settings.Settings) (*graph.Graph, error) {
	if path == stdio {
		return graphio.Read(stdin, graphio.FormatVSG, cfg)
	}
	return graphio.Import(path, cfg)
}

// writeGraph saves g to path in the format its extension selects, or as
// .vsg to stdout.
func writeGraph(g *graph.Graph, path string, stdout io.Writer) error {
	if path == stdio {
		return graphio.Write(g, stdout, graphio.FormatVSG)
	}
	return graphio.Export(g, path)
}

// =============================================================================
// Exports
// =============================================================================

// Export formats.
const (
	formatSVG      = "svg"
	formatDOT      = "dot"
	formatGraphviz = "graphviz"
	formatPNG      = "png"
	formatPDF      = "pdf"
)

var exportFormats = []string{formatSVG, formatDOT, formatGraphviz, formatPNG, formatPDF}

// exportExtension is the file extension written for each format.
var exportExtension = map[string]string{
	formatSVG:      ".svg",
	formatDOT:      ".dot",
	formatGraphviz: ".gv.svg",
	formatPNG:      ".png",
	formatPDF:      ".pdf",
}

// exportOptions controls how a drawing is produced.
type exportOptions struct {
	Format      string
	Padding     float64
	Scale       float64
	Transparent bool
	Display     settings.Display
	Palette     *palette.Palette
}

// formatFromPath picks the export format from an output file name.
func formatFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gv.svg"):
		return formatGraphviz
	case strings.HasSuffix(lower, ".gv"):
		return formatDOT
	}
	ext := strings.TrimPrefix(filepath.Ext(lower), ".")
	for _, f := range exportFormats {
		if f == ext {
			return f
		}
	}
	return ""
}

// exportPath derives an output path from the input document name.
func exportPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if input == stdio {
		base = "graph"
	}
	return base + exportExtension[format]
}

// exporter renders graphs and caches the results by document content.
type exporter struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

func newExporter(c cache.Cache, cfg settings.Cache) *exporter {
	return &exporter{cache: c, keyer: cache.NewScopedKeyer(nil, "cli:"), ttl: cache.TTL(cfg)}
}

// export renders g. The second result reports a cache hit.
func (e *exporter) export(ctx context.Context, g *graph.Graph, opts exportOptions) ([]byte, bool, error) {
	// The document carries the palette, so its hash covers the colors too.
	var docOpts []codec.Option
	if opts.Palette != nil {
		docOpts = append(docOpts, codec.WithPalette(*opts.Palette))
	}
	key := e.keyer.ExportKey(cache.Hash(codec.MarshalGraph(g, docOpts...)), cache.ExportKeyOpts{
		Format:      opts.Format,
		Display:     opts.Display,
		Padding:     opts.Padding,
		Scale:       opts.Scale,
		Transparent: opts.Transparent,
	})
	if data, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	data, err := renderExport(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		loggerFromContext(ctx).Warn("Cache write failed", "err", err)
	}
	return data, false, nil
}

// renderExport produces one export without caching.
func renderExport(ctx context.Context, g *graph.Graph, opts exportOptions) (data []byte, err error) {
	if opts.Format == formatGraphviz {
		return dot.RenderSVG(ctx, dot.ToDOT(g, dotOptions(opts)))
	}

	hooks := observability.Workbench()
	hooks.OnExportStart(ctx, opts.Format)
	start := time.Now()
	defer func() { hooks.OnExportComplete(ctx, opts.Format, len(data), time.Since(start), err) }()

	switch opts.Format {
	case formatDOT:
		return []byte(dot.ToDOT(g, dotOptions(opts))), nil
	case formatSVG:
		return renderSVG(g, opts), nil
	case formatPNG:
		return render.ToPNG(ctx, renderSVG(g, opts), opts.Scale)
	case formatPDF:
		return render.ToPDF(ctx, renderSVG(g, opts))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (available: %s)",
		opts.Format, strings.Join(exportFormats, ", "))
}

func renderSVG(g *graph.Graph, opts exportOptions) []byte {
	svgOpts := []svg.Option{svg.WithDisplay(opts.Display), svg.WithPadding(opts.Padding)}
	if opts.Palette != nil {
		svgOpts = append(svgOpts, svg.WithPalette(*opts.Palette))
	}
	if opts.Transparent {
		svgOpts = append(svgOpts, svg.WithTransparentBackground())
	}
	return svg.Render(g, svgOpts...)
}

func dotOptions(opts exportOptions) dot.Options {
	return dot.Options{
		Labels:  opts.Display.VertexLabels || opts.Display.EdgeLabels,
		Weights: opts.Display.VertexWeights || opts.Display.EdgeWeights,
		Palette: opts.Palette,
	}
}

// writeOutput writes data to path atomically, or to stdout.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdio {
		_, err := io.Copy(stdout, bytes.NewReader(data))
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
