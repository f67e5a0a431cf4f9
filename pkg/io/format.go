package io

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Format identifies a graph file format.
type Format string

const (
	FormatVSG      Format = "vsg"
	FormatNodeLink Format = "json"
)

// DetectFormat returns the format for path's extension.
func DetectFormat(path string) (Format, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatNodeLink, nil
	default:
		return FormatVSG, nil
	}
}

// Read decodes a graph in format f from r. A nil cfg uses
// [settings.Default]. Read does not close r.
func Read(r io.Reader, f Format, cfg *settings.Settings) (*graph.Graph, error) {
	switch f {
	case FormatVSG:
		return ReadVSG(r, cfg)
	case FormatNodeLink:
		return ReadNodeLink(r, cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

// Write encodes g in format f to w.
func Write(g *graph.Graph, w io.Writer, f Format) error {
	switch f {
	case FormatVSG:
		return WriteVSG(g, w)
	case FormatNodeLink:
		return WriteNodeLink(g, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

// Import reads the graph file at path, choosing the format by extension.
func Import(path string, cfg *settings.Settings) (*graph.Graph, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()

	g, err := Read(file, f, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return g, nil
}

// Export writes g to path, choosing the format by extension.
func Export(g *graph.Graph, path string) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(g, file, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
