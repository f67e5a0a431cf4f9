package io

import (
	"io"

	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// ReadVSG decodes a graph document from r.
func ReadVSG(r io.Reader, cfg *settings.Settings) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read")
	}
	return codec.UnmarshalGraph(data, cfg)
}

// WriteVSG encodes g as a graph document followed by a newline.
func WriteVSG(g *graph.Graph, w io.Writer) error {
	data := append(codec.MarshalGraph(g), '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write")
	}
	return nil
}
