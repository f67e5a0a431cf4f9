package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/visigraph/pkg/buildinfo"
	"github.com/matzehuels/visigraph/pkg/cache"
	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/functions"
	"github.com/matzehuels/visigraph/pkg/generator"
	"github.com/matzehuels/visigraph/pkg/layout"
	"github.com/matzehuels/visigraph/pkg/render/dot"
	"github.com/matzehuels/visigraph/pkg/render/svg"
	"github.com/matzehuels/visigraph/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// generatorInfo describes a generator to API clients.
type generatorInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  string            `json:"parameters"`
	Pattern     string            `json:"pattern,omitempty"`
	Rules       map[string]string `json:"rules"`
}

func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) {
	var out []generatorInfo
	for _, gen := range s.generators.List() {
		p, rules := gen.Parameters(), gen.Rules()
		info := generatorInfo{
			Name:        gen.Name(),
			Description: gen.Description(),
			Parameters:  p.Description,
			Rules: map[string]string{
				"loops":    rules.Loops.String(),
				"multiple": rules.MultipleEdges.String(),
				"directed": rules.DirectedEdges.String(),
				"cycles":   rules.Cycles.String(),
			},
		}
		if p.Pattern != nil {
			info.Pattern = p.Pattern.String()
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

// generateRequest is the body of POST /generate/{name}. Absent rule fields
// keep the generator's defaults.
type generateRequest struct {
	Params   string `json:"params"`
	Name     string `json:"name,omitempty"`
	Loops    *bool  `json:"loops,omitempty"`
	Multiple *bool  `json:"multiple,omitempty"`
	Directed *bool  `json:"directed,omitempty"`
	Cycles   *bool  `json:"cycles,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req generateRequest
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
	}
	if p := r.URL.Query().Get("params"); p != "" {
		req.Params = p
	}

	name := chi.URLParam(r, "name")
	if err := s.generators.CheckSize(name, req.Params, s.cfg.Server.MaxVertices, s.cfg.Server.MaxEdges); err != nil {
		s.writeError(w, r, err)
		return
	}
	o := generator.Overrides{Loops: req.Loops, MultipleEdges: req.Multiple, DirectedEdges: req.Directed, Cycles: req.Cycles}
	g, err := s.generators.Run(r.Context(), name, req.Params, o, s.cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != "" {
		g.Name.Set(req.Name)
	}
	writeDocument(w, http.StatusOK, g)
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, layout.Names())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := layout.Run(r.Context(), g, chi.URLParam(r, "algorithm")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeDocument(w, http.StatusOK, g)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if name := r.URL.Query().Get("function"); name != "" {
		v, err := functions.Evaluate(g, name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if f, ok := v.(float64); ok && math.IsInf(f, 0) {
			v = functions.Format(f)
		}
		writeJSON(w, http.StatusOK, functions.Result{Name: name, Value: v})
		return
	}
	writeJSON(w, http.StatusOK, functions.EvaluateAll(g))
}

var exportTypes = map[string]string{
	"svg": "image/svg+xml",
	"dot": "text/vnd.graphviz",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	contentType, ok := exportTypes[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q", format))
		return
	}
	g, data, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := s.keyer.ExportKey(cache.Hash(data), cache.ExportKeyOpts{Format: format, Display: s.cfg.Display})
	out, hit, err := s.cache.Get(r.Context(), key)
	if err != nil || !hit {
		switch format {
		case "svg":
			out = svg.Render(g, svg.WithDisplay(s.cfg.Display))
		case "dot":
			out = []byte(dot.ToDOT(g, dot.Options{Labels: s.cfg.Display.VertexLabels}))
		}
		if err := s.cache.Set(r.Context(), key, out, s.ttl); err != nil {
			s.logger.Warn("Cache write failed", "err", err)
		}
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(out)
}

// =============================================================================
// Documents
// =============================================================================

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	s.putDocument(w, r, "", http.StatusCreated)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	s.putDocument(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) putDocument(w http.ResponseWriter, r *http.Request, id string, status int) {
	g, _, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := &store.Document{ID: id, Name: g.Name.Get(), Content: string(codec.MarshalGraph(g))}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/documents/"+doc.ID)
	writeJSON(w, status, doc.Summary())
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", doc.UpdatedAt.Format(http.TimeFormat))
	_, _ = w.Write([]byte(doc.Content))
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
