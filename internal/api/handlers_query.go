package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wenjia-h/corpustree/internal/registry"
	"github.com/wenjia-h/corpustree/internal/tree"
)

// getCorpus resolves the corpusID route parameter. A nil return means the
// 404 response has already been written.
func (s *Server) getCorpus(w http.ResponseWriter, r *http.Request) *registry.Corpus {
	corpusID := chi.URLParam(r, "corpusID")
	c, ok := s.corpora.Get(corpusID)
	if !ok {
		jsonError(w, "corpus not found", http.StatusNotFound)
		return nil
	}
	return c
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	c := s.getCorpus(w, r)
	if c == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c.Summary)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	c := s.getCorpus(w, r)
	if c == nil {
		return
	}
	nodeID := chi.URLParam(r, "nodeID")
	n, err := c.Tree.Lookup(nodeID)
	if err != nil {
		var nf *tree.NotFoundError
		if errors.As(err, &nf) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	parent, _ := c.Tree.Parent(n.ID)
	children := c.Tree.Children(n.ID)
	if children == nil {
		children = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"node":     nodeView(n),
		"parent":   parent,
		"children": children,
	})
}

func (s *Server) handleFindNodes(w http.ResponseWriter, r *http.Request) {
	c := s.getCorpus(w, r)
	if c == nil {
		return
	}

	if tag := r.URL.Query().Get("version"); tag != "" {
		hits := c.Tree.FindByVersion(tag)
		out := make([]map[string]any, 0, len(hits))
		for _, h := range hits {
			out = append(out, map[string]any{
				"node":       nodeView(h.Node),
				"matched_by": strategyNames(h.MatchedBy),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"version": tag, "nodes": out})
		return
	}

	if typ := r.URL.Query().Get("type"); typ != "" {
		nodes := c.Tree.FindByType(typ)
		out := make([]map[string]any, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, nodeView(n))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"type": typ, "nodes": out})
		return
	}

	jsonError(w, "type or version query parameter is required", http.StatusBadRequest)
}

func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	c := s.getCorpus(w, r)
	if c == nil {
		return
	}

	start := r.URL.Query().Get("start")
	if start == "" {
		jsonError(w, "start query parameter is required", http.StatusBadRequest)
		return
	}

	// Absent depth means unbounded.
	maxDepth := -1
	if v := r.URL.Query().Get("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "depth must be an integer", http.StatusBadRequest)
			return
		}
		maxDepth = n
	}

	var allowedTypes []string
	if v := r.URL.Query().Get("types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				allowedTypes = append(allowedTypes, t)
			}
		}
	}

	sub, err := c.Tree.SubgraphByDepth(start, maxDepth, allowedTypes)
	if err != nil {
		var nf *tree.NotFoundError
		if errors.As(err, &nf) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sub.ToNodeLink())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	c := s.getCorpus(w, r)
	if c == nil {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "nodelink"
	}

	switch format {
	case "nodelink":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c.Tree.ToNodeLink())
	case "nested":
		rec, err := c.Tree.ToRecord()
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	default:
		jsonError(w, "format must be nodelink or nested", http.StatusBadRequest)
	}
}

func nodeView(n *tree.Node) map[string]any {
	return map[string]any{
		"id":    n.ID,
		"type":  n.Type,
		"name":  n.Name,
		"attrs": n.Attrs,
	}
}

func strategyNames(m tree.MatchStrategy) []string {
	names := make([]string, 0, 3)
	if m&tree.MatchAttribute != 0 {
		names = append(names, "attribute")
	}
	if m&tree.MatchVersionName != 0 {
		names = append(names, "version_name")
	}
	if m&tree.MatchIDPrefix != 0 {
		names = append(names, "id_prefix")
	}
	return names
}
