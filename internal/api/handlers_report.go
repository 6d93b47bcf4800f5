package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/resbrowse/resbrowse/internal/assembly"
	"github.com/resbrowse/resbrowse/internal/classify"
	"github.com/resbrowse/resbrowse/internal/tree"
)

// handleReport aggregates the summary of every resource, in declared order.
// The list node performs the blocking handoff that materializes children
// before reading them.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.root.RenderSummary(&tree.LineWriter{W: &buf})

	if r.URL.Query().Get("format") == "html" {
		var html bytes.Buffer
		if err := goldmark.New().Convert(buf.Bytes(), &html); err != nil {
			jsonError(w, "report rendering failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		html.WriteTo(w)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	buf.WriteTo(w)
}

// handleStats counts resources by kind, visibility and sniffed content
// class. Classification reads only the bounded prefix of each payload.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	kinds := map[string]int{}
	visibilities := map[string]int{}
	classes := map[string]int{}
	total := 0

	for _, child := range s.root.Children() {
		node, ok := child.(*tree.ResourceNode)
		if !ok {
			continue
		}
		res := node.Resource()
		total++
		kinds[res.Kind.String()]++
		visibilities[res.Visibility.String()]++

		if res.Kind != assembly.Embedded {
			continue
		}
		stream, err := res.Open()
		if err != nil {
			continue
		}
		classes[classify.Sniff(stream, s.treeCfg.Classifier).String()]++
		_, _ = stream.Seek(0, io.SeekStart)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total":      total,
		"kind":       kinds,
		"visibility": visibilities,
		"class":      classes,
	})
}
