package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resbrowse/resbrowse/internal/classify"
	"github.com/resbrowse/resbrowse/internal/highlight"
	"github.com/resbrowse/resbrowse/internal/preview"
	"github.com/resbrowse/resbrowse/internal/tree"
)

type resourceInfo struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Visibility string `json:"visibility"`
	Entries    int    `json:"entries,omitempty"`
}

// handleListResources lists resources, filtered through the node hierarchy
// the same way an interactive tree view would filter them.
func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	criteria := tree.Criteria{
		Term:         r.URL.Query().Get("q"),
		ShowInternal: r.URL.Query().Get("internal") == "true",
	}

	listing := []resourceInfo{}
	if s.root.Filter(criteria) != tree.Hidden {
		for _, child := range s.root.Children() {
			if child.Filter(criteria) != tree.Match {
				continue
			}
			node := child.(*tree.ResourceNode)
			res := node.Resource()
			listing = append(listing, resourceInfo{
				Name:       res.Name,
				Kind:       res.Kind.String(),
				Visibility: res.Visibility.String(),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"resources": listing})
}

// handleResource returns metadata and the summary line of one resource.
func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	node, ok := s.findResource(chi.URLParam(r, "name"))
	if !ok {
		jsonError(w, "no such resource", http.StatusNotFound)
		return
	}
	res := node.Resource()

	var summary summaryBuffer
	node.RenderSummary(&summary)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":       res.Name,
		"kind":       res.Kind.String(),
		"visibility": res.Visibility.String(),
		"entries":    len(node.Children()),
		"summary":    summary.lines,
	})
}

// handleResourceContent serves the inline view of a resource. Binary or
// oversized resources are excluded with 415, matching the tree's inline
// policy. With format=html the content goes through the preview dispatch
// instead, which knows richer formats than the raw inline view.
func (s *Server) handleResourceContent(w http.ResponseWriter, r *http.Request) {
	node, ok := s.findResource(chi.URLParam(r, "name"))
	if !ok {
		jsonError(w, "no such resource", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "preview" || r.URL.Query().Get("format") == "html" {
		s.serveResourcePreview(w, node, r.URL.Query().Get("format"))
		return
	}

	var v textViewer
	if !node.TryRenderInline(&v) {
		jsonError(w, "resource is not inline-viewable", http.StatusUnsupportedMediaType)
		return
	}
	if !v.def.None() {
		w.Header().Set("X-Highlight-Language", v.def.Language)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, v.text)
}

// serveResourcePreview runs the format-specific previewers, with an LRU
// cache in front since previewing can re-parse the whole payload.
func (s *Server) serveResourcePreview(w http.ResponseWriter, node *tree.ResourceNode, format string) {
	res := node.Resource()
	cacheKey := res.Name

	pv, ok := s.cache.Get(cacheKey)
	if !ok {
		stream, err := res.Open()
		if err != nil {
			jsonError(w, "resource not readable: "+err.Error(), http.StatusBadGateway)
			return
		}
		if stream.Size() > s.cfg.InlineCeilingBytes {
			jsonError(w, "resource exceeds inline ceiling", http.StatusUnsupportedMediaType)
			return
		}
		class := classify.Sniff(stream, s.treeCfg.Classifier)
		if _, err := stream.Seek(0, io.SeekStart); err != nil {
			jsonError(w, "resource not seekable", http.StatusInternalServerError)
			return
		}
		p, err := preview.ForContent(res.Name, class)
		if err != nil {
			jsonError(w, "resource has no preview: "+err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		pv, err = p.Preview(stream, res.Name)
		if err != nil {
			s.log.Warn("preview failed", "resource", res.Name, "error", err)
			jsonError(w, "preview failed", http.StatusUnsupportedMediaType)
			return
		}
		s.cache.Add(cacheKey, pv)
	}

	if format == "html" && pv.HTML != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, pv.HTML)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pv)
}

// findResource locates a resource node by exact name, materializing the
// list through the dispatch loop.
func (s *Server) findResource(name string) (*tree.ResourceNode, bool) {
	for _, child := range s.root.Children() {
		if node, ok := child.(*tree.ResourceNode); ok && node.Name() == name {
			return node, true
		}
	}
	return nil, false
}

// textViewer captures the inline rendering for the HTTP response.
type textViewer struct {
	text string
	def  highlight.Definition
}

func (v *textViewer) ShowText(text string, def highlight.Definition) {
	v.text = text
	v.def = def
}

// summaryBuffer collects summary lines without interactive capabilities.
type summaryBuffer struct {
	lines []string
}

func (b *summaryBuffer) WriteLine(s string) { b.lines = append(b.lines, s) }

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
