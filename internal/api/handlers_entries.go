package api

import (
	"encoding/json"
	"image/png"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resbrowse/resbrowse/internal/tree"
)

// handleListEntries lists the decoded table entries of an embedded
// resource. Resources without a decodable table simply have no entries.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	node, ok := s.findResource(chi.URLParam(r, "name"))
	if !ok {
		jsonError(w, "no such resource", http.StatusNotFound)
		return
	}

	type entryInfo struct {
		Key      string `json:"key"`
		Describe string `json:"describe"`
	}
	entries := []entryInfo{}
	for _, child := range node.Children() {
		e := child.(*tree.EntryNode)
		entries = append(entries, entryInfo{Key: e.Name(), Describe: e.Describe()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

// handleEntryRender renders a single table entry. Raster entries come back
// re-encoded as PNG; everything else reports not-viewable, including the
// reserved binary markup documents.
func (s *Server) handleEntryRender(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.findEntry(chi.URLParam(r, "name"), r.URL.Query().Get("key"))
	if !ok {
		jsonError(w, "no such entry", http.StatusNotFound)
		return
	}

	outcome := entry.Render()
	if !outcome.Viewable {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnsupportedMediaType)
		json.NewEncoder(w).Encode(map[string]any{
			"viewable": false,
			"describe": entry.Describe(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Source-Format", outcome.Format)
	if err := png.Encode(w, outcome.Image); err != nil {
		s.log.Error("image re-encode failed", "entry", entry.Name(), "error", err)
	}
}

func (s *Server) findEntry(resourceName, key string) (*tree.EntryNode, bool) {
	if key == "" {
		return nil, false
	}
	node, ok := s.findResource(resourceName)
	if !ok {
		return nil, false
	}
	for _, child := range node.Children() {
		if e, ok := child.(*tree.EntryNode); ok && e.Name() == key {
			return e, true
		}
	}
	return nil, false
}
