package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resbrowse/resbrowse/internal/export"
)

// handleExport copies raw resource bytes to the configured export store.
// With a key query parameter it exports a single table entry instead of the
// whole resource. Save failures come back as a boolean result, matching
// the node contract, with a gateway status so callers can tell.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := r.URL.Query().Get("key")

	prompter := &export.Prompter{Store: s.store, Ctx: r.Context(), Log: s.log}

	var (
		saved     bool
		suggested string
	)
	if key != "" {
		entry, ok := s.findEntry(name, key)
		if !ok {
			jsonError(w, "no such entry", http.StatusNotFound)
			return
		}
		saved = entry.Save(prompter)
		suggested = key
	} else {
		node, ok := s.findResource(name)
		if !ok {
			jsonError(w, "no such resource", http.StatusNotFound)
			return
		}
		saved = node.Save(prompter)
		suggested = name
	}

	w.Header().Set("Content-Type", "application/json")
	if !saved {
		w.WriteHeader(http.StatusBadGateway)
	}
	json.NewEncoder(w).Encode(map[string]any{
		"saved": saved,
		"name":  suggested,
	})
}
