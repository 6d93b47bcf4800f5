// Package preview turns resource payloads into display text for the inline
// view. Each supported format has its own previewer; dispatch goes by file
// extension first and falls back to the sniffed content class.
package preview

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/resbrowse/resbrowse/internal/classify"
)

// Preview is the displayable form of a resource payload.
type Preview struct {
	Title    string // Resource name without the format extension
	Text     string // Plain display text
	HTML     string // Rich form, only set by formats that produce one
	Language string // Highlight hint for the display layer
	Pages    int    // Page count for paged formats (0 if N/A)
}

// Previewer converts raw resource bytes into a Preview.
type Previewer interface {
	Preview(r io.Reader, name string) (*Preview, error)
}

// SupportedExtensions lists the format extensions with a dedicated
// previewer. Anything else falls back to the content class.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".xml":  true,
	".pdf":  true,
	".docx": true,
}

// ForContent returns the previewer for a resource, given its name and
// sniffed content class. Binary content without a dedicated previewer is
// not previewable.
func ForContent(name string, class classify.Class) (Previewer, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return &TextPreviewer{}, nil
	case ".md", ".markdown":
		return &MarkdownPreviewer{}, nil
	case ".csv":
		return &CSVPreviewer{}, nil
	case ".html", ".htm":
		return &HTMLPreviewer{}, nil
	case ".xml", ".xaml", ".config", ".resx":
		return &XMLPreviewer{}, nil
	case ".pdf":
		return &PDFPreviewer{}, nil
	case ".docx":
		return &DOCXPreviewer{}, nil
	}

	switch class {
	case classify.XML:
		return &XMLPreviewer{}, nil
	case classify.Text:
		return &TextPreviewer{}, nil
	}
	return nil, fmt.Errorf("no previewer for binary resource %q", name)
}

func titleFor(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
