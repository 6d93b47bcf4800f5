package tree

import (
	"bytes"
	"fmt"
	"image"
	"io"

	// Raster formats the entry renderer understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/resbrowse/resbrowse/internal/restable"
)

// EntryNode is one blob-valued entry of a decoded resource table.
type EntryNode struct {
	key  string
	data []byte
}

// NewEntryNode wraps a decoded table entry.
func NewEntryNode(e restable.Entry) *EntryNode {
	return &EntryNode{key: e.Key, data: e.Data}
}

func (n *EntryNode) Name() string { return n.key }

func (n *EntryNode) Icon() Icon { return IconResourceEntry }

func (n *EntryNode) Filter(c Criteria) FilterResult {
	if c.matches(n.key) {
		return Match
	}
	return Hidden
}

// Children: table entries are leaves.
func (n *EntryNode) Children() []Node { return nil }

// Render tries the raster image decoders first and falls back to the binary
// markup-document decoder. Decode failures are not errors, just "not
// viewable": a resource table full of opaque payloads is a normal sight.
func (n *EntryNode) Render() RenderOutcome {
	img, format, err := image.Decode(bytes.NewReader(n.data))
	if err == nil {
		return RenderOutcome{Viewable: true, Image: img, Format: format}
	}
	if _, err := decodeMarkupDocument(bytes.NewReader(n.data)); err == nil {
		// Unreachable until the markup decoder exists; kept so the
		// fallback order stays observable.
		return RenderOutcome{Viewable: true}
	}
	return RenderOutcome{}
}

// Describe returns the one-line form used in aggregate reports.
func (n *EntryNode) Describe() string {
	return fmt.Sprintf("%s = byte stream (%d bytes)", n.key, len(n.data))
}

func (n *EntryNode) RenderSummary(out Output) {
	out.WriteLine(n.Describe())
	if b, ok := out.(ButtonOutput); ok {
		b.AddButton("Save", n.Save)
	}
}

// TryRenderInline is not applicable to table entries; Render covers them.
func (n *EntryNode) TryRenderInline(Viewer) bool { return false }

// Save copies the entry's raw bytes, starting from offset 0, to a
// destination chosen by the prompter. Returns false when the prompter
// cancels or the copy fails.
func (n *EntryNode) Save(p Prompter) bool {
	if p == nil {
		return false
	}
	w, ok := p.CreateTarget(n.key)
	if !ok {
		return false
	}
	_, err := io.Copy(w, bytes.NewReader(n.data))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err == nil
}
