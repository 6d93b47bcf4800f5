package tree

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/resbrowse/resbrowse/internal/assembly"
	"github.com/resbrowse/resbrowse/internal/classify"
	"github.com/resbrowse/resbrowse/internal/highlight"
	"github.com/resbrowse/resbrowse/internal/restable"
)

// ResourceNode is one module-level manifest resource.
type ResourceNode struct {
	res  assembly.ManifestResource
	cfg  Config
	loop *Loop
	log  *slog.Logger

	// Owned by the dispatch loop.
	loaded   bool
	children []Node
}

// NewResourceNode wraps a manifest resource. The loop owns the node's lazy
// children.
func NewResourceNode(res assembly.ManifestResource, cfg Config, loop *Loop, log *slog.Logger) *ResourceNode {
	if log == nil {
		log = slog.Default()
	}
	return &ResourceNode{res: res, cfg: cfg, loop: loop, log: log.With("resource", res.Name)}
}

func (n *ResourceNode) Name() string { return n.res.Name }

func (n *ResourceNode) Icon() Icon { return IconResource }

// Resource exposes the underlying manifest record.
func (n *ResourceNode) Resource() assembly.ManifestResource { return n.res }

// Filter hides private resources outright unless internal members are
// requested; the visibility check runs before any name matching. Matching
// is all-or-nothing per resource, there is no recurse outcome here.
func (n *ResourceNode) Filter(c Criteria) FilterResult {
	if !c.ShowInternal && n.res.Visibility == assembly.Private {
		return Hidden
	}
	if c.matches(n.res.Name) {
		return Match
	}
	return Hidden
}

// Children materializes the entry nodes on first use, via the owning loop.
func (n *ResourceNode) Children() []Node {
	var children []Node
	n.loop.Call(func() { children = n.ensureChildren() })
	return children
}

// ensureChildren must run on the dispatch loop.
func (n *ResourceNode) ensureChildren() []Node {
	if n.loaded {
		return n.children
	}
	n.loaded = true

	if n.res.Kind != assembly.Embedded {
		return nil
	}
	r, err := n.res.Open()
	if err != nil {
		// A resource that cannot be opened simply has no children;
		// sibling enumeration must not be disturbed.
		n.log.Warn("open resource failed", "error", err)
		return nil
	}
	// Open hands out fresh views at offset 0, the decoder's precondition.
	for _, e := range restable.Decode(r) {
		n.children = append(n.children, NewEntryNode(e))
	}
	return n.children
}

// RenderSummary writes the comment-style metadata line and, on interactive
// sinks, offers saving the raw resource for embedded resources.
func (n *ResourceNode) RenderSummary(out Output) {
	out.WriteLine(fmt.Sprintf("// %s (%s, %s)", n.res.Name, n.res.Kind, n.res.Visibility))
	if n.res.Kind != assembly.Embedded {
		return
	}
	if b, ok := out.(ButtonOutput); ok {
		b.AddButton("Save", n.Save)
	}
}

// TryRenderInline shows the raw resource bytes as text, when that is safe:
// only embedded resources under the size ceiling whose content does not
// classify as binary. The highlight hint comes from the resource's file
// extension; an XML classification forces the xml hint regardless of name.
func (n *ResourceNode) TryRenderInline(v Viewer) bool {
	if v == nil || n.res.Kind != assembly.Embedded {
		return false
	}
	r, err := n.res.Open()
	if err != nil {
		return false
	}
	if r.Size() > n.cfg.InlineCeiling {
		return false
	}

	class := classify.Sniff(r, n.cfg.Classifier)
	if class == classify.Binary {
		return false
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return false
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	var def highlight.Definition
	if class == classify.XML {
		def = highlight.ForExtension("xml")
	} else {
		def = highlight.ForExtension(filepath.Ext(n.res.Name))
	}
	v.ShowText(string(data), def)
	return true
}

// Save exports the raw resource bytes verbatim. Only embedded resources
// carry exportable bytes at this level.
func (n *ResourceNode) Save(p Prompter) bool {
	if p == nil || n.res.Kind != assembly.Embedded {
		return false
	}
	r, err := n.res.Open()
	if err != nil {
		return false
	}
	w, ok := p.CreateTarget(filepath.Base(n.res.Name))
	if !ok {
		return false
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		n.log.Warn("save failed", "error", err)
		return false
	}
	return true
}
