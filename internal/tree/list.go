package tree

import (
	"log/slog"

	"github.com/resbrowse/resbrowse/internal/assembly"
)

// ListNode is the root of the hierarchy: one child per manifest resource of
// the module, in the module's declared order.
type ListNode struct {
	module assembly.Module
	cfg    Config
	loop   *Loop
	log    *slog.Logger

	// Owned by the dispatch loop.
	loaded   bool
	children []Node
}

// NewListNode builds the root node over an open module.
func NewListNode(module assembly.Module, cfg Config, loop *Loop, log *slog.Logger) *ListNode {
	if log == nil {
		log = slog.Default()
	}
	return &ListNode{module: module, cfg: cfg, loop: loop, log: log}
}

func (n *ListNode) Name() string { return "Resources" }

func (n *ListNode) Icon() Icon { return IconResourceList }

// Filter never hides the list itself: with an empty term the whole subtree
// is shown, otherwise the list descends and lets each resource self-filter.
func (n *ListNode) Filter(c Criteria) FilterResult {
	if c.Term == "" {
		return MatchAndRecurse
	}
	return Recurse
}

// Children materializes the resource nodes on first use, via the loop.
func (n *ListNode) Children() []Node {
	var children []Node
	n.loop.Call(func() { children = n.ensureChildren() })
	return children
}

// ensureChildren must run on the dispatch loop.
func (n *ListNode) ensureChildren() []Node {
	if n.loaded {
		return n.children
	}
	n.loaded = true

	resources := n.module.Resources()
	n.children = make([]Node, 0, len(resources))
	for _, res := range resources {
		n.children = append(n.children, NewResourceNode(res, n.cfg, n.loop, n.log))
	}
	n.log.Debug("materialized resource list", "resources", len(n.children))
	return n.children
}

// RenderSummary forces child materialization through a blocking handoff to
// the owning loop, then renders each child's summary in order, separated by
// blank lines.
func (n *ListNode) RenderSummary(out Output) {
	var children []Node
	n.loop.Call(func() { children = n.ensureChildren() })
	for i, child := range children {
		if i > 0 {
			out.WriteLine("")
		}
		child.RenderSummary(out)
	}
}

// TryRenderInline is not applicable to the list node.
func (n *ListNode) TryRenderInline(Viewer) bool { return false }

// Save is not applicable to the list node.
func (n *ListNode) Save(Prompter) bool { return false }
