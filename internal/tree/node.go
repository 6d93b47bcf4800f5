// Package tree exposes the manifest resources of a module as a lazily
// materialized node hierarchy: a list node over the module, one resource
// node per manifest resource, and one entry node per blob entry of a
// decoded resource table.
//
// All node state is owned by a single dispatch loop (see dispatch.go).
// Children are materialized at most once, live as long as the module stays
// open, and are discarded with it.
package tree

import (
	"image"
	"io"
	"strings"

	"github.com/resbrowse/resbrowse/internal/classify"
	"github.com/resbrowse/resbrowse/internal/highlight"
)

// FilterResult tells the display layer what to do with a node for a given
// search criteria.
type FilterResult int

const (
	// Hidden removes the node and its subtree.
	Hidden FilterResult = iota
	// Match shows the node.
	Match
	// MatchAndRecurse shows the node and lets children filter themselves.
	MatchAndRecurse
	// Recurse descends without showing the node on its own merit.
	Recurse
)

// Criteria is the active search/visibility setting.
type Criteria struct {
	// Term filters names by case-insensitive substring. Empty matches all.
	Term string
	// ShowInternal includes resources with private visibility.
	ShowInternal bool
}

func (c Criteria) matches(name string) bool {
	return c.Term == "" || strings.Contains(strings.ToLower(name), strings.ToLower(c.Term))
}

// Icon hints at how the display layer should decorate a node.
type Icon int

const (
	IconResourceList Icon = iota
	IconResource
	IconResourceEntry
)

// RenderOutcome is the result of rendering a resource table entry.
type RenderOutcome struct {
	// Viewable is false when no decoder could handle the payload.
	Viewable bool
	// Image is the decoded raster image when Viewable is true.
	Image image.Image
	// Format names the decoded encoding ("png", "jpeg", ...).
	Format string
}

// Output is a line-oriented text sink. Richer sinks advertise extra
// capabilities through the optional interfaces below; callers type-assert
// rather than assume.
type Output interface {
	WriteLine(s string)
}

// ButtonOutput is an Output that supports interactive actions. The sink
// supplies the prompter when the user triggers the action.
type ButtonOutput interface {
	Output
	AddButton(label string, action func(p Prompter) bool)
}

// Viewer displays inline-rendered text with an optional highlight hint.
type Viewer interface {
	ShowText(text string, def highlight.Definition)
}

// Prompter asks for a writable save destination. ok is false when the user
// cancelled.
type Prompter interface {
	CreateTarget(suggested string) (w io.WriteCloser, ok bool)
}

// Node is the capability set shared by every tree node kind. Operations a
// node kind does not support report an explicit negative result instead of
// panicking: Children returns nil, TryRenderInline and Save return false.
type Node interface {
	Name() string
	Icon() Icon
	Filter(c Criteria) FilterResult
	// Children materializes the node's children on first use and returns
	// the cached sequence afterwards. Safe to call from any goroutine; the
	// materialization itself runs on the owning dispatch loop.
	Children() []Node
	RenderSummary(out Output)
	TryRenderInline(v Viewer) bool
	Save(p Prompter) bool
}

// Config carries the tree's tunables.
type Config struct {
	Classifier classify.Config
	// InlineCeiling is the maximum resource size, in bytes, still eligible
	// for inline rendering. Larger resources are excluded, not streamed.
	InlineCeiling int64
}

// DefaultConfig uses a 1 MiB inline ceiling.
func DefaultConfig() Config {
	return Config{
		Classifier:    classify.DefaultConfig(),
		InlineCeiling: 1 << 20,
	}
}
