// Package assembly models a compiled module and the manifest resources
// embedded in or linked from it. The concrete on-disk source is the bundle
// format (see bundle.go); the resource tree only depends on the Module and
// ManifestResource contracts.
package assembly

import (
	"bytes"
	"fmt"
	"io"
)

// Kind describes where a manifest resource's payload lives.
type Kind int

const (
	// Embedded resources carry their payload inside the module itself.
	Embedded Kind = iota
	// Linked resources reference a file next to the module.
	Linked
	// AssemblyLinked resources live in another module; their payload is
	// not reachable from here.
	AssemblyLinked
)

func (k Kind) String() string {
	switch k {
	case Embedded:
		return "embedded"
	case Linked:
		return "linked"
	case AssemblyLinked:
		return "assembly-linked"
	}
	return "invalid"
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < Embedded || k > AssemblyLinked {
		return nil, fmt.Errorf("invalid resource kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "embedded":
		*k = Embedded
	case "linked":
		*k = Linked
	case "assembly-linked":
		*k = AssemblyLinked
	default:
		return fmt.Errorf("unknown resource kind %q", text)
	}
	return nil
}

// Visibility separates resources meant for external consumers from
// internal-only ones.
type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	switch string(text) {
	case "public":
		*v = Public
	case "private":
		*v = Private
	default:
		return fmt.Errorf("unknown visibility %q", text)
	}
	return nil
}

// Reader groups the methods available on resource content.
type Reader interface {
	io.ReadSeeker
	io.ReaderAt
	Size() int64
}

// ManifestResource is one named resource record of a module.
//
// Open returns a fresh, independently seekable view positioned at offset 0
// on every call; views stay valid only while the owning module is open.
type ManifestResource struct {
	Name       string
	Kind       Kind
	Visibility Visibility

	open func() (Reader, error)
}

// Open returns a new view of the resource payload.
func (r ManifestResource) Open() (Reader, error) {
	if r.open == nil {
		return nil, fmt.Errorf("resource %q has no reachable payload (%s)", r.Name, r.Kind)
	}
	return r.open()
}

// Module is an open compiled module. Resources are returned in the module's
// declared order, never re-sorted.
type Module interface {
	Resources() []ManifestResource
	Close() error
}

// Static is an in-memory Module, used by tests and by tooling that builds
// modules before writing them out.
type Static struct {
	resources []ManifestResource
}

// NewStatic builds a module from in-memory payloads, preserving order.
func NewStatic(items ...StaticResource) *Static {
	m := &Static{}
	for _, it := range items {
		data := it.Data
		res := ManifestResource{
			Name:       it.Name,
			Kind:       it.Kind,
			Visibility: it.Visibility,
		}
		if it.Kind != AssemblyLinked {
			res.open = func() (Reader, error) {
				return bytes.NewReader(data), nil
			}
		}
		m.resources = append(m.resources, res)
	}
	return m
}

// StaticResource describes one resource of a Static module.
type StaticResource struct {
	Name       string
	Kind       Kind
	Visibility Visibility
	Data       []byte
}

func (m *Static) Resources() []ManifestResource { return m.resources }

func (m *Static) Close() error { return nil }
