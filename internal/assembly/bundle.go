package assembly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// tocEntry is one record of the bundle's table of contents. The TOC is
// stored as JSON between two boundary patterns, directly after the host
// binary; embedded payloads follow in TOC order.
type tocEntry struct {
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Visibility Visibility `json:"visibility"`
	Size       int64      `json:"size"`
	// Target is the payload file of linked resources, relative to the
	// bundle's directory.
	Target string `json:"target,omitempty"`
}

// Bundle is a Module backed by a bundle file on disk.
type Bundle struct {
	file      *os.File
	dir       string
	resources []ManifestResource
}

// CorruptBundleError reports a structurally damaged bundle.
type CorruptBundleError string

func (e CorruptBundleError) Error() string {
	return "corrupt bundle: " + string(e)
}

// OpenBundle opens a bundle file and enumerates its manifest resources.
// A file without any resource section yields an empty module, not an error.
func OpenBundle(path string) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	b := &Bundle{file: file, dir: filepath.Dir(path)}

	ok := false
	defer func() {
		if !ok {
			_ = file.Close()
		}
	}()

	tocOffset := seekBoundary(file)
	if tocOffset < 0 {
		// No boundary at all: a plain host binary with no resources.
		ok = true
		return b, nil
	}
	tocLen := seekBoundary(file)
	if tocLen < 0 {
		return nil, CorruptBundleError("unterminated TOC")
	}

	rawTOC := make([]byte, tocLen-int64(boundarySize))
	if _, err := b.file.ReadAt(rawTOC, tocOffset); err != nil {
		return nil, err
	}
	var toc []tocEntry
	if err := json.Unmarshal(rawTOC, &toc); err != nil {
		return nil, CorruptBundleError("invalid TOC")
	}

	offset := tocOffset + tocLen
	for _, e := range toc {
		if e.Name == "" {
			return nil, CorruptBundleError("unnamed resource in TOC")
		}
		res := ManifestResource{
			Name:       e.Name,
			Kind:       e.Kind,
			Visibility: e.Visibility,
		}
		switch e.Kind {
		case Embedded:
			start, size := offset, e.Size
			res.open = func() (Reader, error) {
				return io.NewSectionReader(b.file, start, size), nil
			}
			offset += e.Size
		case Linked:
			target := filepath.Join(b.dir, filepath.Clean("/"+e.Target))
			res.open = func() (Reader, error) {
				data, err := os.ReadFile(target)
				if err != nil {
					return nil, fmt.Errorf("linked resource %q: %w", e.Name, err)
				}
				return bytes.NewReader(data), nil
			}
		case AssemblyLinked:
			// No payload here; Open reports that.
		}
		b.resources = append(b.resources, res)
	}

	// The payload section must end in a trailing boundary, otherwise the
	// TOC sizes point past the end of the file.
	trailer := make([]byte, boundarySize)
	if _, err := b.file.ReadAt(trailer, offset); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, CorruptBundleError("payload offsets exceed file size")
		}
		return nil, err
	}
	if !isBoundary(trailer) {
		return nil, CorruptBundleError("payload sizes do not line up")
	}

	ok = true
	return b, nil
}

func (b *Bundle) Resources() []ManifestResource { return b.resources }

// Close invalidates all readers previously handed out for embedded
// resources.
func (b *Bundle) Close() error {
	return b.file.Close()
}
